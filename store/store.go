// Package store provides local settings store implementations.
//
// The store holds the raw, loosely typed preference bag exactly as the UI
// writes it. Typing and validation happen in the engine's settings resolver,
// never here.
package store

import "github.com/LexaLabs/lexalign"

// SettingsStore is the interface for the local settings store.
// This is an alias to the main package interface for convenience.
type SettingsStore = lexalign.SettingsStore
