// Package provider defines the translation backend interface and implementations.
package provider

import "github.com/LexaLabs/lexalign"

// Backend is the interface for AI translation backends.
// This is an alias to the main package interface for convenience.
type Backend = lexalign.Backend

// Request is an alias to the main package type.
type Request = lexalign.Request
