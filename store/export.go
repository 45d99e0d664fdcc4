package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// ExportFormat represents the JSON structure for settings export/import,
// used for backup and for moving preferences between devices.
type ExportFormat struct {
	Version     string            `json:"version"`
	ExportedAt  string            `json:"exported_at"`
	Preferences map[string]any    `json:"preferences"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Exporter provides settings export functionality.
type Exporter struct {
	store SettingsStore
}

// NewExporter creates a new settings exporter.
func NewExporter(store SettingsStore) *Exporter {
	return &Exporter{store: store}
}

// Export writes the current preference bag to a writer in JSON format.
func (e *Exporter) Export(w io.Writer, metadata map[string]string) error {
	prefs, err := e.store.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	export := ExportFormat{
		Version:     "1.0",
		ExportedAt:  time.Now().UTC().Format(time.RFC3339),
		Preferences: prefs,
		Metadata:    metadata,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

// ExportToFile exports the settings to a file.
// The path is provided by the caller and is intentionally user-controlled.
func (e *Exporter) ExportToFile(path string, metadata map[string]string) error {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return e.Export(f, metadata)
}

// Importer provides settings import functionality.
type Importer struct {
	store SettingsStore
}

// NewImporter creates a new settings importer.
func NewImporter(store SettingsStore) *Importer {
	return &Importer{store: store}
}

// Import reads a preference bag from a reader and stores it wholesale.
func (i *Importer) Import(r io.Reader) (*ImportResult, error) {
	var export ExportFormat
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	if err := i.store.Put(export.Preferences); err != nil {
		return nil, fmt.Errorf("storing settings: %w", err)
	}

	return &ImportResult{
		Version:  export.Version,
		Metadata: export.Metadata,
		Imported: len(export.Preferences),
	}, nil
}

// ImportFromFile imports settings from a file.
// The path is provided by the caller and is intentionally user-controlled.
func (i *Importer) ImportFromFile(path string) (*ImportResult, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return i.Import(f)
}

// ImportResult contains statistics about the import operation.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Imported int
}
