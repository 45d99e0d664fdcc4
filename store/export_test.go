package store

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestExporter_Export(t *testing.T) {
	store := NewMemoryStore()
	store.Put(map[string]any{
		"mother_tongue":     "spanish",
		"german_colloquial": true,
	})

	exporter := NewExporter(store)
	var buf bytes.Buffer

	err := exporter.Export(&buf, map[string]string{"device": "laptop"})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var export ExportFormat
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("Export produced invalid JSON: %v", err)
	}

	if export.Version != "1.0" {
		t.Errorf("Version = %q, want 1.0", export.Version)
	}
	if export.ExportedAt == "" {
		t.Error("ExportedAt should be set")
	}
	if export.Preferences["mother_tongue"] != "spanish" {
		t.Errorf("mother_tongue = %v, want spanish", export.Preferences["mother_tongue"])
	}
	if export.Metadata["device"] != "laptop" {
		t.Errorf("Metadata device = %q, want laptop", export.Metadata["device"])
	}
}

func TestImporter_Import(t *testing.T) {
	store := NewMemoryStore()
	importer := NewImporter(store)

	input := `{
		"version": "1.0",
		"exported_at": "2026-01-15T10:00:00Z",
		"preferences": {"english_formal": true, "word_by_word": false},
		"metadata": {"device": "phone"}
	}`

	result, err := importer.Import(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Version != "1.0" {
		t.Errorf("Version = %q, want 1.0", result.Version)
	}
	if result.Imported != 2 {
		t.Errorf("Imported = %d, want 2", result.Imported)
	}
	if result.Metadata["device"] != "phone" {
		t.Errorf("Metadata device = %q, want phone", result.Metadata["device"])
	}

	prefs, _ := store.Get()
	if prefs["english_formal"] != true {
		t.Error("Imported preference not stored")
	}
}

func TestImporter_Import_InvalidJSON(t *testing.T) {
	importer := NewImporter(NewMemoryStore())

	if _, err := importer.Import(strings.NewReader("not json")); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")

	source := NewMemoryStore()
	source.Put(map[string]any{
		"mother_tongue":      "english",
		"german_colloquial":  true,
		"german_word_by_word":  true,
		"english_word_by_word": false,
	})

	if err := NewExporter(source).ExportToFile(path, nil); err != nil {
		t.Fatalf("ExportToFile failed: %v", err)
	}

	target := NewMemoryStore()
	result, err := NewImporter(target).ImportFromFile(path)
	if err != nil {
		t.Fatalf("ImportFromFile failed: %v", err)
	}
	if result.Imported != 4 {
		t.Errorf("Imported = %d, want 4", result.Imported)
	}

	prefs, _ := target.Get()
	if prefs["mother_tongue"] != "english" {
		t.Errorf("mother_tongue = %v, want english", prefs["mother_tongue"])
	}
	if prefs["german_colloquial"] != true {
		t.Error("german_colloquial lost in round trip")
	}
}

func TestImporter_ImportFromFile_Missing(t *testing.T) {
	importer := NewImporter(NewMemoryStore())

	if _, err := importer.ImportFromFile("/nonexistent/settings.json"); err == nil {
		t.Error("Expected error for missing file")
	}
}
