package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"--version"}, &stdout, &stderr)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stdout.String(), "lexalign") {
		t.Errorf("expected version output, got: %s", stdout.String())
	}
}

func TestRun_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LEXALIGN_API_KEY", "")

	var stdout, stderr bytes.Buffer
	err := run([]string{"hola"}, &stdout, &stderr)

	if err == nil {
		t.Fatal("expected error for missing API key")
	}

	if !strings.Contains(err.Error(), "API key") {
		t.Errorf("expected API key error, got: %v", err)
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"--no-such-flag"}, &stdout, &stderr); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LEXALIGN_API_KEY", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")
	os.WriteFile(path, []byte(`{"api_key": "file-key", "model": "gpt-4o"}`), 0644)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.APIKey != "file-key" {
		t.Errorf("APIKey = %q, want file-key", cfg.APIKey)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("Model = %q, want gpt-4o", cfg.Model)
	}
}

func TestLoadConfig_EnvFallback(t *testing.T) {
	t.Setenv("LEXALIGN_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "env-key")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.APIKey)
	}
}

func TestBuildStore_SeedsFlagPreferences(t *testing.T) {
	s, err := buildStore("", "english", "german-colloquial,english-formal", "german")
	if err != nil {
		t.Fatalf("buildStore failed: %v", err)
	}

	prefs, err := s.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if prefs["mother_tongue"] != "english" {
		t.Errorf("mother_tongue = %v, want english", prefs["mother_tongue"])
	}
	if prefs["german_colloquial"] != true {
		t.Error("german_colloquial should be seeded")
	}
	if prefs["english_formal"] != true {
		t.Error("english_formal should be seeded")
	}
	if prefs["german_word_by_word"] != true {
		t.Error("german_word_by_word should be seeded")
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"german-colloquial", []string{"german-colloquial"}},
		{"a, B ,c", []string{"a", "b", "c"}},
		{",,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := splitList(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("splitList(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
