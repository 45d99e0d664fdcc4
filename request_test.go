package lexalign

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestBuildRequest_Fields(t *testing.T) {
	cfg := NewResolver().Resolve(map[string]any{
		"mother_tongue":       "spanish",
		"german_colloquial":   true,
		"german_formal":       true,
		"german_word_by_word": true,
	})

	req := BuildRequest(cfg, "hola mundo")

	if req.Text != "hola mundo" {
		t.Errorf("Text = %q", req.Text)
	}
	if req.SourceLang != "spanish" {
		t.Errorf("SourceLang = %q, want mother tongue", req.SourceLang)
	}
	if req.StylePreferences.MotherTongue != "spanish" {
		t.Errorf("MotherTongue = %q", req.StylePreferences.MotherTongue)
	}
	if !req.StylePreferences.Styles["german_colloquial"] || !req.StylePreferences.Styles["german_formal"] {
		t.Error("enabled styles missing from request")
	}
	if req.StylePreferences.Styles["german_native"] {
		t.Error("disabled register should be false")
	}
	if !req.StylePreferences.WordByWord["german_word_by_word"] {
		t.Error("audio flag not passed through")
	}
	if req.StylePreferences.WordByWord["english_word_by_word"] {
		t.Error("english audio flag should be false")
	}
}

func TestBuildRequest_OnlyEnabledLanguagesCarryStyleFlags(t *testing.T) {
	cfg := NewResolver().Resolve(map[string]any{
		"mother_tongue":     "spanish",
		"german_colloquial": true,
	})

	req := BuildRequest(cfg, "x")
	for key := range req.StylePreferences.Styles {
		if key[:len("german")] != "german" {
			t.Errorf("unexpected style flag %q for unrequested language", key)
		}
	}
}

func TestBuildRequest_Pure(t *testing.T) {
	cfg := NewResolver().Resolve(map[string]any{"mother_tongue": "english"})

	a := BuildRequest(cfg, "good morning")
	b := BuildRequest(cfg, "good morning")

	if !reflect.DeepEqual(a, b) {
		t.Errorf("BuildRequest not referentially transparent:\na: %+v\nb: %+v", a, b)
	}
}

func TestRequest_WireShape(t *testing.T) {
	cfg := NewResolver().Resolve(map[string]any{"mother_tongue": "english"})
	data, err := json.Marshal(BuildRequest(cfg, "hello"))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var wire map[string]any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, field := range []string{"text", "source_lang", "style_preferences"} {
		if _, ok := wire[field]; !ok {
			t.Errorf("wire request missing %q", field)
		}
	}
	sp := wire["style_preferences"].(map[string]any)
	if _, ok := sp["mother_tongue"]; !ok {
		t.Error("style_preferences missing mother_tongue")
	}
}
