package lexalign

import (
	"reflect"
	"testing"
)

func TestResolve_Deterministic(t *testing.T) {
	r := NewResolver()
	prefs := map[string]any{
		"mother_tongue":        "english",
		"german_colloquial":    "TRUE",
		"germanFormal":         1,
		"english_word_by_word": true,
		"junk":                 []int{1, 2},
	}

	first := r.Resolve(prefs)
	second := r.Resolve(prefs)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Resolve is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestResolve_CoercesBooleanLikeValues(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"bool true", true, true},
		{"bool false", false, false},
		{"string true", "true", true},
		{"string TRUE", "TRUE", true},
		{"string false", "false", false},
		{"string False", "False", false},
		{"int nonzero", 1, true},
		{"int zero", 0, false},
		{"float nonzero", 2.0, true},
		{"garbage string falls back to default", "yes please", false},
		{"slice falls back to default", []string{"true"}, false},
	}

	r := NewResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := r.Resolve(map[string]any{"german_formal": tt.value})
			id := StyleID{Language: LangGerman, Register: RegisterFormal}
			if got := cfg.StyleEnabled(id); got != tt.want {
				t.Errorf("german_formal=%v: enabled=%v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestResolve_KeySpellingsMatch(t *testing.T) {
	r := NewResolver()
	id := StyleID{Language: LangGerman, Register: RegisterColloquial}

	for _, key := range []string{"german_colloquial", "germanColloquial", "german-colloquial", "German_Colloquial"} {
		cfg := r.Resolve(map[string]any{key: true})
		if !cfg.StyleEnabled(id) {
			t.Errorf("key %q did not enable german-colloquial", key)
		}
	}
}

func TestResolve_DefaultsByMotherTongue(t *testing.T) {
	germanColloquial := StyleID{Language: LangGerman, Register: RegisterColloquial}
	englishColloquial := StyleID{Language: LangEnglish, Register: RegisterColloquial}

	tests := []struct {
		name   string
		tongue string
		want   []StyleID
	}{
		{"spanish", "spanish", []StyleID{germanColloquial, englishColloquial}},
		{"english", "english", []StyleID{germanColloquial}},
		{"german", "german", []StyleID{englishColloquial}},
		{"unknown falls back to spanish defaults", "klingon", []StyleID{germanColloquial, englishColloquial}},
	}

	r := NewResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := r.Resolve(map[string]any{"mother_tongue": tt.tongue})
			if !cfg.DefaultsApplied {
				t.Error("DefaultsApplied should be set when no style flag is true")
			}
			if !reflect.DeepEqual(cfg.Styles, tt.want) {
				t.Errorf("Styles = %v, want %v", cfg.Styles, tt.want)
			}
		})
	}
}

func TestResolve_NeverEmptyStyles(t *testing.T) {
	r := NewResolver()
	bags := []map[string]any{
		{},
		{"german_colloquial": false, "english_formal": false},
		{"german_colloquial": "nonsense"},
		{"mother_tongue": "german"},
	}

	for _, bag := range bags {
		cfg := r.Resolve(bag)
		if len(cfg.Styles) == 0 {
			t.Errorf("Resolve(%v) returned empty style set", bag)
		}
	}
}

func TestResolve_EmptyBagDefaults(t *testing.T) {
	// Nothing set and mother tongue absent: spanish mother tongue,
	// German + English colloquial.
	cfg := NewResolver().Resolve(map[string]any{})

	if cfg.MotherTongue != LangSpanish {
		t.Errorf("MotherTongue = %v, want spanish", cfg.MotherTongue)
	}
	want := []StyleID{
		{Language: LangGerman, Register: RegisterColloquial},
		{Language: LangEnglish, Register: RegisterColloquial},
	}
	if !reflect.DeepEqual(cfg.Styles, want) {
		t.Errorf("Styles = %v, want %v", cfg.Styles, want)
	}
	if !cfg.DefaultsApplied {
		t.Error("DefaultsApplied should be set")
	}
}

func TestResolve_ExplicitFlagsSuppressDefaults(t *testing.T) {
	// germanColloquial true, englishWordByWord false, spanish mother tongue:
	// German colloquial only, no English styles, German audio defaults on.
	cfg := NewResolver().Resolve(map[string]any{
		"germanColloquial":  true,
		"englishWordByWord": false,
		"motherTongue":      "spanish",
	})

	want := []StyleID{{Language: LangGerman, Register: RegisterColloquial}}
	if !reflect.DeepEqual(cfg.Styles, want) {
		t.Errorf("Styles = %v, want %v", cfg.Styles, want)
	}
	if cfg.DefaultsApplied {
		t.Error("DefaultsApplied should not be set when a style flag is true")
	}
	if ModeFor(LangGerman, cfg) != ModeWordByWord {
		t.Error("German audio should default to word-by-word")
	}
	if ModeFor(LangEnglish, cfg) != ModeSentence {
		t.Error("English audio was explicitly disabled")
	}
}

func TestResolve_AudioFlagsIndependentOfStyles(t *testing.T) {
	cfg := NewResolver().Resolve(map[string]any{
		"english_formal":       true,
		"english_word_by_word": true,
		"german_word_by_word":  false,
	})

	if !cfg.AudioEnabled[LangEnglish] {
		t.Error("explicit english_word_by_word=true ignored")
	}
	if cfg.AudioEnabled[LangGerman] {
		t.Error("explicit german_word_by_word=false ignored")
	}
	// English style flags never default English audio.
	cfg = NewResolver().Resolve(map[string]any{"english_formal": true})
	if cfg.AudioEnabled[LangEnglish] {
		t.Error("audio flags must never be defaulted from style flags")
	}
}

func TestResolve_DistinguishedAudioLanguageAdjustable(t *testing.T) {
	r := NewResolver(WithDefaultAudioLanguage(LangEnglish))
	cfg := r.Resolve(map[string]any{})

	if !cfg.AudioEnabled[LangEnglish] {
		t.Error("English should default audio-on for this resolver")
	}
	if cfg.AudioEnabled[LangGerman] {
		t.Error("German should default audio-off for this resolver")
	}
}
