package lexalign

import "strings"

// Resolver turns a raw, loosely typed preference bag into a canonical Config.
// Resolution is total: it never fails and always yields a usable
// configuration. Identical input always yields an identical Config.
type Resolver struct {
	defaultAudioLanguage Language
}

// ResolverOption is a functional option for configuring the Resolver.
type ResolverOption func(*Resolver)

// WithDefaultAudioLanguage sets the distinguished target language whose
// word-by-word audio flag defaults to enabled when absent from the
// preference bag. Every other language defaults to sentence mode.
func WithDefaultAudioLanguage(lang Language) ResolverOption {
	return func(r *Resolver) {
		r.defaultAudioLanguage = lang
	}
}

// NewResolver creates a Resolver. By default German is the distinguished
// audio-enabled language, matching the product's baseline learning flow.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{defaultAudioLanguage: LangGerman}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// toggleableStyles are the styles a user can switch on directly. Spanish is
// implicit for non-Spanish mother tongues and carries no toggle.
var toggleableStyles = func() []StyleID {
	var ids []StyleID
	for _, l := range []Language{LangGerman, LangEnglish} {
		for _, r := range Registers {
			ids = append(ids, StyleID{Language: l, Register: r})
		}
	}
	return ids
}()

// audioLanguages are the languages carrying an independent word-by-word flag.
var audioLanguages = []Language{LangGerman, LangEnglish, LangSpanish}

// Resolve builds the canonical configuration for one turn from the latest
// raw settings snapshot. The bag's keys are matched case- and
// separator-insensitively ("germanColloquial" and "german_colloquial" are
// the same key); values are coerced per coerceBool.
func (r *Resolver) Resolve(prefs map[string]any) Config {
	bag := normalizeBag(prefs)

	mt := LangSpanish
	if raw, ok := bag[normalizeKey("mother_tongue")]; ok {
		if s, isStr := raw.(string); isStr && strings.TrimSpace(s) != "" {
			mt = ParseLanguage(s)
		}
	}

	var styles []StyleID
	for _, id := range toggleableStyles {
		if v, present := bag[normalizeKey(id.Key())]; present && coerceBool(v, false) {
			styles = append(styles, id)
		}
	}

	defaulted := false
	if len(styles) == 0 {
		// Only when no style flag across any language is true: substitute
		// the mother-tongue default set. Never hand an empty style set to
		// the request builder.
		styles = defaultStyles(mt)
		defaulted = true
	}
	sortStyles(styles)

	audio := make(map[Language]bool, len(audioLanguages))
	for _, lang := range audioLanguages {
		def := lang == r.defaultAudioLanguage
		v, present := bag[normalizeKey(string(lang)+"_word_by_word")]
		if present {
			audio[lang] = coerceBool(v, def)
		} else {
			audio[lang] = def
		}
	}

	return Config{
		MotherTongue:    mt,
		Styles:          styles,
		AudioEnabled:    audio,
		DefaultsApplied: defaulted,
	}
}

// defaultStyles is the mother-tongue-specific default style set. Unknown
// mother tongues fall back to the Spanish defaults.
func defaultStyles(mt Language) []StyleID {
	switch mt {
	case LangEnglish:
		return []StyleID{{Language: LangGerman, Register: RegisterColloquial}}
	case LangGerman:
		return []StyleID{{Language: LangEnglish, Register: RegisterColloquial}}
	default:
		return []StyleID{
			{Language: LangGerman, Register: RegisterColloquial},
			{Language: LangEnglish, Register: RegisterColloquial},
		}
	}
}

// normalizeBag rebuilds the preference bag under normalized keys. When two
// raw keys collide after normalization the lexically later raw key wins,
// keeping resolution deterministic regardless of map iteration order.
func normalizeBag(prefs map[string]any) map[string]any {
	bag := make(map[string]any, len(prefs))
	winner := make(map[string]string, len(prefs))
	for k, v := range prefs {
		nk := normalizeKey(k)
		if prev, ok := winner[nk]; ok && prev > k {
			continue
		}
		winner[nk] = k
		bag[nk] = v
	}
	return bag
}

// normalizeKey lowercases a key and strips separators, so snake_case,
// camelCase and kebab-case spellings of the same preference match.
func normalizeKey(k string) string {
	var b strings.Builder
	for _, r := range k {
		switch r {
		case '_', '-', '.', ' ':
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// coerceBool coerces boolean-like values: bool literals, the strings
// "true"/"false" in any case, and integer 0/non-zero. Anything else falls
// back to the supplied default.
func coerceBool(v any, def bool) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			return true
		case "false":
			return false
		}
		return def
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case float64:
		// JSON numbers decode as float64; treat whole numbers as ints.
		return t != 0
	case float32:
		return t != 0
	default:
		return def
	}
}
