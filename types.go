package lexalign

import (
	"sort"
	"strings"
)

// Language is a translation language handled by the engine.
type Language string

const (
	// LangGerman is the German target language.
	LangGerman Language = "german"
	// LangEnglish is the English target language.
	LangEnglish Language = "english"
	// LangSpanish is the Spanish language (implicit target for non-Spanish
	// mother tongues, not user-toggleable).
	LangSpanish Language = "spanish"
	// LangOther covers any mother tongue outside the supported set.
	LangOther Language = "other"
)

// TargetLanguages lists the languages a style can be requested for,
// in canonical order.
var TargetLanguages = []Language{LangGerman, LangEnglish, LangSpanish}

// Register is the tone/formality register of a translation style.
type Register string

const (
	// RegisterNative renders the sentence the way a native speaker would say it.
	RegisterNative Register = "native"
	// RegisterColloquial uses everyday conversational language.
	RegisterColloquial Register = "colloquial"
	// RegisterInformal uses relaxed, informal language.
	RegisterInformal Register = "informal"
	// RegisterFormal uses formal, polite language.
	RegisterFormal Register = "formal"
)

// Registers lists all supported registers in canonical order.
var Registers = []Register{RegisterNative, RegisterColloquial, RegisterInformal, RegisterFormal}

// StyleID identifies one requested translation style: a (language, register)
// pair. It is a value type with no identity beyond its fields.
type StyleID struct {
	Language Language
	Register Register
}

// String returns the canonical "language-register" form, e.g. "german-colloquial".
func (s StyleID) String() string {
	return string(s.Language) + "-" + string(s.Register)
}

// Key returns the wire key used in requests and raw preference bags,
// e.g. "german_colloquial".
func (s StyleID) Key() string {
	return string(s.Language) + "_" + string(s.Register)
}

// Config is the canonical translation configuration for one conversation
// turn. It is built once per turn by the SettingsResolver, is immutable
// afterwards, and is discarded when the turn completes.
type Config struct {
	// MotherTongue is the user's native language and the gloss language of
	// every alignment entry.
	MotherTongue Language

	// Styles are the enabled translation styles, sorted canonically.
	// Never empty after resolution.
	Styles []StyleID

	// AudioEnabled holds the per-language word-by-word audio flags.
	AudioEnabled map[Language]bool

	// DefaultsApplied reports that no style flag was set and the
	// mother-tongue default set was substituted. Informational, not an error.
	DefaultsApplied bool
}

// StyleEnabled reports whether the given style is part of the configuration.
func (c Config) StyleEnabled(id StyleID) bool {
	for _, s := range c.Styles {
		if s == id {
			return true
		}
	}
	return false
}

// TargetLanguages returns the distinct languages referenced by the enabled
// styles, in canonical order.
func (c Config) TargetLanguages() []Language {
	seen := make(map[Language]bool, len(c.Styles))
	for _, s := range c.Styles {
		seen[s.Language] = true
	}
	var langs []Language
	for _, l := range TargetLanguages {
		if seen[l] {
			langs = append(langs, l)
		}
	}
	return langs
}

// Provenance distinguishes true AI-sourced alignment data from locally
// synthesized fallback data.
type Provenance string

const (
	// ProvenanceAI marks entries decoded from the backend response.
	ProvenanceAI Provenance = "aiSourced"
	// ProvenanceFallback marks entries synthesized by the FallbackGenerator.
	ProvenanceFallback Provenance = "fallbackDegraded"
)

// AlignmentEntry is the atomic unit of the word-alignment model: one source
// unit paired with its mother-tongue gloss. Entries are created fresh per
// turn and never mutated afterwards.
type AlignmentEntry struct {
	// SourceUnit is a single token or an atomic multi-word phrase in the
	// target language.
	SourceUnit string

	// GlossUnit is the mother-tongue equivalent. For fallback entries it
	// carries the degraded-data marker, never a guessed translation.
	GlossUnit string

	// Order is the 0-based narration position, contiguous within its style
	// after normalization.
	Order int

	// AtomicUnit marks phrasal verbs, separable verbs and compounds that
	// must never be split. Trusted from upstream, never re-derived.
	AtomicUnit bool

	// Confidence lies in [0,1].
	Confidence float64

	// DisplayFormat is the on-screen rendering of the pair. For AI-sourced
	// entries it must equal DisplayFormat(SourceUnit, GlossUnit) exactly.
	DisplayFormat string

	// Note is an optional free-text explanation from the backend, carried
	// through unmodified.
	Note string

	// Provenance tags the entry's origin.
	Provenance Provenance

	// SyncMismatch is set by the normalizer when an AI-sourced entry fails
	// the display/audio equality check. The entry is kept for display.
	SyncMismatch bool
}

// DisplayFormat builds the canonical on-screen form of a word pair. The same
// two fields drive audio narration, which is how display and speech stay
// character-for-character equal.
func DisplayFormat(sourceUnit, glossUnit string) string {
	return "[" + sourceUnit + "] (" + glossUnit + ")"
}

// StyleTranslation is one style's finished translation: the sentence plus
// the ordered word-alignment entries that drive rendering and narration.
// Entry order is the exact narration order.
type StyleTranslation struct {
	Style        StyleID
	SentenceText string
	Entries      []AlignmentEntry

	// Degraded is set when the style needed the fallback generator or its
	// sentence had to be recovered (or could not be) from the
	// undifferentiated text blob.
	Degraded bool

	// SyncHealth is the fraction of entries passing the sync invariant,
	// in [0,1].
	SyncHealth float64
}

// AudioMode selects what is spoken for one language. It never affects what
// is shown: the word-by-word breakdown is always rendered.
type AudioMode string

const (
	// ModeWordByWord narrates each entry's source unit then gloss, in order.
	ModeWordByWord AudioMode = "WORD_BY_WORD"
	// ModeSentence narrates the sentence text once.
	ModeSentence AudioMode = "SENTENCE"
)

// TurnState is the per-turn lifecycle state of the engine.
type TurnState string

const (
	StateIdle        TurnState = "IDLE"
	StateRequesting  TurnState = "REQUESTING"
	StateParsing     TurnState = "PARSING"
	StateNormalizing TurnState = "NORMALIZING"
	StateReady       TurnState = "READY"
	StateDegraded    TurnState = "DEGRADED"
	StateError       TurnState = "ERROR"
)

// TurnResult is the finished model for one conversation turn. It supersedes
// the previous turn's result wholesale; there is no incremental patching.
type TurnResult struct {
	// ID identifies the turn (used for last-request-wins bookkeeping).
	ID string

	// Utterance is the user input that produced this result.
	Utterance string

	// Config is the configuration the turn ran under.
	Config Config

	// Styles holds one finalized translation per requested style, sorted
	// canonically.
	Styles []StyleTranslation

	// State is StateReady or StateDegraded.
	State TurnState

	// AudioPath is the optional server-generated narration handle.
	AudioPath string
}

// StyleFor returns the translation for the given style, or nil.
func (r *TurnResult) StyleFor(id StyleID) *StyleTranslation {
	for i := range r.Styles {
		if r.Styles[i].Style == id {
			return &r.Styles[i]
		}
	}
	return nil
}

// ParseLanguage maps a loosely spelled language name to a Language.
// Unknown names map to LangOther.
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "german", "de", "de_de", "deutsch":
		return LangGerman
	case "english", "en", "en_us", "en_gb":
		return LangEnglish
	case "spanish", "es", "es_es", "es_mx", "español", "espanol":
		return LangSpanish
	default:
		return LangOther
	}
}

// ParseRegister maps a register name to a Register and reports whether it
// was recognized.
func ParseRegister(s string) (Register, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "native":
		return RegisterNative, true
	case "colloquial", "casual":
		return RegisterColloquial, true
	case "informal":
		return RegisterInformal, true
	case "formal":
		return RegisterFormal, true
	default:
		return "", false
	}
}

// AllStyleIDs enumerates every requestable (language, register) pair, in
// canonical order.
func AllStyleIDs() []StyleID {
	ids := make([]StyleID, 0, len(TargetLanguages)*len(Registers))
	for _, l := range TargetLanguages {
		for _, r := range Registers {
			ids = append(ids, StyleID{Language: l, Register: r})
		}
	}
	return ids
}

// sortStyles orders styles canonically: target language order first, then
// register order. Canonical ordering keeps resolution deterministic.
func sortStyles(styles []StyleID) {
	langRank := func(l Language) int {
		for i, tl := range TargetLanguages {
			if l == tl {
				return i
			}
		}
		return len(TargetLanguages)
	}
	regRank := func(r Register) int {
		for i, rr := range Registers {
			if r == rr {
				return i
			}
		}
		return len(Registers)
	}
	sort.Slice(styles, func(i, j int) bool {
		a, b := styles[i], styles[j]
		if la, lb := langRank(a.Language), langRank(b.Language); la != lb {
			return la < lb
		}
		return regRank(a.Register) < regRank(b.Register)
	})
}
