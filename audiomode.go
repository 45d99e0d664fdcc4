package lexalign

// ModeFor decides how a language is narrated under the given configuration.
// The decision is per-language and independent: German can be word-by-word
// while English is in sentence mode within the same turn.
//
// The mode only selects what is spoken. Visual rendering of the full
// word-by-word breakdown is unconditional. ModeFor is a pure read-only
// consumer of the configuration; it never touches the alignment model.
func ModeFor(language Language, cfg Config) AudioMode {
	if cfg.AudioEnabled[language] {
		return ModeWordByWord
	}
	return ModeSentence
}
