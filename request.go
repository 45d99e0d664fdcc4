package lexalign

// Request is the outbound translation request consumed by the backend.
// style_preferences carries one boolean per (language, register) pair, one
// `<language>_word_by_word` boolean per language, and the mother tongue.
type Request struct {
	Text             string           `json:"text"`
	SourceLang       string           `json:"source_lang"`
	StylePreferences StylePreferences `json:"style_preferences"`
}

// StylePreferences is the wire form of the resolved configuration.
type StylePreferences struct {
	Styles       map[string]bool `json:"styles"`
	WordByWord   map[string]bool `json:"word_by_word"`
	MotherTongue string          `json:"mother_tongue"`
}

// BuildRequest turns a resolved configuration and an utterance into an
// outbound request. Pure and referentially transparent: no transport, retry
// or backoff concerns live here.
func BuildRequest(cfg Config, utterance string) Request {
	styles := make(map[string]bool, len(cfg.Styles))
	for _, lang := range cfg.TargetLanguages() {
		for _, reg := range Registers {
			id := StyleID{Language: lang, Register: reg}
			styles[id.Key()] = cfg.StyleEnabled(id)
		}
	}

	wbw := make(map[string]bool, len(cfg.AudioEnabled))
	for _, lang := range audioLanguages {
		wbw[string(lang)+"_word_by_word"] = cfg.AudioEnabled[lang]
	}

	return Request{
		Text:       utterance,
		SourceLang: string(cfg.MotherTongue),
		StylePreferences: StylePreferences{
			Styles:       styles,
			WordByWord:   wbw,
			MotherTongue: string(cfg.MotherTongue),
		},
	}
}
