package lexalign

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// ParsedResponse is the parser's output: one in-progress StyleTranslation
// per requested style, ready for normalization.
type ParsedResponse struct {
	Styles    map[StyleID]*StyleTranslation
	AudioPath string
}

// rawResponse mirrors the backend payload. Only translated_text is expected
// to be present on every response; everything else is optional and partially
// unreliable.
type rawResponse struct {
	TranslatedText string                    `json:"translated_text"`
	Translations   map[string]string         `json:"translations"`
	WordByWord     map[string]map[string]any `json:"word_by_word"`
	AudioPath      string                    `json:"audio_path"`
}

// ParseResponse decodes a raw backend payload into per-style translations and
// raw alignment entries, keyed by (language, register).
//
// The parser tolerates an entirely absent alignment section (requested styles
// come back with empty entries, to be filled by the fallback generator),
// drops styles present in the payload that were not requested, and recovers
// the sentence of a requested-but-missing style by a best-effort heading
// search over the translated-text blob. A style whose sentence cannot be
// recovered is still surfaced, marked degraded, with an empty sentence.
//
// The only error is a payload that cannot be decoded at all.
func ParseResponse(raw []byte, cfg Config) (*ParsedResponse, error) {
	var resp rawResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &MalformedResponseError{Message: "decoding payload", Cause: err}
	}

	grouped := groupAlignment(resp.WordByWord, cfg)

	styles := make(map[StyleID]*StyleTranslation, len(cfg.Styles))
	for _, id := range cfg.Styles {
		st := &StyleTranslation{Style: id, Entries: grouped[id]}

		if sentence, ok := structuredSentence(resp.Translations, id); ok {
			st.SentenceText = sentence
		} else if sentence, ok := recoverSentence(resp.TranslatedText, id); ok {
			st.SentenceText = sentence
			st.Degraded = true
		} else {
			st.Degraded = true
		}

		styles[id] = st
	}

	return &ParsedResponse{Styles: styles, AudioPath: resp.AudioPath}, nil
}

// groupAlignment buckets raw word-by-word entries by (language, style).
// Opaque map keys are walked in sorted order so parsing is deterministic.
// Entries for styles that were not requested are dropped, not merged.
func groupAlignment(wbw map[string]map[string]any, cfg Config) map[StyleID][]AlignmentEntry {
	grouped := make(map[StyleID][]AlignmentEntry)
	if len(wbw) == 0 {
		return grouped
	}

	keys := make([]string, 0, len(wbw))
	for k := range wbw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fields := wbw[k]
		lang := ParseLanguage(asString(fields, "language"))
		reg, ok := ParseRegister(asString(fields, "style"))
		if !ok {
			continue
		}
		id := StyleID{Language: lang, Register: reg}
		if !cfg.StyleEnabled(id) {
			continue
		}

		source := asString(fields, "source")
		gloss := glossField(fields, cfg.MotherTongue)
		if source == "" && gloss == "" {
			continue
		}

		entry := AlignmentEntry{
			SourceUnit:    source,
			GlossUnit:     gloss,
			Order:         asInt(fields, "order", len(grouped[id])),
			AtomicUnit:    atomicField(fields),
			Confidence:    clamp01(asFloat(fields, "confidence", 1.0)),
			DisplayFormat: displayField(fields),
			Note:          noteField(fields),
			Provenance:    ProvenanceAI,
		}
		grouped[id] = append(grouped[id], entry)
	}
	return grouped
}

// structuredSentence pulls a style's sentence from the structured
// translations map when the server sends one.
func structuredSentence(translations map[string]string, id StyleID) (string, bool) {
	if len(translations) == 0 {
		return "", false
	}
	for _, key := range []string{id.Key(), id.String()} {
		if s, ok := translations[key]; ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s), true
		}
	}
	return "", false
}

// recoverSentence is the best-effort pattern search over the
// undifferentiated translated-text blob: find a labeled section heading
// matching the style name and take the following non-empty line. A heading
// that carries the sentence on the same line after a colon also counts.
func recoverSentence(blob string, id StyleID) (string, bool) {
	if strings.TrimSpace(blob) == "" {
		return "", false
	}

	langName := strings.ToLower(GetLanguageName(id.Language))
	regName := strings.ToLower(string(id.Register))

	lines := strings.Split(blob, "\n")
	for i, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, langName) || !strings.Contains(lower, regName) {
			continue
		}

		if idx := strings.Index(line, ":"); idx >= 0 {
			if rest := strings.TrimSpace(line[idx+1:]); rest != "" {
				return rest, true
			}
		}
		for j := i + 1; j < len(lines); j++ {
			if next := strings.TrimSpace(lines[j]); next != "" {
				return next, true
			}
		}
	}
	return "", false
}

// glossField finds the mother-tongue gloss. Well-behaved servers use
// "gloss"; older ones key the gloss by the mother tongue's name.
func glossField(fields map[string]any, mt Language) string {
	if g := asString(fields, "gloss"); g != "" {
		return g
	}
	if g := asString(fields, string(mt)); g != "" {
		return g
	}
	return asString(fields, "translation")
}

func atomicField(fields map[string]any) bool {
	for _, key := range []string{"is_atomic_phrase", "atomic_unit", "is_phrase"} {
		if v, ok := fields[key]; ok {
			return coerceBool(v, false)
		}
	}
	return false
}

func displayField(fields map[string]any) string {
	if d := asString(fields, "display_format"); d != "" {
		return d
	}
	return asString(fields, "display")
}

func noteField(fields map[string]any) string {
	if n := asString(fields, "explanation"); n != "" {
		return n
	}
	return asString(fields, "note")
}

// asString reads a string field, stringifying numbers, tolerating absence.
func asString(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// asInt reads an integer field that may arrive as a JSON number or a
// numeric string.
func asInt(fields map[string]any, key string, def int) int {
	v, ok := fields[key]
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return def
}

// asFloat reads a float field that may arrive as a JSON number or a
// numeric string.
func asFloat(fields map[string]any, key string, def float64) float64 {
	v, ok := fields[key]
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f
		}
	}
	return def
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
