package lexalign

import (
	"strings"
	"unicode"
)

// FallbackGlossMarker is the explicit degraded-data marker carried in the
// gloss of every fallback entry. It is never a guessed translation: guessing
// and mislabeling it as real output would be worse than omission.
const FallbackGlossMarker = "(gloss unavailable)"

// FallbackNote is attached to every generated entry so the UI and tests can
// tell a safety-net placeholder from real AI output.
const FallbackNote = "generated locally; backend sent no alignment for this style"

// Confidence band for fallback entries. The values exist purely to keep UI
// rendering consistent with non-degraded entries.
const (
	fallbackConfidenceLow  = 0.80
	fallbackConfidenceHigh = 0.98
)

// GenerateFallback produces degraded alignment entries for a style the
// backend sent no alignment for. It tokenizes the sentence by whitespace,
// strips leading and trailing punctuation from each token, and emits one
// clearly marked entry per surviving token.
//
// This is a display safety net, not a translation algorithm. Its output is
// always tagged ProvenanceFallback and must never be promoted to aiSourced.
func GenerateFallback(sentenceText string, language Language) []AlignmentEntry {
	fields := strings.Fields(sentenceText)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.TrimFunc(f, unicode.IsPunct)
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) == 0 {
		return nil
	}

	entries := make([]AlignmentEntry, len(tokens))
	for i, tok := range tokens {
		entries[i] = AlignmentEntry{
			SourceUnit:    tok,
			GlossUnit:     FallbackGlossMarker,
			Order:         i,
			AtomicUnit:    false,
			Confidence:    fallbackConfidence(i, len(tokens)),
			DisplayFormat: DisplayFormat(tok, FallbackGlossMarker),
			Note:          FallbackNote,
			Provenance:    ProvenanceFallback,
		}
	}
	return entries
}

// fallbackConfidence assigns confidences on an ascending band inside
// [0.80, 0.98].
func fallbackConfidence(i, n int) float64 {
	if n <= 1 {
		return fallbackConfidenceLow
	}
	step := (fallbackConfidenceHigh - fallbackConfidenceLow) / float64(n-1)
	return fallbackConfidenceLow + step*float64(i)
}
