package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// MockBackend is a canned translation backend for testing. It fabricates a
// well-formed payload for every requested style: the sentence is the
// utterance wrapped in the style key, and each whitespace token gets one
// alignment entry with a canonical display format.
type MockBackend struct {
	// Payload, when set, is returned verbatim instead of the fabricated one.
	Payload []byte

	// Err, when set, is returned instead of a payload.
	Err error

	CallCount   int      // Number of times Translate was called
	LastRequest *Request // Last request received
}

// NewMockBackend creates a mock backend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Translate returns the canned or fabricated payload.
func (m *MockBackend) Translate(ctx context.Context, req Request) ([]byte, error) {
	m.CallCount++
	reqCopy := req
	m.LastRequest = &reqCopy

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Payload != nil {
		return m.Payload, nil
	}

	translations := make(map[string]string)
	wbw := make(map[string]map[string]any)
	var blob strings.Builder

	for _, key := range sortedKeys(req.StylePreferences.Styles) {
		if !req.StylePreferences.Styles[key] {
			continue
		}
		lang, reg, ok := strings.Cut(key, "_")
		if !ok {
			continue
		}
		sentence := fmt.Sprintf("%s[%s]", key, req.Text)
		translations[key] = sentence
		fmt.Fprintf(&blob, "%s (%s):\n%s\n\n", capitalize(lang), reg, sentence)

		for i, tok := range strings.Fields(req.Text) {
			gloss := "g:" + tok
			wbw[fmt.Sprintf("%s-%03d", key, i)] = map[string]any{
				"source":           tok,
				"gloss":            gloss,
				"language":         lang,
				"style":            reg,
				"order":            i,
				"is_atomic_phrase": false,
				"confidence":       0.99,
				"display_format":   "[" + tok + "] (" + gloss + ")",
			}
		}
	}

	payload, err := json.Marshal(map[string]any{
		"translated_text": blob.String(),
		"translations":    translations,
		"word_by_word":    wbw,
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Reset resets the call count and last request.
func (m *MockBackend) Reset() {
	m.CallCount = 0
	m.LastRequest = nil
}

// Verify MockBackend implements Backend
var _ Backend = (*MockBackend)(nil)
