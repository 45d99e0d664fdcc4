package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/LexaLabs/lexalign"
)

// OpenAIProvider implements Backend using OpenAI's chat completion API. It is
// pure transport: it ships the request, demands the wire shape the response
// parser understands, and hands back the raw payload undecoded.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key (uses OPENAI_API_KEY env var if empty)
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Translate sends one translation request and returns the raw JSON payload.
func (p *OpenAIProvider) Translate(ctx context.Context, req Request) ([]byte, error) {
	systemPrompt := p.buildSystemPrompt(req)
	userMessage, err := json.Marshal(req)
	if err != nil {
		return nil, &lexalign.NetworkError{Message: "encoding request", Cause: err}
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(userMessage)},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &lexalign.NetworkError{
			Message:   "OpenAI API call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return nil, &lexalign.NetworkError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	return []byte(resp.Choices[0].Message.Content), nil
}

func (p *OpenAIProvider) buildSystemPrompt(req Request) string {
	motherTongue := lexalign.GetLanguageName(lexalign.ParseLanguage(req.StylePreferences.MotherTongue))

	var requested []string
	for _, key := range sortedKeys(req.StylePreferences.Styles) {
		if req.StylePreferences.Styles[key] {
			requested = append(requested, key)
		}
	}

	prompt := fmt.Sprintf(`# Role
You are an expert multilingual language tutor. The learner's mother tongue is %s.

# Task
Translate the learner's utterance into every requested style and produce a
word-by-word gloss for each. Requested styles (language_register): %s.

# Style Guide
- **Natural Flow**: Each style must read the way a native speaker of that register actually talks.
- **Atomic Units**: Keep phrasal verbs, separable verbs and compound words together as one unit; mark them.
- **Glosses**: Every gloss is in %s, the learner's mother tongue.
- **Ordering**: Number the units 0-based in natural narration order per style.

# Format
Return a single valid JSON object:
{
  "translated_text": "<one labeled section per style: a heading like 'German (colloquial):' followed by the sentence>",
  "translations": { "<language_register>": "<sentence>" },
  "word_by_word": {
    "<any unique key>": {
      "source": "<unit in the target language>",
      "gloss": "<%s equivalent>",
      "language": "<language>",
      "style": "<register>",
      "order": <0-based integer>,
      "is_atomic_phrase": <bool>,
      "confidence": <number in [0,1]>,
      "display_format": "[<source>] (<gloss>)",
      "explanation": "<optional short note>"
    }
  }
}
- display_format must be exactly "[" + source + "] (" + gloss + ")".
- Do NOT wrap the JSON in Markdown code blocks.
- Do NOT add styles that were not requested.`,
		motherTongue, strings.Join(requested, ", "), motherTongue, motherTongue)

	return prompt
}

// sortedKeys returns map keys in sorted order for a stable prompt.
func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isRetryableError(err error) bool {
	// Check for common retryable conditions
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"temporary",
		"503",
		"502",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// Verify OpenAIProvider implements Backend
var _ Backend = (*OpenAIProvider)(nil)
