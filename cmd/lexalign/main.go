// Command lexalign runs one translation turn against the AI backend and
// prints the resulting word-alignment model.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/LexaLabs/lexalign"
	"github.com/LexaLabs/lexalign/provider"
	"github.com/LexaLabs/lexalign/store"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = lexalign.Version
	commit    = lexalign.GitCommit
	buildDate = lexalign.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lexalign", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	motherTongue := fs.String("mother-tongue", "", "Mother tongue (spanish, english, german)")
	styles := fs.String("styles", "", "Comma-separated styles to enable (e.g. german-colloquial,english-formal)")
	wordByWord := fs.String("word-by-word", "", "Comma-separated languages narrated word by word")
	configFile := fs.String("config", "", "Config file (default: env only)")
	redisURL := fs.String("redis", "", "Redis URL for the settings store (default: in-memory)")
	apiKey := fs.String("api-key", "", "OpenAI API key (default: OPENAI_API_KEY env)")
	model := fs.String("model", "", "OpenAI model to use")
	timeout := fs.Duration("timeout", 60*time.Second, "Request timeout")
	jsonOutput := fs.Bool("json", false, "Output the turn result as JSON")
	htmlOutput := fs.String("html", "", "Write the rendered HTML model to a file")
	quiet := fs.Bool("quiet", false, "Suppress progress logging")
	showVersion := fs.Bool("version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", lexalign.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	if *apiKey != "" {
		cfg.APIKey = *apiKey
	}
	if *model != "" {
		cfg.Model = *model
	}
	if *redisURL != "" {
		cfg.RedisURL = *redisURL
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("no API key: use --api-key, OPENAI_API_KEY or LEXALIGN_API_KEY")
	}

	utterance, err := readUtterance(fs.Args())
	if err != nil {
		return err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	if *quiet {
		logger = zerolog.Nop()
	}

	settings, err := buildStore(cfg.RedisURL, *motherTongue, *styles, *wordByWord)
	if err != nil {
		return err
	}

	backend := lexalign.NewRetryableBackend(
		provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey: cfg.APIKey,
			Model:  cfg.Model,
		}),
		lexalign.DefaultRetryConfig(),
	)

	engine := lexalign.NewEngine(backend,
		lexalign.WithStore(settings),
		lexalign.WithLogger(logger),
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := engine.Submit(ctx, utterance)
	if err != nil {
		return err
	}

	if *htmlOutput != "" {
		html, err := lexalign.RenderHTML(result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*htmlOutput, []byte(html), 0o644); err != nil {
			return fmt.Errorf("writing HTML: %w", err)
		}
	}

	if *jsonOutput {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printResult(stdout, result)
	return nil
}

// appConfig is the process-level configuration, distinct from the per-turn
// raw preference bag.
type appConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	RedisURL string `mapstructure:"redis_url"`
}

// loadConfig merges LEXALIGN_* environment variables with an optional
// config file.
func loadConfig(path string) (*appConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("LEXALIGN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"api_key", "model", "redis_url"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &appConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return cfg, nil
}

// buildStore assembles the settings store and seeds it with the
// flag-provided preferences.
func buildStore(redisURL, motherTongue, styles, wordByWord string) (lexalign.SettingsStore, error) {
	var s lexalign.SettingsStore
	if redisURL != "" {
		rs, err := store.NewRedisStore(store.RedisConfig{URL: redisURL})
		if err != nil {
			return nil, err
		}
		s = rs
	} else {
		s = store.NewMemoryStore()
	}

	prefs, err := s.Get()
	if err != nil {
		return nil, err
	}
	if prefs == nil {
		prefs = map[string]any{}
	}

	if motherTongue != "" {
		prefs["mother_tongue"] = motherTongue
	}
	for _, style := range splitList(styles) {
		prefs[strings.ReplaceAll(style, "-", "_")] = true
	}
	for _, lang := range splitList(wordByWord) {
		prefs[lang+"_word_by_word"] = true
	}

	if err := s.Put(prefs); err != nil {
		return nil, err
	}
	return s, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(strings.ToLower(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// readUtterance takes the utterance from the remaining args, or stdin when
// none are given.
func readUtterance(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	utterance := strings.TrimSpace(string(data))
	if utterance == "" {
		return "", fmt.Errorf("no utterance: pass it as an argument or on stdin")
	}
	return utterance, nil
}

func printResult(w io.Writer, result *lexalign.TurnResult) {
	fmt.Fprintf(w, "turn %s [%s]\n", result.ID, result.State)
	for _, st := range result.Styles {
		marker := ""
		if st.Degraded {
			marker = " (degraded)"
		}
		fmt.Fprintf(w, "\n%s (%s)%s  sync=%.2f\n", lexalign.GetLanguageName(st.Style.Language),
			st.Style.Register, marker, st.SyncHealth)
		fmt.Fprintf(w, "  %s\n", st.SentenceText)
		mode := lexalign.ModeFor(st.Style.Language, result.Config)
		fmt.Fprintf(w, "  audio: %s\n", mode)
		for _, e := range st.Entries {
			fmt.Fprintf(w, "    %2d. %s\n", e.Order, e.DisplayFormat)
		}
	}
}
