package lexalign

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Backend is the interface to the remote AI translation service. It is a
// pure transport: it ships one request and returns the raw response payload.
// Implementations live in the provider package; retry and rate-limit
// decorators wrap this interface.
type Backend interface {
	Translate(ctx context.Context, req Request) ([]byte, error)
}

// SettingsStore is the local key-value store holding the raw preference bag.
// The engine reads one immutable snapshot per turn and never re-reads
// ambient state mid-turn.
type SettingsStore interface {
	Get() (map[string]any, error)
	Put(map[string]any) error
}

// Engine runs one translation turn end to end: resolve settings, build the
// request, call the backend, parse and normalize the response. The finished
// model supersedes the previous turn's model wholesale.
//
// Turns are sequenced last-request-wins: if a new turn starts before the
// previous response arrives, the stale response is discarded once it shows
// up rather than applied out of order. A transport failure aborts the turn
// and keeps the previous READY/DEGRADED model visible.
type Engine struct {
	backend  Backend
	store    SettingsStore
	resolver *Resolver
	logger   zerolog.Logger

	mu      sync.Mutex
	seq     uint64
	state   TurnState
	current *TurnResult
}

// EngineOption is a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithStore sets the local settings store the engine snapshots each turn.
// Without one, every turn resolves from an empty bag (all defaults).
func WithStore(store SettingsStore) EngineOption {
	return func(e *Engine) {
		e.store = store
	}
}

// WithResolver replaces the default settings resolver.
func WithResolver(r *Resolver) EngineOption {
	return func(e *Engine) {
		e.resolver = r
	}
}

// WithLogger sets the engine logger. The default is a no-op logger so the
// library stays quiet unless asked.
func WithLogger(logger zerolog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an Engine for the given backend.
func NewEngine(backend Backend, opts ...EngineOption) *Engine {
	e := &Engine{
		backend:  backend,
		resolver: NewResolver(),
		logger:   zerolog.Nop(),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Submit runs one conversation turn for the utterance, resolving the
// configuration from the current settings snapshot.
func (e *Engine) Submit(ctx context.Context, utterance string) (*TurnResult, error) {
	return e.SubmitWithPreferences(ctx, utterance, e.snapshot())
}

// SubmitWithPreferences runs one turn with an explicit raw preference bag,
// bypassing the settings store.
func (e *Engine) SubmitWithPreferences(ctx context.Context, utterance string, prefs map[string]any) (*TurnResult, error) {
	cfg := e.resolver.Resolve(prefs)

	turnID := uuid.NewString()
	log := e.logger.With().Str("turn", turnID).Logger()
	if cfg.DefaultsApplied {
		// Informational, not an error: no style was selected and the
		// mother-tongue default set was substituted.
		log.Info().Str("mother_tongue", string(cfg.MotherTongue)).
			Msg("no styles enabled, defaults applied")
	}

	seq := e.begin()

	req := BuildRequest(cfg, utterance)
	raw, err := e.backend.Translate(ctx, req)
	if err != nil {
		e.fail(seq)
		log.Warn().Err(err).Msg("translation request failed")
		if _, ok := err.(*NetworkError); ok {
			return nil, err
		}
		return nil, &NetworkError{Message: "translation request failed", Cause: err}
	}

	if !e.transition(seq, StateParsing) {
		log.Debug().Msg("response arrived for superseded turn, discarding")
		return nil, &StaleResponseError{TurnID: turnID}
	}

	parsed, err := ParseResponse(raw, cfg)
	if err != nil {
		// An undecodable payload is the degenerate case of missing
		// alignment data: every requested style completes via fallback and
		// the turn finishes DEGRADED instead of failing.
		log.Warn().Err(err).Msg("undecodable payload, degrading all styles")
		parsed = emptyParsed(cfg)
	}

	if !e.transition(seq, StateNormalizing) {
		return nil, &StaleResponseError{TurnID: turnID}
	}

	styles, mismatches := NormalizeStyles(parsed.Styles)
	for _, m := range mismatches {
		log.Warn().Str("style", m.Style.String()).Int("order", m.Order).
			Msg("display/audio sync mismatch, entry retained")
	}

	result := &TurnResult{
		ID:        turnID,
		Utterance: utterance,
		Config:    cfg,
		Styles:    styles,
		State:     StateReady,
		AudioPath: parsed.AudioPath,
	}
	for _, st := range styles {
		if st.Degraded {
			result.State = StateDegraded
			break
		}
	}

	if !e.commit(seq, result) {
		return nil, &StaleResponseError{TurnID: turnID}
	}
	log.Info().Str("state", string(result.State)).Int("styles", len(styles)).
		Msg("turn complete")
	return result, nil
}

// Model returns the most recent READY or DEGRADED turn result, or nil before
// the first completed turn. A failed or superseded turn never clears it.
func (e *Engine) Model() *TurnResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// State returns the engine's current turn state.
func (e *Engine) State() TurnState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// snapshot reads the raw preference bag once. Store failures degrade to an
// empty bag: resolution is total and the turn must not die on a settings
// read.
func (e *Engine) snapshot() map[string]any {
	if e.store == nil {
		return map[string]any{}
	}
	prefs, err := e.store.Get()
	if err != nil {
		e.logger.Warn().Err(err).Msg("settings snapshot failed, resolving defaults")
		return map[string]any{}
	}
	return prefs
}

// begin registers a new turn and returns its sequence number. Any in-flight
// older turn is superseded from this point on.
func (e *Engine) begin() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq++
	e.state = StateRequesting
	return e.seq
}

// transition moves the engine to the next pipeline state if the turn is
// still the latest one.
func (e *Engine) transition(seq uint64, next TurnState) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if seq != e.seq {
		return false
	}
	e.state = next
	return true
}

// fail marks a transport failure. The previous model is retained; the next
// input returns the engine to work as usual.
func (e *Engine) fail(seq uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if seq == e.seq {
		e.state = StateError
	}
}

// commit installs the finished model if the turn is still the latest one.
func (e *Engine) commit(seq uint64, result *TurnResult) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if seq != e.seq {
		return false
	}
	e.current = result
	e.state = result.State
	return true
}

// emptyParsed builds the all-fallback parse result used when the payload
// cannot be decoded at all.
func emptyParsed(cfg Config) *ParsedResponse {
	styles := make(map[StyleID]*StyleTranslation, len(cfg.Styles))
	for _, id := range cfg.Styles {
		styles[id] = &StyleTranslation{Style: id, Degraded: true}
	}
	return &ParsedResponse{Styles: styles}
}
