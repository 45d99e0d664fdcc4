package audio

import (
	"context"
	"sync"
)

// Session serializes access to the single exclusively-owned playback
// resource: starting new playback always stops whatever is currently
// playing first, so there is never more than one active playback session.
// Cancellation is implicit — superseding, not an explicit cancel signal.
type Session struct {
	player Player

	mu  sync.Mutex
	gen uint64
}

// NewSession wraps a Player in an exclusive session.
func NewSession(player Player) *Session {
	return &Session{player: player}
}

// Play stops any current playback and plays the clips in order. It returns
// when the last clip finishes, when the context is cancelled, or when a
// later Play supersedes this one.
func (s *Session) Play(ctx context.Context, clips ...Clip) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	s.player.Stop()

	for _, clip := range clips {
		if s.superseded(gen) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := s.player.Play(ctx, clip); err != nil {
			return err
		}
	}
	return nil
}

// Stop aborts the current playback, if any.
func (s *Session) Stop() {
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()
	s.player.Stop()
}

func (s *Session) superseded(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen != s.gen
}
