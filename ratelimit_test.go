package lexalign

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestRateLimiter_Burst(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 60,
		BurstSize:         3,
	})

	for i := 0; i < 3; i++ {
		if !limiter.TryAcquire() {
			t.Errorf("Acquire %d within burst should succeed", i)
		}
	}
	if limiter.TryAcquire() {
		t.Error("Acquire beyond burst should fail")
	}
}

func TestRateLimiter_Defaults(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{})
	if avail := limiter.Available(); avail != 60 {
		t.Errorf("Default bucket = %f, want 60", avail)
	}
}

func TestRateLimiter_WaitCancelled(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 1,
		BurstSize:         1,
	})

	// Drain the bucket
	limiter.TryAcquire()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx); err == nil {
		t.Error("Expected error when context cancelled")
	}
}

func TestRateLimiter_Available(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 60,
		BurstSize:         5,
	})

	if available := limiter.Available(); available != 5 {
		t.Errorf("Expected 5 available, got %f", available)
	}

	limiter.TryAcquire()
	limiter.TryAcquire()

	available := limiter.Available()
	if available < 2.9 || available > 3.1 {
		t.Errorf("Expected ~3 available, got %f", available)
	}
}

func TestRateLimiter_Concurrent(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{
		RequestsPerMinute: 6000, // 100 per second
		BurstSize:         10,
	})

	var wg sync.WaitGroup
	acquired := int64(0)
	var mu sync.Mutex

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.TryAcquire() {
				mu.Lock()
				acquired++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	// Should have acquired exactly burst size
	if acquired != 10 {
		t.Errorf("Expected 10 acquired, got %d", acquired)
	}
}

func TestRateLimitedBackend(t *testing.T) {
	inner := &stubBackend{fn: func(req Request) ([]byte, error) {
		return payloadFor([]string{"german_colloquial"}), nil
	}}

	backend := NewRateLimitedBackend(inner, RateLimitConfig{
		RequestsPerMinute: 600,
		BurstSize:         2,
	})

	ctx := context.Background()
	cfg := NewResolver().Resolve(map[string]any{"german_colloquial": true})
	req := BuildRequest(cfg, "hallo")

	// First two should succeed immediately
	if _, err := backend.Translate(ctx, req); err != nil {
		t.Errorf("First translate failed: %v", err)
	}
	if _, err := backend.Translate(ctx, req); err != nil {
		t.Errorf("Second translate failed: %v", err)
	}

	// Third should wait for rate limit
	start := time.Now()
	_, err := backend.Translate(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		t.Errorf("Third translate failed: %v", err)
	}
	if elapsed < 50*time.Millisecond {
		t.Errorf("Expected rate limit wait, but returned in %v", elapsed)
	}
}

func TestRateLimitedBackend_ContextCancelled(t *testing.T) {
	inner := &stubBackend{fn: func(req Request) ([]byte, error) {
		return payloadFor([]string{"german_colloquial"}), nil
	}}

	backend := NewRateLimitedBackend(inner, RateLimitConfig{
		RequestsPerMinute: 1, // Very slow
		BurstSize:         1,
	})

	cfg := NewResolver().Resolve(map[string]any{"german_colloquial": true})
	req := BuildRequest(cfg, "hallo")

	// Drain the bucket
	if _, err := backend.Translate(context.Background(), req); err != nil {
		t.Fatalf("priming call failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := backend.Translate(ctx, req); err == nil {
		t.Error("Expected error when context cancelled")
	}
}
