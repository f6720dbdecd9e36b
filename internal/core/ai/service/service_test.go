package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"garden-advisor/internal/core/ai/cache"
	"garden-advisor/internal/core/ai/throttle"
	upstream "garden-advisor/internal/core/service"
	"garden-advisor/internal/infrastructure/config"
)

type fakeClient struct {
	calls    int
	response string
	err      error
}

func (f *fakeClient) Complete(ctx context.Context, system, user string, opts upstream.CompletionOptions) (string, error) {
	f.calls++
	return f.response, f.err
}

func serviceConfig(cacheEnabled bool) *config.Config {
	return &config.Config{
		Together: config.TogetherConfig{Model: "test-model"},
		AI: config.AIConfig{
			EnableCache: cacheEnabled,
		},
		Cache: config.CacheConfig{
			Enabled:         cacheEnabled,
			MaxSize:         10,
			TTL:             time.Minute,
			CleanupInterval: time.Hour,
		},
	}
}

func TestCompleteCachesResponses(t *testing.T) {
	cfg := serviceConfig(true)
	client := &fakeClient{response: "respuesta"}
	store := cache.NewManager(cfg)
	s := NewService(cfg, client, throttle.NewLimiter(0), store)

	ctx := context.Background()
	got, err := s.Complete(ctx, "sys", "user", upstream.CompletionOptions{})
	if err != nil {
		t.Fatalf("first Complete: %v", err)
	}
	if got != "respuesta" {
		t.Errorf("Complete = %q", got)
	}

	got, err = s.Complete(ctx, "sys", "user", upstream.CompletionOptions{})
	if err != nil {
		t.Fatalf("second Complete: %v", err)
	}
	if got != "respuesta" {
		t.Errorf("cached Complete = %q", got)
	}
	if client.calls != 1 {
		t.Errorf("upstream called %d times, want 1 (second served from cache)", client.calls)
	}
}

func TestCompleteDistinctPromptsMissCache(t *testing.T) {
	cfg := serviceConfig(true)
	client := &fakeClient{response: "respuesta"}
	store := cache.NewManager(cfg)
	s := NewService(cfg, client, throttle.NewLimiter(0), store)

	ctx := context.Background()
	if _, err := s.Complete(ctx, "sys", "user A", upstream.CompletionOptions{}); err != nil {
		t.Fatalf("Complete A: %v", err)
	}
	if _, err := s.Complete(ctx, "sys", "user B", upstream.CompletionOptions{}); err != nil {
		t.Fatalf("Complete B: %v", err)
	}
	if client.calls != 2 {
		t.Errorf("upstream called %d times, want 2", client.calls)
	}
}

func TestCompleteWithoutCache(t *testing.T) {
	cfg := serviceConfig(false)
	client := &fakeClient{response: "respuesta"}
	s := NewService(cfg, client, throttle.NewLimiter(0), nil)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := s.Complete(ctx, "sys", "user", upstream.CompletionOptions{}); err != nil {
			t.Fatalf("Complete: %v", err)
		}
	}
	if client.calls != 2 {
		t.Errorf("upstream called %d times, want 2 without cache", client.calls)
	}
}

func TestCompletePropagatesErrors(t *testing.T) {
	cfg := serviceConfig(false)
	wantErr := errors.New("upstream down")
	client := &fakeClient{err: wantErr}
	s := NewService(cfg, client, throttle.NewLimiter(0), nil)

	if _, err := s.Complete(context.Background(), "sys", "user", upstream.CompletionOptions{}); !errors.Is(err, wantErr) {
		t.Errorf("Complete error = %v, want %v", err, wantErr)
	}
}

func TestCompleteAppliesThrottle(t *testing.T) {
	cfg := serviceConfig(false)
	client := &fakeClient{response: "ok"}
	const minDelay = 120 * time.Millisecond
	s := NewService(cfg, client, throttle.NewLimiter(minDelay), nil)

	ctx := context.Background()
	if _, err := s.Complete(ctx, "sys", "a", upstream.CompletionOptions{}); err != nil {
		t.Fatalf("first Complete: %v", err)
	}

	start := time.Now()
	if _, err := s.Complete(ctx, "sys", "b", upstream.CompletionOptions{}); err != nil {
		t.Fatalf("second Complete: %v", err)
	}
	if elapsed := time.Since(start); elapsed < minDelay-10*time.Millisecond {
		t.Errorf("second call after %v, want at least %v", elapsed, minDelay)
	}
}

func TestCompleteAbortsOnCancelledContext(t *testing.T) {
	cfg := serviceConfig(false)
	client := &fakeClient{response: "ok"}
	s := NewService(cfg, client, throttle.NewLimiter(5*time.Second), nil)

	if _, err := s.Complete(context.Background(), "sys", "a", upstream.CompletionOptions{}); err != nil {
		t.Fatalf("first Complete: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if _, err := s.Complete(ctx, "sys", "b", upstream.CompletionOptions{}); err == nil {
		t.Error("Complete returned nil error with cancelled context")
	}
	if client.calls != 1 {
		t.Errorf("upstream called %d times, want 1 (second call cancelled in throttle)", client.calls)
	}
}
