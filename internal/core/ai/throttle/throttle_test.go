package throttle

import (
	"context"
	"testing"
	"time"
)

func TestWaitFirstCallDoesNotBlock(t *testing.T) {
	l := NewLimiter(500 * time.Millisecond)

	start := time.Now()
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("first Wait blocked for %v, want immediate", elapsed)
	}
}

func TestWaitEnforcesMinimumGap(t *testing.T) {
	const minDelay = 150 * time.Millisecond
	l := NewLimiter(minDelay)

	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait: %v", err)
	}

	start := time.Now()
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("second Wait: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed < minDelay-10*time.Millisecond {
		t.Errorf("second Wait returned after %v, want at least %v", elapsed, minDelay)
	}
	if elapsed > minDelay+50*time.Millisecond {
		t.Errorf("second Wait took %v, want about %v", elapsed, minDelay)
	}
}

func TestWaitStampsBeforeReturning(t *testing.T) {
	const minDelay = 100 * time.Millisecond
	l := NewLimiter(minDelay)

	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait: %v", err)
	}

	// A slow network call after Wait must not shorten the next gap.
	time.Sleep(minDelay)

	start := time.Now()
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("second Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("second Wait blocked for %v after the gap had already passed", elapsed)
	}
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	l := NewLimiter(5 * time.Second)

	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := l.Wait(ctx)
	if err == nil {
		t.Fatal("Wait returned nil, want context error")
	}
	if err != context.DeadlineExceeded {
		t.Errorf("Wait returned %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("cancelled Wait took %v, want prompt return", elapsed)
	}
}

func TestResetClearsTheClock(t *testing.T) {
	l := NewLimiter(5 * time.Second)

	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait: %v", err)
	}
	l.Reset()

	start := time.Now()
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("second Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("Wait after Reset blocked for %v, want immediate", elapsed)
	}
}
