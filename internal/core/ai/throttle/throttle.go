package throttle

import (
	"context"
	"sync"
	"time"

	"garden-advisor/internal/pkg/common"

	"go.uber.org/zap"
)

// Limiter enforces a minimum gap between successive upstream calls. One
// shared instance serves both the classifier and the generator; they talk to
// the same endpoint and share its rate limit.
type Limiter struct {
	mu       sync.Mutex
	last     time.Time
	minDelay time.Duration
}

// NewLimiter creates a limiter with the given minimum inter-call delay.
func NewLimiter(minDelay time.Duration) *Limiter {
	return &Limiter{
		minDelay: minDelay,
	}
}

// Wait blocks until at least the configured delay has passed since the last
// call started. The timestamp is stamped before returning, not after the
// network call completes, so back-to-back calls stay throttled even when the
// upstream is slow.
func (l *Limiter) Wait(ctx context.Context) error {
	// the lock is held across the sleep so concurrent callers queue behind
	// the single slot
	l.mu.Lock()
	defer l.mu.Unlock()

	wait := l.minDelay - time.Since(l.last)
	if wait > 0 {
		common.LogDebug("throttling upstream call",
			zap.Duration("wait", wait),
		)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	l.last = time.Now()
	return nil
}

// Reset clears the last-call timestamp.
func (l *Limiter) Reset() {
	l.mu.Lock()
	l.last = time.Time{}
	l.mu.Unlock()
}
