package cache

import "context"

// Store caches completion text keyed by a prompt digest.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
