package service

import (
	"context"
	"time"

	"garden-advisor/internal/core/ai/cache"
	"garden-advisor/internal/core/ai/throttle"
	upstream "garden-advisor/internal/core/service"
	"garden-advisor/internal/infrastructure/config"
	"garden-advisor/internal/pkg/common"
)

// Client is the upstream completion API surface the service depends on.
type Client interface {
	Complete(ctx context.Context, system, user string, opts upstream.CompletionOptions) (string, error)
}

// Service fronts every upstream completion call: it applies the shared
// throttle, consults the cache, then talks to the API.
type Service struct {
	config  *config.Config
	client  Client
	limiter *throttle.Limiter
	store   cache.Store
}

// NewService creates the AI service around a client and the shared limiter.
func NewService(cfg *config.Config, client Client, limiter *throttle.Limiter, store cache.Store) *Service {
	return &Service{
		config:  cfg,
		client:  client,
		limiter: limiter,
		store:   store,
	}
}

// Complete runs one completion call through throttle and cache.
func (s *Service) Complete(ctx context.Context, system, user string, opts upstream.CompletionOptions) (string, error) {
	key := cache.Key(s.config.Together.Model, system, user)

	if s.config.AI.EnableCache && s.store != nil {
		if val, err := s.store.Get(ctx, key); err == nil && val != "" {
			return val, nil
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	start := time.Now()
	content, err := s.client.Complete(ctx, system, user, opts)
	common.LogAICall("completion", time.Since(start), err, "")
	if err != nil {
		return "", err
	}

	if s.config.AI.EnableCache && s.store != nil {
		_ = s.store.Set(ctx, key, content)
	}

	return content, nil
}
