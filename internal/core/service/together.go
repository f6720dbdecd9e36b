package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"garden-advisor/internal/infrastructure/config"
	"garden-advisor/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// TogetherService talks to the Together chat-completion endpoint.
type TogetherService struct {
	config *config.Config
	client *resty.Client
}

// CompletionOptions tune a single completion call. The classifier and the
// generator share the client but use different temperatures.
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
}

// APIError is returned for non-2xx upstream responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("together API error (status %d): %s", e.StatusCode, e.Body)
}

// NewTogetherService creates the upstream client.
func NewTogetherService(cfg *config.Config) *TogetherService {
	client := resty.New().
		SetBaseURL(cfg.Together.BaseURL).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Together.APIKey)).
		SetTimeout(cfg.Together.Timeout)

	return &TogetherService{
		config: cfg,
		client: client,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// Complete sends a system+user message pair and returns the assistant text.
func (s *TogetherService) Complete(ctx context.Context, system, user string, opts CompletionOptions) (string, error) {
	req := completionRequest{
		Model: s.config.Together.Model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	common.LogDebug("sending completion request",
		zap.String("model", req.Model),
		zap.Float64("temperature", req.Temperature),
		zap.Int("max_tokens", req.MaxTokens),
		zap.Int("user_prompt_length", len(user)),
	)

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")

	if err != nil {
		return "", fmt.Errorf("failed to send request to Together: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("together API returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", req.Model),
			zap.String("response", resp.String()),
		)
		return "", &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse Together response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in Together response")
	}

	content := result.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty content in Together response")
	}

	return content, nil
}
