package chat

import (
	"context"

	"garden-advisor/internal/core/catalog"
	upstream "garden-advisor/internal/core/service"
)

// CompletionClient is the LLM call surface the chat pipeline depends on.
// The AI service satisfies it; tests substitute a mock.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string, opts upstream.CompletionOptions) (string, error)
}

// Response is the orchestrator's terminal value. Products holds at most
// three catalog products; Explanation is a machine-facing status string.
type Response struct {
	Text        string            `json:"text"`
	Products    []catalog.Product `json:"products"`
	Explanation string            `json:"explanation"`
}

// maxRecommended bounds the product list of every response.
const maxRecommended = 3
