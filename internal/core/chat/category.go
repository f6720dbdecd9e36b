package chat

import (
	"context"
	"fmt"
	"strings"

	"garden-advisor/internal/core/catalog"
	upstream "garden-advisor/internal/core/service"
	"garden-advisor/internal/infrastructure/config"
	"garden-advisor/internal/pkg/common"

	"go.uber.org/zap"
)

// Classifier maps a free-text query to catalog category IDs via the LLM.
type Classifier struct {
	ai     CompletionClient
	config *config.Config
}

// NewClassifier creates the category classifier.
func NewClassifier(ai CompletionClient, cfg *config.Config) *Classifier {
	return &Classifier{
		ai:     ai,
		config: cfg,
	}
}

const classifierSystemPrompt = "You are a helpful assistant that analyzes queries and returns relevant category IDs. " +
	"You must ONLY return a valid JSON array of strings, with no additional text or explanation. " +
	"If the query is unrelated to garden or outdoor machinery, return []."

// Classify returns the IDs of the categories relevant to query. Every
// failure mode degrades to an empty list; the caller treats rejection and
// failure the same way.
func (c *Classifier) Classify(ctx context.Context, query string, categories []catalog.Category) []string {
	if len(categories) == 0 {
		common.LogWarn("classifier called with no categories")
		return nil
	}

	var lines strings.Builder
	for _, cat := range categories {
		fmt.Fprintf(&lines, "- %s (%s): %s\n", cat.Name, cat.ID, cat.Description)
	}

	prompt := fmt.Sprintf(`Given the following user query and list of product categories, analyze which categories are most relevant to the query. Return ONLY a JSON array containing the IDs of the relevant categories, with no additional text or explanation. If the query is unrelated to garden or outdoor machinery, return an empty array [].

User Query: "%s"

Available Categories:
%s
IMPORTANT: Return ONLY a JSON array of category IDs, with no additional text. For example: ["cortacespedes-electricos", "desbrozadoras"]`, query, lines.String())

	content, err := c.ai.Complete(ctx, classifierSystemPrompt, prompt, upstream.CompletionOptions{
		Temperature: 0.1,
		MaxTokens:   c.config.AI.ClassifierMaxTokens,
	})
	if err != nil {
		common.LogError("category classification call failed",
			zap.Error(err),
			zap.String("query", query),
		)
		return nil
	}

	ids := parseCategoryIDs(content)
	if ids == nil {
		common.LogWarn("category classification returned unparseable content",
			zap.String("query", query),
			zap.Int("response_length", len(content)),
		)
		return nil
	}

	common.LogDebug("classified query",
		zap.String("query", query),
		zap.Strings("category_ids", ids),
	)
	return ids
}

// parseCategoryIDs salvages a string array from model output. Accepts a bare
// array or an object wrapping one under "categories".
func parseCategoryIDs(content string) []string {
	text := common.StripCodeFences(content)

	var ids []string
	if err := common.ParseJSON(common.ExtractJSONArray(text), &ids); err == nil {
		return normalizeIDs(ids)
	}

	var wrapped struct {
		Categories []string `json:"categories"`
	}
	if err := common.ParseJSON(common.ExtractJSONObject(text), &wrapped); err == nil && wrapped.Categories != nil {
		return normalizeIDs(wrapped.Categories)
	}

	return nil
}

func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
