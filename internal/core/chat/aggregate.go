package chat

import (
	"garden-advisor/internal/core/catalog"
	"garden-advisor/internal/pkg/common"

	"go.uber.org/zap"
)

// Aggregator collects candidate products for a set of category IDs.
type Aggregator struct {
	index       *catalog.Index
	categoryCap int
}

// NewAggregator creates the candidate aggregator. cap bounds the products
// taken per category to keep the generator prompt inside the token budget.
func NewAggregator(index *catalog.Index, categoryCap int) *Aggregator {
	return &Aggregator{
		index:       index,
		categoryCap: categoryCap,
	}
}

// Aggregate returns the unique candidate products across categoryIDs, in
// order of first appearance. Empty input or empty categories yield an empty
// list, not an error.
func (a *Aggregator) Aggregate(categoryIDs []string) []catalog.Product {
	var candidates []catalog.Product
	seen := make(map[string]struct{})

	for _, id := range categoryIDs {
		products := a.index.ProductsByCategory(id)
		if len(products) > a.categoryCap {
			products = products[:a.categoryCap]
		}

		common.LogDebug("aggregated category",
			zap.String("category_id", id),
			zap.Int("products", len(products)),
		)

		for _, p := range products {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			candidates = append(candidates, p)
		}
	}

	return candidates
}
