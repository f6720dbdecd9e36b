package chat

import (
	"regexp"
	"sort"
	"strings"

	"garden-advisor/internal/core/catalog"
	"garden-advisor/internal/pkg/common"

	"go.uber.org/zap"
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	skuPathPattern      = regexp.MustCompile(`/p/(\d+)`)
)

// Extractor resolves the generator's free-form text back to catalog
// products. It never fails; an unresolvable text yields an empty list.
type Extractor struct {
	resolvers []resolver
}

// resolver tries to match one markdown link to a candidate. Strategies are
// tried in order until one returns a product.
type resolver func(label, url string, idx *candidateIndex) *catalog.Product

// candidateIndex provides the lookups the resolvers share for one call.
type candidateIndex struct {
	products []catalog.Product
	byURL    map[string]int
	byID     map[string]int
}

func newCandidateIndex(candidates []catalog.Product) *candidateIndex {
	idx := &candidateIndex{
		products: candidates,
		byURL:    make(map[string]int, len(candidates)),
		byID:     make(map[string]int, len(candidates)),
	}
	for i, p := range candidates {
		if p.URL != "" {
			idx.byURL[normalizeURL(p.URL)] = i
		}
		idx.byID[p.ID] = i
	}
	return idx
}

func normalizeURL(url string) string {
	return strings.TrimRight(strings.TrimSpace(url), "/")
}

// NewExtractor creates the response extractor with the default resolver
// chain: exact URL, SKU path segment, then name match.
func NewExtractor() *Extractor {
	return &Extractor{
		resolvers: []resolver{
			resolveByURL,
			resolveBySKU,
			resolveByName,
		},
	}
}

// Extract returns the candidates referenced by rawText, at most three, in
// order of first occurrence.
func (e *Extractor) Extract(rawText string, candidates []catalog.Product) []catalog.Product {
	if strings.TrimSpace(rawText) == "" || len(candidates) == 0 {
		return nil
	}

	idx := newCandidateIndex(candidates)

	matched := e.extractFromLinks(rawText, idx)
	if len(matched) == 0 {
		matched = extractFromBareSKUs(rawText, idx)
	}
	if len(matched) == 0 {
		matched = extractFromNames(rawText, idx)
	}

	if len(matched) > maxRecommended {
		matched = matched[:maxRecommended]
	}

	common.LogDebug("extracted products from response",
		zap.Int("matched", len(matched)),
		zap.Int("candidates", len(candidates)),
	)
	return matched
}

// extractFromLinks runs the resolver chain over every markdown link.
func (e *Extractor) extractFromLinks(rawText string, idx *candidateIndex) []catalog.Product {
	var matched []catalog.Product
	seen := make(map[string]struct{})

	for _, m := range markdownLinkPattern.FindAllStringSubmatch(rawText, -1) {
		label, url := m[1], m[2]

		for _, resolve := range e.resolvers {
			p := resolve(label, url, idx)
			if p == nil {
				continue
			}
			if _, ok := seen[p.ID]; !ok {
				seen[p.ID] = struct{}{}
				matched = append(matched, *p)
			}
			break
		}
	}

	return matched
}

// extractFromBareSKUs scans the whole text for SKU-shaped path segments,
// used when no markdown link resolved.
func extractFromBareSKUs(rawText string, idx *candidateIndex) []catalog.Product {
	var matched []catalog.Product
	seen := make(map[string]struct{})

	for _, m := range skuPathPattern.FindAllStringSubmatch(rawText, -1) {
		i, ok := idx.byID[m[1]]
		if !ok {
			continue
		}
		p := idx.products[i]
		if _, dup := seen[p.ID]; !dup {
			seen[p.ID] = struct{}{}
			matched = append(matched, p)
		}
	}

	return matched
}

// extractFromNames scans for verbatim candidate names, the last resort.
// Ordered by position of first occurrence in the text, not candidate order.
func extractFromNames(rawText string, idx *candidateIndex) []catalog.Product {
	type hit struct {
		pos     int
		product catalog.Product
	}

	var hits []hit
	for _, p := range idx.products {
		if p.Name == "" {
			continue
		}
		if pos := strings.Index(rawText, p.Name); pos != -1 {
			hits = append(hits, hit{pos: pos, product: p})
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	matched := make([]catalog.Product, 0, len(hits))
	for _, h := range hits {
		matched = append(matched, h.product)
	}
	return matched
}

func resolveByURL(_, url string, idx *candidateIndex) *catalog.Product {
	if i, ok := idx.byURL[normalizeURL(url)]; ok {
		return &idx.products[i]
	}
	return nil
}

func resolveBySKU(_, url string, idx *candidateIndex) *catalog.Product {
	m := skuPathPattern.FindStringSubmatch(url)
	if m == nil {
		return nil
	}
	if i, ok := idx.byID[m[1]]; ok {
		return &idx.products[i]
	}
	return nil
}

// resolveByName folds accents and case on both sides and accepts either
// containment direction, since models abbreviate long product names.
func resolveByName(label, _ string, idx *candidateIndex) *catalog.Product {
	folded := common.FoldText(label)
	if folded == "" {
		return nil
	}
	for i, p := range idx.products {
		name := common.FoldText(p.Name)
		if name == "" {
			continue
		}
		if strings.Contains(name, folded) || strings.Contains(folded, name) {
			return &idx.products[i]
		}
	}
	return nil
}
