package catalog

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"garden-advisor/internal/pkg/common"

	"go.uber.org/zap"
)

// Product is one normalized catalog entry. Built once at load time and
// never mutated afterwards.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	URL         string  `json:"url"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
}

// categoryLevels mirrors the feed's six-level category hierarchy. Every
// field is optional at this boundary.
type categoryLevels struct {
	SubCategory1 string `json:"subCategory1"`
	SubCategory2 string `json:"subCategory2"`
	SubCategory3 string `json:"subCategory3"`
	SubCategory4 string `json:"subCategory4"`
	SubCategory5 string `json:"subCategory5"`
	SubCategory6 string `json:"subCategory6"`
}

func (c categoryLevels) all() []string {
	return []string{
		c.SubCategory1,
		c.SubCategory2,
		c.SubCategory3,
		c.SubCategory4,
		c.SubCategory5,
		c.SubCategory6,
	}
}

// record is the loose external shape of one feed entry. It never leaves
// this package: entries are normalized into Product immediately after load.
type record struct {
	Datalayer struct {
		Product struct {
			Item []categoryLevels `json:"item"`
		} `json:"product"`
	} `json:"datalayer"`
	Schema struct {
		SKU         string `json:"sku"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Image       string `json:"image"`
		URL         string `json:"url"`
		Brand       struct {
			Name string `json:"name"`
		} `json:"brand"`
		Offers struct {
			Price string `json:"price"`
		} `json:"offers"`
	} `json:"schema"`
}

type entry struct {
	product Product
	levels  categoryLevels
	folded  []string // folded non-sentinel level labels, for matching
}

// Index is the read-only in-memory view over the product catalog.
type Index struct {
	entries    []entry
	byID       map[string]int
	byURL      map[string]int
	categories []Category
}

const sentinel = "n/a"

// Load reads the catalog feed from path and builds the index.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var records []record
	if err := common.ParseJSONBytes(data, &records); err != nil {
		// some exports wrap a single record without the array
		var single record
		if err2 := common.ParseJSONBytes(data, &single); err2 != nil {
			return nil, fmt.Errorf("failed to parse catalog file: %w", err)
		}
		records = []record{single}
	}

	idx := newIndex(records)

	common.LogInfo("catalog loaded",
		zap.String("path", path),
		zap.Int("products", len(idx.entries)),
		zap.Int("categories", len(idx.categories)),
	)

	return idx, nil
}

func newIndex(records []record) *Index {
	idx := &Index{
		byID:  make(map[string]int),
		byURL: make(map[string]int),
	}

	for _, rec := range records {
		if rec.Schema.SKU == "" || rec.Schema.Name == "" {
			continue
		}

		var levels categoryLevels
		if len(rec.Datalayer.Product.Item) > 0 {
			levels = rec.Datalayer.Product.Item[0]
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(rec.Schema.Offers.Price), 64)
		if err != nil {
			price = 0
		}

		category := levels.SubCategory2
		if category == "" || category == sentinel {
			category = levels.SubCategory1
		}

		p := Product{
			ID:          rec.Schema.SKU,
			Name:        rec.Schema.Name,
			Description: rec.Schema.Description,
			Price:       price,
			Image:       rec.Schema.Image,
			URL:         rec.Schema.URL,
			Category:    category,
			Brand:       rec.Schema.Brand.Name,
		}

		var folded []string
		for _, label := range levels.all() {
			if label == "" || label == sentinel {
				continue
			}
			folded = append(folded, common.FoldText(label))
		}

		pos := len(idx.entries)
		idx.entries = append(idx.entries, entry{product: p, levels: levels, folded: folded})
		if _, dup := idx.byID[p.ID]; !dup {
			idx.byID[p.ID] = pos
		}
		if p.URL != "" {
			if _, dup := idx.byURL[normalizeURL(p.URL)]; !dup {
				idx.byURL[normalizeURL(p.URL)] = pos
			}
		}
	}

	idx.categories = deriveCategories(idx.entries)

	return idx
}

// Len returns the number of indexed products.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// ProductsByCategory returns every product whose category hierarchy matches
// the given token. Matching is case- and accent-insensitive and bidirectional
// on containment, so both "cortacespedes" and "cortacéspedes eléctricos de
// bauhaus" find the electric-mower level.
func (idx *Index) ProductsByCategory(token string) []Product {
	needle := common.FoldText(strings.ReplaceAll(token, "-", " "))
	if needle == "" {
		return nil
	}

	var out []Product
	for _, e := range idx.entries {
		for _, label := range e.folded {
			if strings.Contains(label, needle) || strings.Contains(needle, label) {
				out = append(out, e.product)
				break
			}
		}
	}
	return out
}

// ProductByID looks up a product by its SKU.
func (idx *Index) ProductByID(id string) (Product, bool) {
	pos, ok := idx.byID[id]
	if !ok {
		return Product{}, false
	}
	return idx.entries[pos].product, true
}

// ProductByURL looks up a product by its canonical page URL.
func (idx *Index) ProductByURL(url string) (Product, bool) {
	pos, ok := idx.byURL[normalizeURL(url)]
	if !ok {
		return Product{}, false
	}
	return idx.entries[pos].product, true
}

func normalizeURL(url string) string {
	return strings.TrimSuffix(strings.TrimSpace(url), "/")
}
