package catalog

import (
	"math"
	"sort"
	"strings"

	d "github.com/fjod/go_storefront/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	CategoryAll = "all"

	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"
)

// Criteria narrows the product view. The price range is inclusive.
type Criteria struct {
	Category string
	MinPrice float64
	MaxPrice float64
}

// AnyPrice matches every product in the given category.
func AnyPrice(category string) Criteria {
	return Criteria{Category: category, MinPrice: 0, MaxPrice: math.Inf(1)}
}

func (c Criteria) matchesCategory(p d.Product) bool {
	category := strings.TrimSpace(c.Category)
	if category == "" || strings.EqualFold(category, CategoryAll) {
		return true
	}
	return strings.EqualFold(p.Category, category)
}

func (c Criteria) matchesPrice(p d.Product) bool {
	return p.Price >= c.MinPrice && p.Price <= c.MaxPrice
}

// Filter returns a new slice holding the matching products in input order.
func Filter(products []d.Product, c Criteria) []d.Product {
	out := make([]d.Product, 0, len(products))
	for _, p := range products {
		if c.matchesCategory(p) && c.matchesPrice(p) {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns a sorted copy. Unknown methods keep the input order.
func Sort(products []d.Product, method string) []d.Product {
	out := make([]d.Product, len(products))
	copy(out, products)

	switch method {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortName:
		// Collator keeps internal buffers, one per call.
		col := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Name, out[j].Name) < 0
		})
	}
	return out
}

// View applies Filter and then Sort.
func View(products []d.Product, c Criteria, method string) []d.Product {
	return Sort(Filter(products, c), method)
}

// Categories lists the distinct categories in order of first appearance.
func Categories(products []d.Product) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range products {
		key := strings.ToLower(p.Category)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
