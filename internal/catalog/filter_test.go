package catalog

import (
	"fmt"
	"reflect"
	"testing"

	d "github.com/fjod/go_storefront/internal/domain"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []d.Product {
	return []d.Product{
		{ID: 1, Name: "Spotify Premium", Category: "music", Price: 119},
		{ID: 2, Name: "netflix Standard", Category: "streaming", Price: 499},
		{ID: 3, Name: "Apple Music", Category: "Music", Price: 109},
		{ID: 4, Name: "Xbox Game Pass", Category: "gaming", Price: 549},
		{ID: 5, Name: "Coursera Plus", Category: "education", Price: 12999},
		{ID: 6, Name: "Éclair Learning", Category: "education", Price: 499},
	}
}

func ids(products []d.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter_AllIsPassthrough(t *testing.T) {
	products := sampleProducts()

	assert.Equal(t, products, Filter(products, AnyPrice("all")))
	assert.Equal(t, products, Filter(products, AnyPrice("ALL")))
	assert.Equal(t, products, Filter(products, AnyPrice("")))
}

func TestFilter_CategoryCaseInsensitive(t *testing.T) {
	got := Filter(sampleProducts(), AnyPrice("MUSIC"))

	assert.Equal(t, []int64{1, 3}, ids(got))
}

func TestFilter_PriceRangeInclusive(t *testing.T) {
	got := Filter(sampleProducts(), Criteria{Category: "all", MinPrice: 119, MaxPrice: 499})

	assert.Equal(t, []int64{1, 2, 6}, ids(got))
}

func TestFilter_NoMatches(t *testing.T) {
	got := Filter(sampleProducts(), AnyPrice("fitness"))

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSort(t *testing.T) {
	products := sampleProducts()

	low := Sort(products, SortPriceLow)
	assert.Equal(t, []int64{3, 1, 2, 6, 4, 5}, ids(low))
	assert.Equal(t, 109.0, low[0].Price)

	high := Sort(products, SortPriceHigh)
	assert.Equal(t, []int64{5, 4, 2, 6, 1, 3}, ids(high))

	byName := Sort(products, SortName)
	assert.Equal(t, []int64{3, 5, 6, 2, 1, 4}, ids(byName))

	assert.Equal(t, ids(products), ids(Sort(products, "popularity")))
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, ids(products), "input must not be mutated")
}

func TestView(t *testing.T) {
	got := View(sampleProducts(), AnyPrice("education"), SortPriceLow)

	assert.Equal(t, []int64{6, 5}, ids(got))
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"music", "streaming", "gaming", "education"}, Categories(sampleProducts()))
}

func genProducts() gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, 20000)).FlatMap(func(v interface{}) gopter.Gen {
		prices := v.([]int)
		return gen.SliceOfN(len(prices), gen.AlphaString()).Map(func(names []string) []d.Product {
			out := make([]d.Product, len(prices))
			categories := []string{"music", "streaming", "gaming"}
			for i, price := range prices {
				out[i] = d.Product{
					ID:       int64(i + 1),
					Name:     names[i],
					Category: categories[i%len(categories)],
					Price:    float64(price) / 100,
				}
			}
			return out
		})
	}, reflect.TypeOf([]d.Product{}))
}

func TestFilterSort_Idempotent(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	for _, method := range []string{SortPriceLow, SortPriceHigh, SortName} {
		method := method
		properties.Property(fmt.Sprintf("sort %s is idempotent", method), prop.ForAll(
			func(products []d.Product) bool {
				once := Sort(products, method)
				return reflect.DeepEqual(once, Sort(once, method))
			},
			genProducts(),
		))
	}

	properties.Property("filter is idempotent", prop.ForAll(
		func(products []d.Product, min, max int) bool {
			c := Criteria{Category: "music", MinPrice: float64(min), MaxPrice: float64(min + max)}
			once := Filter(products, c)
			return reflect.DeepEqual(once, Filter(once, c))
		},
		genProducts(),
		gen.IntRange(0, 100),
		gen.IntRange(0, 100),
	))

	properties.Property("price-low starts with the minimum", prop.ForAll(
		func(products []d.Product) bool {
			if len(products) == 0 {
				return true
			}
			sorted := Sort(products, SortPriceLow)
			for _, p := range products {
				if p.Price < sorted[0].Price {
					return false
				}
			}
			return true
		},
		genProducts(),
	))

	properties.TestingRun(t)
}

func TestSort_EmptyInput(t *testing.T) {
	got := Sort(nil, SortName)

	require.NotNil(t, got)
	assert.Empty(t, got)
}
