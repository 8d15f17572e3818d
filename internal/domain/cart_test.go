package domain

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id int64, price float64) Product {
	return Product{ID: id, Name: "Bundle", Category: "streaming", Price: price}
}

func TestAddToCart_RepeatedAddsMergeIntoOneLine(t *testing.T) {
	var cart Cart
	p := testProduct(7, 149)

	for i := 0; i < 5; i++ {
		cart.AddToCart(p)
	}

	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(7), cart.Items[0].ID)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddToCart_PreservesInsertionOrder(t *testing.T) {
	var cart Cart
	cart.AddToCart(testProduct(3, 10))
	cart.AddToCart(testProduct(1, 20))
	cart.AddToCart(testProduct(2, 30))
	cart.AddToCart(testProduct(3, 10))

	ids := []int64{}
	for _, item := range cart.Items {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []int64{3, 1, 2}, ids)
}

func TestTotalAndCount(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{Product: testProduct(1, 499), Quantity: 2},
		{Product: testProduct(2, 199), Quantity: 1},
	}}

	assert.Equal(t, float64(1197), cart.Total())
	assert.Equal(t, 3, cart.Count())
}

func TestTotal_RecomputedAfterMutation(t *testing.T) {
	var cart Cart
	cart.AddToCart(testProduct(1, 499))
	cart.AddToCart(testProduct(2, 199))
	assert.Equal(t, float64(698), cart.Total())

	cart.UpdateQuantity(1, 3)
	assert.Equal(t, float64(1696), cart.Total())

	cart.RemoveFromCart(2)
	assert.Equal(t, float64(1497), cart.Total())
	assert.Equal(t, 3, cart.Count())

	cart.Clear()
	assert.Zero(t, cart.Total())
	assert.Zero(t, cart.Count())
	assert.True(t, cart.IsEmpty())
}

func TestUpdateQuantity_BelowOneIsNoop(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
	}{
		{"zero", 0},
		{"negative", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cart Cart
			cart.AddToCart(testProduct(1, 100))
			cart.AddToCart(testProduct(1, 100))
			before := cart.Snapshot()

			cart.UpdateQuantity(1, tt.quantity)

			assert.Equal(t, before, cart.Items)
		})
	}
}

func TestUpdateQuantity_UnknownIDIsNoop(t *testing.T) {
	var cart Cart
	cart.AddToCart(testProduct(1, 100))

	cart.UpdateQuantity(99, 4)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestRemoveFromCart_AbsentIDIsNoop(t *testing.T) {
	var cart Cart
	cart.AddToCart(testProduct(1, 100))

	assert.NotPanics(t, func() { cart.RemoveFromCart(42) })
	assert.Len(t, cart.Items, 1)

	var empty Cart
	assert.NotPanics(t, func() { empty.RemoveFromCart(1) })
}

func TestTotalMinor_UsesIntegerArithmetic(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{Product: testProduct(1, 4.99), Quantity: 3},
		{Product: testProduct(2, 0.1), Quantity: 7},
	}}

	minor, err := cart.TotalMinor(CurrencyUSD)
	require.NoError(t, err)
	assert.Equal(t, int64(3*499+7*10), minor)
}

func TestSnapshot_IsIndependentCopy(t *testing.T) {
	var cart Cart
	cart.AddToCart(testProduct(1, 100))

	snap := cart.Snapshot()
	cart.UpdateQuantity(1, 9)
	cart.Clear()

	require.Len(t, snap, 1)
	assert.Equal(t, 1, snap[0].Quantity)
}

func TestCartProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("n adds give one line with quantity n", prop.ForAll(
		func(n int) bool {
			var cart Cart
			p := testProduct(11, 250)
			for i := 0; i < n; i++ {
				cart.AddToCart(p)
			}
			return len(cart.Items) == 1 && cart.Items[0].Quantity == n && cart.Count() == n
		},
		gen.IntRange(1, 200),
	))

	properties.Property("total equals sum of price times quantity", prop.ForAll(
		func(quantities []int) bool {
			var cart Cart
			var want float64
			for i, q := range quantities {
				p := testProduct(int64(i+1), float64(i*10+5))
				cart.AddToCart(p)
				cart.UpdateQuantity(p.ID, q)
				want += p.Price * float64(q)
			}
			return cart.Total() == want
		},
		gen.SliceOf(gen.IntRange(1, 50)),
	))

	properties.TestingRun(t)
}
