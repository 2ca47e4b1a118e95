package cartstate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"storefront/internal/model"
)

func testProduct(price string) *model.Product {
	return &model.Product{
		ID:    uuid.New(),
		Price: decimal.RequireFromString(price),
	}
}

func TestReduce_AddToCartIncrements(t *testing.T) {
	product := testProduct("10")

	state := NewState(nil)
	state = Reduce(state, AddToCart{Product: product, Quantity: 2})
	state = Reduce(state, AddToCart{Product: product, Quantity: 3})

	// one line with the summed quantity, never two lines
	assert.Len(t, state.Items, 1)
	assert.Equal(t, 5, state.Items[0].Quantity)
	assert.Equal(t, 5, state.ItemCount)
	assert.True(t, state.Total.Equal(decimal.NewFromInt(50)))
}

func TestReduce_UpdateQuantityOverwrites(t *testing.T) {
	product := testProduct("10")

	state := NewState([]Line{{Product: product, Quantity: 2}})
	state = Reduce(state, UpdateQuantity{ProductID: product.ID, Quantity: 7})

	assert.Len(t, state.Items, 1)
	assert.Equal(t, 7, state.Items[0].Quantity)
	assert.Equal(t, 7, state.ItemCount)
}

func TestReduce_UpdateQuantityToZeroRemoves(t *testing.T) {
	a := testProduct("10")
	b := testProduct("5")

	state := NewState([]Line{
		{Product: a, Quantity: 3},
		{Product: b, Quantity: 1},
	})
	before := state.ItemCount

	state = Reduce(state, UpdateQuantity{ProductID: a.ID, Quantity: 0})

	assert.Len(t, state.Items, 1)
	assert.Equal(t, b.ID, state.Items[0].Product.ID)
	assert.Equal(t, before-3, state.ItemCount)
	for _, line := range state.Items {
		assert.Greater(t, line.Quantity, 0)
	}
}

func TestReduce_TotalsSkipUnresolvableProducts(t *testing.T) {
	product := testProduct("10")

	state := NewState([]Line{
		{Product: product, Quantity: 2},
		{Product: nil, Quantity: 4}, // dangling reference
	})

	assert.True(t, state.Total.Equal(decimal.NewFromInt(20)))
	// item count still includes the dangling line's quantity
	assert.Equal(t, 6, state.ItemCount)
}

func TestReduce_RemoveFromCart(t *testing.T) {
	a := testProduct("10")
	b := testProduct("5")

	state := NewState([]Line{
		{Product: a, Quantity: 1},
		{Product: b, Quantity: 2},
	})
	state = Reduce(state, RemoveFromCart{ProductID: a.ID})

	assert.Len(t, state.Items, 1)
	assert.Equal(t, b.ID, state.Items[0].Product.ID)
	assert.True(t, state.Total.Equal(decimal.NewFromInt(10)))
}

func TestReduce_ClearCart(t *testing.T) {
	state := NewState([]Line{{Product: testProduct("10"), Quantity: 2}})
	state = Reduce(state, ClearCart{})

	assert.Empty(t, state.Items)
	assert.Zero(t, state.ItemCount)
	assert.True(t, state.Total.IsZero())
}

func TestReduce_TotalInvariantUnderIntentOrder(t *testing.T) {
	a := testProduct("3.50")
	b := testProduct("12")

	// two different intent sequences arriving at the same final line set
	first := NewState(nil)
	first = Reduce(first, AddToCart{Product: a, Quantity: 1})
	first = Reduce(first, AddToCart{Product: b, Quantity: 2})
	first = Reduce(first, AddToCart{Product: a, Quantity: 1})

	second := NewState(nil)
	second = Reduce(second, AddToCart{Product: b, Quantity: 2})
	second = Reduce(second, AddToCart{Product: a, Quantity: 4})
	second = Reduce(second, UpdateQuantity{ProductID: a.ID, Quantity: 2})

	assert.True(t, first.Total.Equal(second.Total),
		"same final lines must yield the same total: %s vs %s", first.Total, second.Total)
	assert.Equal(t, first.ItemCount, second.ItemCount)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	product := testProduct("10")
	state := NewState([]Line{{Product: product, Quantity: 2}})

	_ = Reduce(state, UpdateQuantity{ProductID: product.ID, Quantity: 9})

	assert.Equal(t, 2, state.Items[0].Quantity)
}
