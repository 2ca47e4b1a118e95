// Package cartstate is the application-state container behind the cart UI.
// State changes go through a pure reducer over (state, intent); remote sync
// and guest persistence happen at an explicit effect boundary in Store.
package cartstate

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/model"
)

// Line is a (product, quantity) pair in the cart. Product may be nil when
// the referenced product was deleted; totals skip such lines.
type Line struct {
	Product  *model.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// State is the cart state visible to the presentation layer. Total and
// ItemCount are derived from Items on every transition.
type State struct {
	Items     []Line
	Total     decimal.Decimal
	ItemCount int
}

// Intent is a cart mutation applied by the reducer.
type Intent interface {
	apply(items []Line) []Line
}

// SetCart replaces the whole line list, e.g. when the server cart is loaded.
type SetCart struct {
	Items []Line
}

// AddToCart increments the existing quantity for the product, or inserts a
// new line. This is the "add" affordance: it adds, it does not overwrite.
type AddToCart struct {
	Product  *model.Product
	Quantity int
}

// UpdateQuantity overwrites a line's quantity. A quantity <= 0 removes the
// line. This is the "edit" affordance: it overwrites, it does not add.
type UpdateQuantity struct {
	ProductID uuid.UUID
	Quantity  int
}

// RemoveFromCart drops the line for the product.
type RemoveFromCart struct {
	ProductID uuid.UUID
}

// ClearCart drops every line.
type ClearCart struct{}

// Reduce applies an intent and recomputes the derived totals. It never
// mutates its input.
func Reduce(state State, intent Intent) State {
	items := intent.apply(state.Items)
	total, count := totals(items)
	return State{Items: items, Total: total, ItemCount: count}
}

// NewState builds a State with derived totals from a line list.
func NewState(items []Line) State {
	return Reduce(State{}, SetCart{Items: items})
}

func totals(items []Line) (decimal.Decimal, int) {
	total := decimal.Zero
	count := 0
	for _, line := range items {
		count += line.Quantity
		if line.Product == nil {
			// dangling reference from a deleted product
			continue
		}
		total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total, count
}

func lineProductID(line Line) uuid.UUID {
	if line.Product == nil {
		return uuid.Nil
	}
	return line.Product.ID
}

func (i SetCart) apply(_ []Line) []Line {
	out := make([]Line, len(i.Items))
	copy(out, i.Items)
	return out
}

func (i AddToCart) apply(items []Line) []Line {
	out := make([]Line, 0, len(items)+1)
	found := false
	for _, line := range items {
		if i.Product != nil && lineProductID(line) == i.Product.ID {
			line.Quantity += i.Quantity
			found = true
		}
		out = append(out, line)
	}
	if !found {
		out = append(out, Line{Product: i.Product, Quantity: i.Quantity})
	}
	return out
}

func (i UpdateQuantity) apply(items []Line) []Line {
	out := make([]Line, 0, len(items))
	for _, line := range items {
		if lineProductID(line) == i.ProductID {
			line.Quantity = i.Quantity
		}
		if line.Quantity > 0 {
			out = append(out, line)
		}
	}
	return out
}

func (i RemoveFromCart) apply(items []Line) []Line {
	out := make([]Line, 0, len(items))
	for _, line := range items {
		if lineProductID(line) == i.ProductID {
			continue
		}
		out = append(out, line)
	}
	return out
}

func (ClearCart) apply(_ []Line) []Line {
	return nil
}
