package domain

import (
	"slices"

	"github.com/google/uuid"
)

// CartItem is one line of a cart. TotalPrice is always UnitPrice × Quantity.
type CartItem struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage"`
	ColorID      string  `json:"colorId"`
	ColorName    string  `json:"colorName"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	TotalPrice   float64 `json:"totalPrice"`
}

// Cart is the immutable state the cart reducer operates on.
type Cart struct {
	Items []CartItem `json:"items"`
}

// TotalItems is the number of units across all lines.
func (c Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// TotalAmount is the sum of every line's total.
func (c Cart) TotalAmount() float64 {
	var sum float64
	for _, it := range c.Items {
		sum += it.TotalPrice
	}
	return RoundCents(sum)
}

// Find returns the line with the given id.
func (c Cart) Find(itemID string) (CartItem, bool) {
	for _, it := range c.Items {
		if it.ID == itemID {
			return it, true
		}
	}
	return CartItem{}, false
}

// CartAction is one of AddItem, SetQuantity, RemoveItem, RemoveItems or
// ClearCart.
type CartAction interface {
	apply(items []CartItem) []CartItem
}

// AddItem merges Item into the line with the same product and color, or
// appends it as a new line. A blank Item.ID is filled with a fresh uuid.
type AddItem struct {
	Item CartItem
}

// SetQuantity replaces the quantity of a line; zero or less removes it.
type SetQuantity struct {
	ItemID   string
	Quantity int
}

// RemoveItem drops a line.
type RemoveItem struct {
	ItemID string
}

// RemoveItems drops every listed line in one step.
type RemoveItems struct {
	ItemIDs []string
}

// ClearCart empties the cart.
type ClearCart struct{}

// Reduce returns the cart that results from applying action to c. The input
// cart is never modified.
func Reduce(c Cart, action CartAction) Cart {
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	next := action.apply(items)
	if next == nil {
		next = []CartItem{}
	}
	return Cart{Items: next}
}

func (a AddItem) apply(items []CartItem) []CartItem {
	for i, it := range items {
		if it.ProductID == a.Item.ProductID && it.ColorID == a.Item.ColorID {
			it.Quantity += a.Item.Quantity
			it.TotalPrice = RoundCents(it.UnitPrice * float64(it.Quantity))
			items[i] = it
			return items
		}
	}
	line := a.Item
	if line.ID == "" {
		line.ID = uuid.NewString()
	}
	line.TotalPrice = RoundCents(line.UnitPrice * float64(line.Quantity))
	return append(items, line)
}

func (a SetQuantity) apply(items []CartItem) []CartItem {
	if a.Quantity <= 0 {
		return RemoveItem{ItemID: a.ItemID}.apply(items)
	}
	for i, it := range items {
		if it.ID == a.ItemID {
			it.Quantity = a.Quantity
			it.TotalPrice = RoundCents(it.UnitPrice * float64(a.Quantity))
			items[i] = it
		}
	}
	return items
}

func (a RemoveItem) apply(items []CartItem) []CartItem {
	out := items[:0]
	for _, it := range items {
		if it.ID != a.ItemID {
			out = append(out, it)
		}
	}
	return out
}

func (a RemoveItems) apply(items []CartItem) []CartItem {
	out := items[:0]
	for _, it := range items {
		if !slices.Contains(a.ItemIDs, it.ID) {
			out = append(out, it)
		}
	}
	return out
}

func (ClearCart) apply([]CartItem) []CartItem {
	return []CartItem{}
}
