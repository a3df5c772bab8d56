// Package cart holds the customer's in-progress selection. It is a pure
// in-memory reducer: nothing here touches the network or the token store,
// and the contents are lost on restart.
package cart

import (
	"sync"

	"fooddash-client/internal/food"
)

// Item is a food plus the selected quantity. An item present in the cart
// always has quantity >= 1.
type Item struct {
	Food     food.Food
	Quantity int
}

// Cart keeps at most one item per food id, in insertion order.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// AddItem merges on food id: an existing entry gets its quantity bumped by
// one and keeps its position, a new food is appended with quantity 1.
func (c *Cart) AddItem(f food.Food) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Food.ID == f.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, Item{Food: f, Quantity: 1})
}

// UpdateQuantity sets the entry's quantity. Anything <= 0 removes the entry;
// zero-quantity entries never persist.
func (c *Cart) UpdateQuantity(foodID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(foodID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Food.ID == foodID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem drops the entry unconditionally.
func (c *Cart) RemoveItem(foodID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, it := range c.items {
		if it.Food.ID != foodID {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

// Clear empties the cart, called after a successful checkout.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a copy of the current entries in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct foods in the cart.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// TotalAmount sums price*quantity over the current entries. It is computed
// fresh on every call, never cached.
func (c *Cart) TotalAmount() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, it := range c.items {
		total += it.Food.Price * float64(it.Quantity)
	}
	return total
}
