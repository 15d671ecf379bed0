package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	domproduct "example.com/storefront-cart/app/internal/domain/product"
)

// Entry is one product held by the cart together with its amount.
type Entry struct {
	domproduct.Product
	Amount int64 `json:"amount"`
}

func (e Entry) Subtotal() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(e.Amount))
}

// Cart is an ordered list of entries, unique by product id, kept in
// insertion order. Mutating methods return a new Cart and leave the
// receiver untouched so a snapshot can be handed out safely.
type Cart struct {
	Items []Entry
}

func (c Cart) Len() int {
	return len(c.Items)
}

// Quantity is the sum of all entry amounts.
func (c Cart) Quantity() int64 {
	var n int64
	for _, item := range c.Items {
		n += item.Amount
	}
	return n
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (c Cart) Index(productID int64) int {
	for i, item := range c.Items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) Find(productID int64) (Entry, bool) {
	if i := c.Index(productID); i >= 0 {
		return c.Items[i], true
	}
	return Entry{}, false
}

func (c Cart) Clone() Cart {
	items := make([]Entry, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

// Append adds a new entry at the end. The caller guarantees the product is
// not in the cart yet.
func (c Cart) Append(p domproduct.Product, amount int64) Cart {
	next := c.Clone()
	next.Items = append(next.Items, Entry{Product: p, Amount: amount})
	return next
}

// WithAmount sets the amount of an existing entry. An amount below 1
// removes the entry.
func (c Cart) WithAmount(productID, amount int64) (Cart, bool) {
	i := c.Index(productID)
	if i < 0 {
		return c, false
	}
	if amount < 1 {
		return c.Remove(productID)
	}
	next := c.Clone()
	next.Items[i].Amount = amount
	return next, true
}

func (c Cart) Remove(productID int64) (Cart, bool) {
	i := c.Index(productID)
	if i < 0 {
		return c, false
	}
	items := make([]Entry, 0, len(c.Items)-1)
	items = append(items, c.Items[:i]...)
	items = append(items, c.Items[i+1:]...)
	return Cart{Items: items}, true
}

// Validate checks the cart invariants: unique ids and amounts of at least 1.
func (c Cart) Validate() error {
	seen := make(map[int64]struct{}, len(c.Items))
	for _, item := range c.Items {
		if item.Amount < 1 {
			return fmt.Errorf("%w: product %d has amount %d", ErrInvalidCart, item.ID, item.Amount)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: product %d listed twice", ErrInvalidCart, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}
