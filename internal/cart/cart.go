// Package cart implements the shared shopping cart: an ordered list of
// product lines plus the drawer visibility flag, persisted per client
// token between requests.
package cart

import "github.com/shopspring/decimal"

type Line struct {
	ProductID string           `json:"id"`
	Title     string           `json:"title"`
	Category  string           `json:"category"`
	ImageURL  *string          `json:"image_url"`
	Price     *decimal.Decimal `json:"price"`
	Quantity  int              `json:"quantity"`
}

// Cart holds at most one line per product id; every line quantity is a
// positive integer. All mutations are synchronous and keep both
// invariants; unknown product ids are silently ignored.
type Cart struct {
	Lines []Line `json:"items"`
	Open  bool   `json:"is_open"`
}

func New() *Cart { return &Cart{} }

// AddItem appends a new line with quantity 1, or bumps the quantity of
// the existing line for the same product. The quantity on the argument
// is ignored; repeat adds are how quantity grows. A nil price is legal
// (product without configured pricing).
func (c *Cart) AddItem(p Line) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == p.ProductID {
			c.Lines[i].Quantity++
			return
		}
	}
	p.Quantity = 1
	c.Lines = append(c.Lines, p)
}

// UpdateQuantity sets the line quantity; zero or negative removes the
// line. Missing ids are a no-op.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

func (c *Cart) RemoveItem(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart but leaves the drawer state alone.
func (c *Cart) Clear() { c.Lines = nil }

func (c *Cart) SetOpen(open bool) { c.Open = open }

func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

func (c *Cart) TotalItems() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Subtotal sums price times quantity over all lines; lines without a
// price count as zero.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		if l.Price == nil {
			continue
		}
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}
