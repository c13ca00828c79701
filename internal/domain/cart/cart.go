package cart

import (
	"github.com/shopspring/decimal"
)

// Item is the catalog snapshot handed to AddToCart.
type Item struct {
	ID    string
	Name  string
	Price decimal.Decimal
}

// Line is one aggregated cart entry per distinct catalog item.
type Line struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Qtd   int             `json:"qtd"`
}

// Subtotal returns price × qtd for the line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Qtd)))
}

// Cart is the aggregate root for a session's shopping cart.
// It holds at most one line per item id, each with qtd >= 1.
type Cart struct {
	lines []Line
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{lines: []Line{}}
}

// Reconstruct rebuilds a Cart from persisted lines (no validation).
func Reconstruct(lines []Line) *Cart {
	c := New()
	c.lines = append(c.lines, lines...)
	return c
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Add increments the quantity of an existing line or appends a new one with qtd 1.
// The price of an existing line is the snapshot taken on its first add.
func (c *Cart) Add(item Item) Line {
	for i := range c.lines {
		if c.lines[i].ID == item.ID {
			c.lines[i].Qtd++
			return c.lines[i]
		}
	}
	line := Line{ID: item.ID, Name: item.Name, Price: item.Price, Qtd: 1}
	c.lines = append(c.lines, line)
	return line
}

// Remove deletes the whole line with the given id. It reports whether a line was removed.
func (c *Cart) Remove(id string) bool {
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = []Line{}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Count returns the sum of all line quantities, shown on the cart indicator.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Qtd
	}
	return n
}

// Total returns Σ(price × qtd) over the current lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
