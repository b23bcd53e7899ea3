// Package cart holds the session-scoped shopping cart used while a staff
// member takes an order.
package cart

import "cafe-ordering/models"

type Line struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func (l Line) Amount() float64 { return l.Price * float64(l.Quantity) }

// Cart keeps one line per item id in insertion order. Every retained line
// has Quantity >= 1. A Cart is not safe for concurrent use; Session guards
// it.
type Cart struct {
	lines []Line
	index map[string]int
}

func New() *Cart {
	return &Cart{index: make(map[string]int)}
}

// Add puts one more of item in the cart, snapshotting its name and price
// when the line is first created.
func (c *Cart) Add(item models.MenuItem) {
	if i, ok := c.index[item.ID]; ok {
		c.lines[i].Quantity++
		return
	}
	c.index[item.ID] = len(c.lines)
	c.lines = append(c.lines, Line{ItemID: item.ID, Name: item.Name, Price: item.Price, Quantity: 1})
}

// Decrement lowers the quantity by one but never below one. Use Remove to
// drop a line.
func (c *Cart) Decrement(itemID string) {
	if i, ok := c.index[itemID]; ok && c.lines[i].Quantity > 1 {
		c.lines[i].Quantity--
	}
}

func (c *Cart) Remove(itemID string) {
	i, ok := c.index[itemID]
	if !ok {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, itemID)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].ItemID] = j
	}
}

// Subtract lowers the quantity by qty and drops the line once nothing is
// left.
func (c *Cart) Subtract(itemID string, qty int) {
	i, ok := c.index[itemID]
	if !ok {
		return
	}
	if c.lines[i].Quantity <= qty {
		c.Remove(itemID)
		return
	}
	c.lines[i].Quantity -= qty
}

func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[string]int)
}

func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.Amount()
	}
	return total
}

func (c *Cart) Len() int { return len(c.lines) }

// Quantity returns 0 for items not in the cart.
func (c *Cart) Quantity(itemID string) int {
	if i, ok := c.index[itemID]; ok {
		return c.lines[i].Quantity
	}
	return 0
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}
