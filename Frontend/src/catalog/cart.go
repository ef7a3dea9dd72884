package main

import (
	"errors"
	"slices"

	"github.com/ahinestrog/bookcatalog/api/catalog"
)

// MaxQuantity caps a single cart line.
const MaxQuantity = 999

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrQuantityLimit   = errors.New("quantity limit reached")
)

// CartItem is one line of the cart. Title and Price are the values seen when
// the book was first added and are not refreshed afterwards.
type CartItem struct {
	BookID   int64         `json:"bookID"`
	Title    string        `json:"title"`
	Price    catalog.Money `json:"price"`
	Quantity int           `json:"quantity"`
}

func (it CartItem) Subtotal() catalog.Money { return it.Price.Mul(it.Quantity) }

// Cart holds at most one item per book, in the order books were first added.
// The zero value is an empty cart.
type Cart struct {
	items []CartItem
}

// Add merges item into the cart: an existing line for the same book gains
// item.Quantity, otherwise item is appended. No line may exceed MaxQuantity.
func (c *Cart) Add(item CartItem) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if item.Quantity > MaxQuantity {
		return ErrQuantityLimit
	}
	for i := range c.items {
		if c.items[i].BookID == item.BookID {
			if c.items[i].Quantity > MaxQuantity-item.Quantity {
				return ErrQuantityLimit
			}
			c.items[i].Quantity += item.Quantity
			return nil
		}
	}
	c.items = append(c.items, item)
	return nil
}

func (c *Cart) Remove(bookID int64) {
	c.items = slices.DeleteFunc(c.items, func(it CartItem) bool { return it.BookID == bookID })
}

func (c *Cart) Clear() { c.items = nil }

// Items returns a copy of the cart lines.
func (c Cart) Items() []CartItem { return slices.Clone(c.items) }

func (c Cart) Empty() bool { return len(c.items) == 0 }

func (c Cart) TotalItems() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c Cart) TotalCost() catalog.Money {
	var total catalog.Money
	for _, it := range c.items {
		total += it.Subtotal()
	}
	return total
}
