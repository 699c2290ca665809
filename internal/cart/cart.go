// Package cart implements the order-building state machine as a pure value
// type: every operation takes the current cart and returns a new one, and
// the caller decides when to persist the resulting snapshot.
package cart

import (
	"github.com/alterach/pos-app/internal/catalog"
	"github.com/alterach/pos-app/internal/money"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentExternal PaymentMethod = "external"
)

// Line is one product entry with an aggregated quantity. UnitPrice is
// snapshotted at add time so later catalog edits never change an open order.
type Line struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

// Cart holds the lines in insertion order plus the selected customer and
// payment method. The zero value is not a valid cart; use New.
type Cart struct {
	Lines         []Line        `json:"lines"`
	CustomerID    string        `json:"customerId,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

func New() Cart {
	return Cart{Lines: []Line{}, PaymentMethod: PaymentCash}
}

// AddItem accumulates quantity on an existing line for the product, or
// appends a new line with quantity 1. Stock is deliberately not checked
// here; the inventory guard gates the add path so the cart stays a pure
// container.
func (c Cart) AddItem(p catalog.Product) Cart {
	next := c.clone()
	for i := range next.Lines {
		if next.Lines[i].ProductID == p.ID {
			next.Lines[i].Quantity++
			return next
		}
	}
	next.Lines = append(next.Lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Icon:      p.Icon,
		UnitPrice: money.Parse(p.Price),
		Quantity:  1,
	})
	return next
}

// RemoveItem drops the line entirely regardless of quantity. Removing an
// absent product id is a no-op.
func (c Cart) RemoveItem(productID string) Cart {
	next := c.clone()
	lines := next.Lines[:0]
	for _, ln := range next.Lines {
		if ln.ProductID != productID {
			lines = append(lines, ln)
		}
	}
	next.Lines = lines
	return next
}

// UpdateQuantity sets the line's quantity; zero or negative removes the
// line. A line never persists at quantity 0.
func (c Cart) UpdateQuantity(productID string, quantity int) Cart {
	if quantity <= 0 {
		return c.RemoveItem(productID)
	}
	next := c.clone()
	for i := range next.Lines {
		if next.Lines[i].ProductID == productID {
			next.Lines[i].Quantity = quantity
			break
		}
	}
	return next
}

func (c Cart) SetCustomer(customerID string) Cart {
	next := c.clone()
	next.CustomerID = customerID
	return next
}

func (c Cart) SetPaymentMethod(m PaymentMethod) Cart {
	next := c.clone()
	next.PaymentMethod = m
	return next
}

// Clear resets to the empty cart: no lines, no customer, cash payment.
func (c Cart) Clear() Cart {
	return New()
}

func (c Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// TotalItems is the summed quantity across all lines.
func (c Cart) TotalItems() int {
	n := 0
	for _, ln := range c.Lines {
		n += ln.Quantity
	}
	return n
}

// TotalPrice is the pre-tax sum of unit price times quantity.
func (c Cart) TotalPrice() int64 {
	var total int64
	for _, ln := range c.Lines {
		total += ln.UnitPrice * int64(ln.Quantity)
	}
	return total
}

// Quantity reports how many units of the product are already in the cart.
func (c Cart) Quantity(productID string) int {
	for _, ln := range c.Lines {
		if ln.ProductID == productID {
			return ln.Quantity
		}
	}
	return 0
}

func (c Cart) clone() Cart {
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	c.Lines = lines
	return c
}
