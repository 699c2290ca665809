package transaction

import (
	"time"

	"github.com/alterach/pos-app/internal/cart"
)

// PaymentStatus tracks external payments. Cash and card sales are settled
// at the counter and recorded as paid immediately.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "paid"
	StatusPending PaymentStatus = "pending"
)

// Item is a cart line frozen at checkout time. Name and UnitPrice are
// copied so later catalog edits never alter historical receipts.
type Item struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

// Transaction is an immutable record of one completed sale.
// Invariant: Total == Subtotal + TaxAmount.
type Transaction struct {
	ID            string             `json:"id"`
	Items         []Item             `json:"items"`
	Subtotal      int64              `json:"subtotal"`
	TaxRate       float64            `json:"taxRate"`
	TaxAmount     int64              `json:"taxAmount"`
	Total         int64              `json:"total"`
	PaymentMethod cart.PaymentMethod `json:"paymentMethod"`
	PaymentID     string             `json:"paymentId,omitempty"`
	PaymentStatus PaymentStatus      `json:"paymentStatus"`
	CustomerID    string             `json:"customerId,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}
