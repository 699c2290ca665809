// Package checkout turns a cart into an immutable transaction record:
// integer subtotal, round-half-up tax, snapshotted line items.
package checkout

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alterach/pos-app/internal/cart"
	"github.com/alterach/pos-app/internal/settings"
	"github.com/alterach/pos-app/internal/transaction"
)

// ErrEmptyCart rejects a checkout with no lines. Nothing is mutated when
// it is returned.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// Clock and IDGenerator are injected so builds are deterministic in tests.
type (
	Clock       func() time.Time
	IDGenerator func() string
)

// TaxAmount computes round-half-up(subtotal * ratePercent / 100). The
// arithmetic runs in decimal so a rate like 11 never picks up binary
// float error before rounding.
func TaxAmount(subtotal int64, ratePercent float64) int64 {
	return decimal.NewFromInt(subtotal).
		Mul(decimal.NewFromFloat(ratePercent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// Build constructs the transaction record for the cart. The cart lines are
// copied verbatim: name and unit price were snapshotted at add time, so a
// catalog edit after checkout never rewrites a receipt.
func Build(c cart.Cart, tax settings.TaxConfig, now time.Time, id string) (transaction.Transaction, error) {
	if c.IsEmpty() {
		return transaction.Transaction{}, ErrEmptyCart
	}

	items := make([]transaction.Item, 0, len(c.Lines))
	var subtotal int64
	for _, ln := range c.Lines {
		items = append(items, transaction.Item{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			UnitPrice: ln.UnitPrice,
			Quantity:  ln.Quantity,
		})
		subtotal += ln.UnitPrice * int64(ln.Quantity)
	}

	taxAmount := TaxAmount(subtotal, tax.RatePercent)

	method := c.PaymentMethod
	if method == "" {
		method = cart.PaymentCash
	}

	return transaction.Transaction{
		ID:            id,
		Items:         items,
		Subtotal:      subtotal,
		TaxRate:       tax.RatePercent,
		TaxAmount:     taxAmount,
		Total:         subtotal + taxAmount,
		PaymentMethod: method,
		PaymentStatus: transaction.StatusPaid,
		CustomerID:    c.CustomerID,
		CreatedAt:     now,
	}, nil
}
