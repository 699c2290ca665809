// Package inventory gates the add-to-cart path. The guard is evaluated
// against live stock on every attempt; it is never cached, because an admin
// edit can change stock between two adds.
package inventory

import (
	"fmt"

	"github.com/alterach/pos-app/internal/cart"
	"github.com/alterach/pos-app/internal/catalog"
)

type Reason string

const (
	ReasonOutOfStock   Reason = "out_of_stock"
	ReasonExceedsStock Reason = "exceeds_stock"
)

// Decision is the outcome of a guard check. Reason is set only when the
// add is rejected.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason,omitempty"`
}

// GuardError carries the rejection reason across the service boundary so
// handlers can surface it as a transient warning.
type GuardError struct {
	ProductID string
	Reason    Reason
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("product %s rejected: %s", e.ProductID, e.Reason)
}

// CanAdd decides whether one more unit of the product may join the cart.
// A product with no stock is out_of_stock; a cart already holding all the
// available units is exceeds_stock.
func CanAdd(p catalog.Product, c cart.Cart) Decision {
	if p.Stock <= 0 {
		return Decision{Allowed: false, Reason: ReasonOutOfStock}
	}
	if c.Quantity(p.ID)+1 > p.Stock {
		return Decision{Allowed: false, Reason: ReasonExceedsStock}
	}
	return Decision{Allowed: true}
}
