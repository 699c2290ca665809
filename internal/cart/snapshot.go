package cart

import "encoding/json"

// SnapshotKey is the durable-storage key the cart is mirrored under.
const SnapshotKey = "pos_cart"

// Snapshot encodes the cart for durable storage.
func (c Cart) Snapshot() ([]byte, error) {
	return json.Marshal(c)
}

// FromSnapshot decodes a persisted cart. Restore is total: missing or
// corrupt data falls back to the empty cart and reports ok=false, it never
// fails.
func FromSnapshot(data []byte) (Cart, bool) {
	if len(data) == 0 {
		return New(), false
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return New(), false
	}
	if c.Lines == nil {
		c.Lines = []Line{}
	}
	if c.PaymentMethod == "" {
		c.PaymentMethod = PaymentCash
	}
	// Drop lines that cannot have been produced by the state machine.
	valid := c.Lines[:0]
	for _, ln := range c.Lines {
		if ln.ProductID != "" && ln.Quantity >= 1 {
			valid = append(valid, ln)
		}
	}
	c.Lines = valid
	return c, true
}
