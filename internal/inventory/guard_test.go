package inventory

import (
	"testing"

	"github.com/alterach/pos-app/internal/cart"
	"github.com/alterach/pos-app/internal/catalog"
)

func TestCanAdd(t *testing.T) {
	tests := map[string]struct {
		stock  int
		inCart int
		want   Decision
	}{
		"plenty of stock":       {stock: 10, inCart: 0, want: Decision{Allowed: true}},
		"last unit available":   {stock: 3, inCart: 2, want: Decision{Allowed: true}},
		"zero stock":            {stock: 0, inCart: 0, want: Decision{Allowed: false, Reason: ReasonOutOfStock}},
		"negative stock":        {stock: -1, inCart: 0, want: Decision{Allowed: false, Reason: ReasonOutOfStock}},
		"cart holds everything": {stock: 2, inCart: 2, want: Decision{Allowed: false, Reason: ReasonExceedsStock}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := catalog.Product{ID: "p1", Name: "Cappuccino", Price: 25000, Stock: tt.stock}

			c := cart.New()
			for i := 0; i < tt.inCart; i++ {
				c = c.AddItem(p)
			}

			if got := CanAdd(p, c); got != tt.want {
				t.Fatalf("CanAdd = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// The guard reads live stock: two adds against stock=2 succeed, the third
// attempt is rejected.
func TestCanAddSequence(t *testing.T) {
	p := catalog.Product{ID: "p1", Name: "Cheesecake", Price: 35000, Stock: 2}
	c := cart.New()

	for i := 0; i < 2; i++ {
		d := CanAdd(p, c)
		if !d.Allowed {
			t.Fatalf("add %d rejected: %+v", i+1, d)
		}
		c = c.AddItem(p)
	}

	d := CanAdd(p, c)
	if d.Allowed || d.Reason != ReasonExceedsStock {
		t.Fatalf("third add should be exceeds_stock, got %+v", d)
	}
}

// Stock changes between attempts are observed immediately.
func TestCanAddReflectsStockChange(t *testing.T) {
	p := catalog.Product{ID: "p1", Name: "Americano", Price: 20000, Stock: 1}
	c := cart.New().AddItem(p)

	if d := CanAdd(p, c); d.Allowed {
		t.Fatalf("expected rejection at stock=1, got %+v", d)
	}

	p.Stock = 5
	if d := CanAdd(p, c); !d.Allowed {
		t.Fatalf("expected allow after restock, got %+v", d)
	}
}
