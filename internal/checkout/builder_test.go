package checkout

import (
	"errors"
	"testing"
	"time"

	"github.com/alterach/pos-app/internal/cart"
	"github.com/alterach/pos-app/internal/catalog"
	"github.com/alterach/pos-app/internal/settings"
)

var (
	cappuccino = catalog.Product{ID: "p1", Name: "Cappuccino", Price: 25000, Stock: 50}
	croissant  = catalog.Product{ID: "p2", Name: "Croissant", Price: 18000, Stock: 30}
)

func TestTaxAmount(t *testing.T) {
	tests := []struct {
		subtotal int64
		rate     float64
		want     int64
	}{
		{68000, 11, 7480},
		{0, 11, 0},
		{68000, 0, 0},
		{100, 11, 11},
		// round-half-up at the .5 boundary
		{50, 11, 6},   // 5.5 -> 6
		{150, 11, 17}, // 16.5 -> 17
		{65, 10, 7},   // 6.5 -> 7
	}
	for _, tt := range tests {
		if got := TaxAmount(tt.subtotal, tt.rate); got != tt.want {
			t.Fatalf("TaxAmount(%d, %v) = %d, want %d", tt.subtotal, tt.rate, got, tt.want)
		}
	}
}

func TestBuildScenario(t *testing.T) {
	c := cart.New().
		AddItem(cappuccino).AddItem(cappuccino).
		AddItem(croissant).
		SetCustomer("c1").
		SetPaymentMethod(cart.PaymentCard)

	now := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)
	txn, err := Build(c, settings.TaxConfig{RatePercent: 11}, now, "txn-1")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if txn.Subtotal != 68000 {
		t.Fatalf("subtotal = %d, want 68000", txn.Subtotal)
	}
	if txn.TaxAmount != 7480 {
		t.Fatalf("taxAmount = %d, want 7480", txn.TaxAmount)
	}
	if txn.Total != 75480 {
		t.Fatalf("total = %d, want 75480", txn.Total)
	}
	if txn.Total != txn.Subtotal+txn.TaxAmount {
		t.Fatal("total != subtotal + taxAmount")
	}
	if txn.ID != "txn-1" || !txn.CreatedAt.Equal(now) {
		t.Fatalf("identity fields wrong: %+v", txn)
	}
	if txn.PaymentMethod != cart.PaymentCard || txn.CustomerID != "c1" {
		t.Fatalf("cart fields not carried: %+v", txn)
	}
	if len(txn.Items) != 2 || txn.Items[0].Name != "Cappuccino" || txn.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items: %+v", txn.Items)
	}
}

func TestBuildEmptyCart(t *testing.T) {
	_, err := Build(cart.New(), settings.TaxConfig{RatePercent: 11}, time.Now(), "txn-1")
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

// Line items are snapshots: changing the catalog after build must not be
// visible in the record.
func TestBuildSnapshotsLines(t *testing.T) {
	p := cappuccino
	c := cart.New().AddItem(p)

	p.Name = "Renamed"
	p.Price = 99999

	txn, err := Build(c, settings.TaxConfig{}, time.Now(), "txn-1")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if txn.Items[0].Name != "Cappuccino" || txn.Items[0].UnitPrice != 25000 {
		t.Fatalf("catalog edit leaked into record: %+v", txn.Items[0])
	}
}
