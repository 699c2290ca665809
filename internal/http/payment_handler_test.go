package httpapi_test

import (
	"net/http"
	"testing"

	"github.com/alterach/pos-app/internal/customer"
	"github.com/alterach/pos-app/internal/payment"
)

func TestCreateInvoice(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		f := newFixture(espresso)
		w := doRequest(t, f.router, http.MethodPost, "/api/payments/invoice", "")
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("drafts invoice for the cart with tax", func(t *testing.T) {
		f := newFixture(espresso)
		f.customers.records["c1"] = customer.Customer{ID: "c1", Name: "Budi", Email: "budi@example.com", Phone: "0812"}
		doRequest(t, f.router, http.MethodPost, "/api/cart/items", `{"productId":"p1"}`)
		doRequest(t, f.router, http.MethodPut, "/api/cart/items/p1", `{"quantity":2}`)
		doRequest(t, f.router, http.MethodPut, "/api/cart/customer", `{"customerId":"c1"}`)

		w := doRequest(t, f.router, http.MethodPost, "/api/payments/invoice", "")
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var inv payment.Invoice
		decodeBody(t, w, &inv)
		if inv.ID != "inv-1" || inv.URL == "" {
			t.Fatalf("unexpected invoice %+v", inv)
		}

		if len(f.provider.created) != 1 {
			t.Fatalf("expected one draft, got %d", len(f.provider.created))
		}
		draft := f.provider.created[0]
		if draft.Amount != 39960 {
			t.Fatalf("expected total with tax 39960, got %d", draft.Amount)
		}
		if draft.Currency != "IDR" {
			t.Fatalf("expected IDR, got %q", draft.Currency)
		}
		if len(draft.Items) != 1 || draft.Items[0].Quantity != 2 {
			t.Fatalf("unexpected draft items %+v", draft.Items)
		}
		if draft.CustomerName != "Budi" {
			t.Fatalf("expected customer details on draft, got %+v", draft)
		}

		// creating the invoice leaves the cart open
		wc := doRequest(t, f.router, http.MethodGet, "/api/cart/", "")
		var view cartViewBody
		decodeBody(t, wc, &view)
		if view.TotalItems != 2 {
			t.Fatalf("expected cart untouched, got %+v", view)
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		f := newFixture(espresso)
		f.provider.createErr = errBoom
		doRequest(t, f.router, http.MethodPost, "/api/cart/items", `{"productId":"p1"}`)

		w := doRequest(t, f.router, http.MethodPost, "/api/payments/invoice", "")
		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})
}

func TestGetInvoice(t *testing.T) {
	f := newFixture(espresso)
	w := doRequest(t, f.router, http.MethodGet, "/api/payments/invoice/inv-9", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var inv payment.Invoice
	decodeBody(t, w, &inv)
	if inv.ID != "inv-9" {
		t.Fatalf("expected id passthrough, got %+v", inv)
	}
}

func TestFinalizeExternalPayment(t *testing.T) {
	t.Run("empty cart", func(t *testing.T) {
		f := newFixture(espresso)
		w := doRequest(t, f.router, http.MethodPost, "/api/payments/invoice/inv-1/finalize", "")
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("pending until the provider confirms", func(t *testing.T) {
		f := newFixture(espresso)
		doRequest(t, f.router, http.MethodPost, "/api/cart/items", `{"productId":"p1"}`)

		w := doRequest(t, f.router, http.MethodPost, "/api/payments/invoice/inv-1/finalize", "")
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}

		var txn struct {
			PaymentMethod string `json:"paymentMethod"`
			PaymentID     string `json:"paymentId"`
			PaymentStatus string `json:"paymentStatus"`
		}
		decodeBody(t, w, &txn)
		if txn.PaymentMethod != "external" || txn.PaymentID != "inv-1" {
			t.Fatalf("unexpected payment fields %+v", txn)
		}
		if txn.PaymentStatus != "pending" {
			t.Fatalf("expected pending, got %q", txn.PaymentStatus)
		}
	})

	t.Run("settles immediately when the invoice is paid", func(t *testing.T) {
		f := newFixture(espresso)
		f.provider.invoice.Status = payment.InvoicePaid
		doRequest(t, f.router, http.MethodPost, "/api/cart/items", `{"productId":"p1"}`)

		w := doRequest(t, f.router, http.MethodPost, "/api/payments/invoice/inv-1/finalize", "")
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}

		var txn struct {
			PaymentStatus string `json:"paymentStatus"`
		}
		decodeBody(t, w, &txn)
		if txn.PaymentStatus != "paid" {
			t.Fatalf("expected paid, got %q", txn.PaymentStatus)
		}
		if len(f.txns.paid) != 1 {
			t.Fatalf("expected durable mark-paid call, got %d", len(f.txns.paid))
		}
	})
}
