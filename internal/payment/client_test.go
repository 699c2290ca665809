package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateInvoice(t *testing.T) {
	var gotAuthUser string
	var gotBody createInvoiceRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v2/invoices" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuthUser, _, _ = r.BasicAuth()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Invoice{ID: "inv-1", URL: "https://pay.example/inv-1", Status: InvoicePending})
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "sk_test", srv.Client())
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	inv, err := c.CreateInvoice(context.Background(), Draft{
		ExternalID:   "pos-1",
		Description:  "POS Transaction - 2 items",
		Amount:       75480,
		Currency:     "IDR",
		Items:        []DraftItem{{Name: "Cappuccino", Price: 25000, Quantity: 2}},
		CustomerName: "John Doe",
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}

	if inv.ID != "inv-1" || inv.URL != "https://pay.example/inv-1" || inv.Status != InvoicePending {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
	if gotAuthUser != "sk_test" {
		t.Fatalf("secret key not sent as basic auth user: %q", gotAuthUser)
	}
	if gotBody.Amount != 75480 || gotBody.Currency != "IDR" {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
	if gotBody.Customer == nil || gotBody.Customer.Name != "John Doe" {
		t.Fatalf("customer not attached: %+v", gotBody.Customer)
	}
}

func TestCreateInvoiceOmitsAnonymousCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["customer"]; ok {
			t.Error("customer should be omitted for walk-in sales")
		}
		_ = json.NewEncoder(w).Encode(Invoice{ID: "inv-2", Status: InvoicePending})
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "sk_test", srv.Client())
	if _, err := c.CreateInvoice(context.Background(), Draft{ExternalID: "pos-2", Amount: 1000, Currency: "IDR"}); err != nil {
		t.Fatalf("create invoice: %v", err)
	}
}

func TestCreateInvoiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "amount too small"})
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "sk_test", srv.Client())
	_, err := c.CreateInvoice(context.Background(), Draft{ExternalID: "pos-3", Amount: 1, Currency: "IDR"})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "payment provider: amount too small (status 400)" {
		t.Fatalf("unexpected error text: %q", got)
	}
}

func TestGetInvoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/invoices/inv-9" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(Invoice{ID: "inv-9", Status: InvoicePaid})
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "sk_test", srv.Client())
	inv, err := c.GetInvoice(context.Background(), "inv-9")
	if err != nil {
		t.Fatalf("get invoice: %v", err)
	}
	if inv.Status != InvoicePaid {
		t.Fatalf("unexpected status: %s", inv.Status)
	}
}
