package httpapi_test

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	httpapi "github.com/alterach/pos-app/internal/http"
)

func TestCorrelationIDGenerated(t *testing.T) {
	f := newFixture(espresso)
	w := doRequest(t, f.router, http.MethodGet, "/api/cart", "")
	if w.Header().Get(httpapi.HeaderCorrelationID) == "" {
		t.Fatal("expected a generated correlation id header")
	}
}

func TestCheckoutCarriesCorrelationID(t *testing.T) {
	f := newFixture(espresso)
	doRequest(t, f.router, http.MethodPost, "/api/cart/items", `{"productId":"p1"}`)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	r := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(`{"paymentMethod":"cash"}`))
	r.Header.Set(httpapi.HeaderCorrelationID, "cid-123")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get(httpapi.HeaderCorrelationID); got != "cid-123" {
		t.Fatalf("expected header echoed back, got %q", got)
	}
	if !strings.Contains(buf.String(), `"correlation_id":"cid-123"`) {
		t.Fatalf("checkout trace line missing correlation id: %s", buf.String())
	}
}
