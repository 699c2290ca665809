package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/alterach/pos-app/internal/checkout"
	"github.com/alterach/pos-app/internal/customer"
	"github.com/alterach/pos-app/internal/logging"
	"github.com/alterach/pos-app/internal/payment"
	"github.com/alterach/pos-app/internal/transaction"
)

// CreateInvoice asks the hosted provider for an invoice covering the
// current cart. The cart stays open until the invoice is finalized, so
// the cashier can still cancel or edit the order.
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	if h.payments == nil {
		writeError(w, http.StatusServiceUnavailable, "external payments not configured")
		return
	}

	c := h.svc.Cart()
	if c.IsEmpty() {
		writeError(w, http.StatusUnprocessableEntity, "cart is empty")
		return
	}

	st, err := h.settings.Get(r.Context())
	if err != nil {
		h.logger.Printf("settings load failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	subtotal := c.TotalPrice()
	total := subtotal + checkout.TaxAmount(subtotal, st.TaxPercent)

	draft := payment.Draft{
		ExternalID:  "pos-" + uuid.NewString(),
		Description: fmt.Sprintf("%s order, %d items", st.StoreName, c.TotalItems()),
		Amount:      total,
		Currency:    st.Currency,
	}
	for _, line := range c.Lines {
		draft.Items = append(draft.Items, payment.DraftItem{
			Name:     line.Name,
			Price:    line.UnitPrice,
			Quantity: line.Quantity,
		})
	}

	if c.CustomerID != "" {
		cust, err := h.customers.Get(r.Context(), c.CustomerID)
		if err == nil {
			draft.CustomerName = cust.Name
			draft.CustomerEmail = cust.Email
			draft.CustomerPhone = cust.Phone
		} else if !errors.Is(err, customer.ErrNotFound) {
			h.logger.Printf("customer %s lookup failed: %v", c.CustomerID, err)
		}
	}

	inv, err := h.payments.CreateInvoice(r.Context(), draft)
	if err != nil {
		h.logger.Printf("create invoice failed: %v", err)
		writeError(w, http.StatusBadGateway, "payment provider rejected the invoice")
		return
	}

	writeJSON(w, http.StatusCreated, inv)
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	if h.payments == nil {
		writeError(w, http.StatusServiceUnavailable, "external payments not configured")
		return
	}

	inv, err := h.payments.GetInvoice(r.Context(), chi.URLParam(r, "invoiceId"))
	if err != nil {
		h.logger.Printf("get invoice failed: %v", err)
		writeError(w, http.StatusBadGateway, "payment provider lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, inv)
}

// FinalizeExternalPayment turns the open cart into a pending transaction
// tied to the invoice. When the provider already reports the invoice as
// paid, the transaction is settled in the same call.
func (h *Handler) FinalizeExternalPayment(w http.ResponseWriter, r *http.Request) {
	invoiceID := chi.URLParam(r, "invoiceId")

	txn, err := h.svc.FinalizeWithExternalPayment(r.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			writeError(w, http.StatusUnprocessableEntity, "cart is empty")
			return
		}
		h.logger.Printf("finalize invoice %s failed: %v", invoiceID, err)
		writeError(w, http.StatusInternalServerError, "failed to finalize payment")
		return
	}

	if h.payments != nil {
		inv, err := h.payments.GetInvoice(r.Context(), invoiceID)
		if err != nil {
			h.logger.Printf("invoice %s status check failed: %v", invoiceID, err)
		} else if inv.Status == payment.InvoicePaid {
			if err := h.svc.MarkPaid(r.Context(), txn.ID); err == nil {
				txn.PaymentStatus = transaction.StatusPaid
			}
		}
	}

	h.metrics.Transactions.WithLabelValues(string(txn.PaymentMethod)).Inc()
	h.metrics.RevenueIDR.WithLabelValues(string(txn.PaymentMethod)).Add(float64(txn.Total))
	logging.Log(logging.Fields{
		Service:       "pos-app",
		CorrelationID: GetCorrelationID(r.Context()),
		TransactionID: txn.ID,
		Step:          "finalize_external",
		Status:        string(txn.PaymentStatus),
		AmountIDR:     txn.Total,
	})

	writeJSON(w, http.StatusCreated, txn)
}
