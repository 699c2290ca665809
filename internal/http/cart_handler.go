package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alterach/pos-app/internal/cart"
	"github.com/alterach/pos-app/internal/catalog"
	"github.com/alterach/pos-app/internal/checkout"
	"github.com/alterach/pos-app/internal/inventory"
	"github.com/alterach/pos-app/internal/logging"
	"github.com/alterach/pos-app/internal/money"
)

type cartView struct {
	Lines          []cart.Line        `json:"lines"`
	CustomerID     string             `json:"customerId,omitempty"`
	PaymentMethod  cart.PaymentMethod `json:"paymentMethod"`
	TotalItems     int                `json:"totalItems"`
	TotalPrice     int64              `json:"totalPrice"`
	TotalFormatted string             `json:"totalFormatted"`
}

func (h *Handler) cartView(c cart.Cart, currency string) cartView {
	total := c.TotalPrice()
	return cartView{
		Lines:          c.Lines,
		CustomerID:     c.CustomerID,
		PaymentMethod:  c.PaymentMethod,
		TotalItems:     c.TotalItems(),
		TotalPrice:     total,
		TotalFormatted: money.Format(total, currency),
	}
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartView(h.svc.Cart(), h.currencyCode(r.Context())))
}

type addItemRequest struct {
	ProductID string `json:"productId"`
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}

	c, err := h.svc.AddItem(r.Context(), req.ProductID)
	if err != nil {
		var guardErr *inventory.GuardError
		switch {
		case errors.As(err, &guardErr):
			h.metrics.GuardRejects.WithLabelValues(string(guardErr.Reason)).Inc()
			writeJSON(w, http.StatusConflict, map[string]string{
				"error":  guardErr.Error(),
				"reason": string(guardErr.Reason),
			})
		case errors.Is(err, catalog.ErrNotFound):
			writeError(w, http.StatusNotFound, "product not found")
		default:
			h.logger.Printf("add item failed: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to add item")
		}
		return
	}

	writeJSON(w, http.StatusOK, h.cartView(c, h.currencyCode(r.Context())))
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c := h.svc.UpdateQuantity(r.Context(), productID, req.Quantity)
	writeJSON(w, http.StatusOK, h.cartView(c, h.currencyCode(r.Context())))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c := h.svc.RemoveItem(r.Context(), chi.URLParam(r, "productId"))
	writeJSON(w, http.StatusOK, h.cartView(c, h.currencyCode(r.Context())))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c := h.svc.ClearCart(r.Context())
	writeJSON(w, http.StatusOK, h.cartView(c, h.currencyCode(r.Context())))
}

type setCustomerRequest struct {
	CustomerID string `json:"customerId"`
}

func (h *Handler) SetCustomer(w http.ResponseWriter, r *http.Request) {
	var req setCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c := h.svc.SetCustomer(r.Context(), req.CustomerID)
	writeJSON(w, http.StatusOK, h.cartView(c, h.currencyCode(r.Context())))
}

type setPaymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

func (h *Handler) SetPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req setPaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	method := cart.PaymentMethod(req.PaymentMethod)
	switch method {
	case cart.PaymentCash, cart.PaymentCard, cart.PaymentExternal:
	default:
		writeError(w, http.StatusBadRequest, "unknown payment method")
		return
	}

	c := h.svc.SetPaymentMethod(r.Context(), method)
	writeJSON(w, http.StatusOK, h.cartView(c, h.currencyCode(r.Context())))
}

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if r.Body != nil {
		// body is optional; the cart keeps its own payment method
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	method := cart.PaymentMethod(req.PaymentMethod)
	switch method {
	case "", cart.PaymentCash, cart.PaymentCard, cart.PaymentExternal:
	default:
		writeError(w, http.StatusBadRequest, "unknown payment method")
		return
	}

	txn, err := h.svc.Checkout(r.Context(), method)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			writeError(w, http.StatusUnprocessableEntity, "cart is empty")
			return
		}
		h.logger.Printf("checkout failed: %v", err)
		writeError(w, http.StatusInternalServerError, "checkout failed")
		return
	}

	h.metrics.Transactions.WithLabelValues(string(txn.PaymentMethod)).Inc()
	h.metrics.RevenueIDR.WithLabelValues(string(txn.PaymentMethod)).Add(float64(txn.Total))
	logging.Log(logging.Fields{
		Service:       "pos-app",
		CorrelationID: GetCorrelationID(r.Context()),
		TransactionID: txn.ID,
		Step:          "checkout",
		Status:        string(txn.PaymentStatus),
		AmountIDR:     txn.Total,
	})

	writeJSON(w, http.StatusCreated, txn)
}
