package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alterach/pos-app/internal/catalog"
	"github.com/alterach/pos-app/internal/money"
)

// productRequest tolerates both canonical integer prices and the formatted
// strings legacy clients still send ("Rp 25.000").
type productRequest struct {
	Name     string       `json:"name"`
	Category string       `json:"category"`
	Price    money.Amount `json:"price"`
	Stock    int          `json:"stock"`
	Rating   float64      `json:"rating"`
	Duration string       `json:"duration"`
	Icon     string       `json:"icon"`
}

func (req *productRequest) validate() string {
	if req.Name == "" {
		return "name is required"
	}
	if req.Price < 0 {
		return "price must not be negative"
	}
	if req.Stock < 0 {
		return "stock must not be negative"
	}
	return ""
}

type productResponse struct {
	catalog.Product
	PriceFormatted string `json:"priceFormatted"`
}

func (h *Handler) currencyCode(ctx context.Context) string {
	st, err := h.settings.Get(ctx)
	if err != nil {
		return "IDR"
	}
	return st.Currency
}

func newProductResponse(p catalog.Product, currency string) productResponse {
	return productResponse{Product: p, PriceFormatted: money.Format(p.Price, currency)}
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load products")
		return
	}

	currency := h.currencyCode(r.Context())
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, newProductResponse(p, currency))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	writeJSON(w, http.StatusOK, newProductResponse(p, h.currencyCode(r.Context())))
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p := catalog.Product{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price.Int64(),
		Stock:    req.Stock,
		Rating:   req.Rating,
		Duration: req.Duration,
		Icon:     req.Icon,
	}
	if err := h.catalog.Create(r.Context(), &p); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create product")
		return
	}
	writeJSON(w, http.StatusCreated, newProductResponse(p, h.currencyCode(r.Context())))
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p := catalog.Product{
		ID:       chi.URLParam(r, "productId"),
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price.Int64(),
		Stock:    req.Stock,
		Rating:   req.Rating,
		Duration: req.Duration,
		Icon:     req.Icon,
	}
	if err := h.catalog.Update(r.Context(), &p); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update product")
		return
	}
	writeJSON(w, http.StatusOK, newProductResponse(p, h.currencyCode(r.Context())))
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	err := h.catalog.Delete(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) SetStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Stock int `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Stock < 0 {
		writeError(w, http.StatusBadRequest, "stock must not be negative")
		return
	}

	err := h.catalog.SetStock(r.Context(), chi.URLParam(r, "productId"), req.Stock)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to set stock")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
