package httpapi

import (
	"log"
	"net/http"

	"github.com/alterach/pos-app/internal/catalog"
	"github.com/alterach/pos-app/internal/checkout"
	"github.com/alterach/pos-app/internal/customer"
	"github.com/alterach/pos-app/internal/metrics"
	"github.com/alterach/pos-app/internal/payment"
	"github.com/alterach/pos-app/internal/settings"
)

// Handler carries the wired-up POS surface. The checkout service owns the
// cart; the repositories back the admin CRUD pages.
type Handler struct {
	svc       *checkout.Service
	catalog   catalog.Repository
	customers customer.Repository
	settings  settings.Repository
	payments  payment.Provider
	metrics   *metrics.POSMetrics
	logger    *log.Logger
}

func NewHandler(
	svc *checkout.Service,
	catalogRepo catalog.Repository,
	customerRepo customer.Repository,
	settingsRepo settings.Repository,
	payments payment.Provider,
	m *metrics.POSMetrics,
	logger *log.Logger,
) *Handler {
	return &Handler{
		svc:       svc,
		catalog:   catalogRepo,
		customers: customerRepo,
		settings:  settingsRepo,
		payments:  payments,
		metrics:   m,
		logger:    logger,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "pos-app"})
}
