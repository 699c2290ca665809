package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/alterach/pos-app/internal/report"
)

// ListTransactions serves the in-memory history, most recent first. The
// durable log is a mirror; the running service is the source of truth.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.History())
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transactionId")
	for _, txn := range h.svc.History() {
		if txn.ID == id {
			writeJSON(w, http.StatusOK, txn)
			return
		}
	}
	writeError(w, http.StatusNotFound, "transaction not found")
}

func (h *Handler) ReportSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, report.Summarize(h.svc.History()))
}
