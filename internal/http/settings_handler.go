package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/alterach/pos-app/internal/settings"
)

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	st, err := h.settings.Get(r.Context())
	if err != nil {
		h.logger.Printf("settings load failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var st settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if st.StoreName == "" || st.Currency == "" {
		writeError(w, http.StatusBadRequest, "storeName and currency are required")
		return
	}
	if st.TaxPercent < 0 {
		writeError(w, http.StatusBadRequest, "taxPercent must not be negative")
		return
	}

	if err := h.settings.Update(r.Context(), st); err != nil {
		h.logger.Printf("settings update failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}
	writeJSON(w, http.StatusOK, st)
}
