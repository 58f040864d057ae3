package handlers

import (
	"encoding/json"
	"net/http"

	"lokalBack/internal/services"
)

type AdminHandler struct {
	ProviderService *services.ProviderService
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.ProviderService.AdminDashboard(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dashboard)
}
