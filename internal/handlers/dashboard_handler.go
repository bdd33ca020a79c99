package handlers

import (
	"encoding/json"
	"net/http"

	"homeservBack/internal/services"
)

type DashboardHandler struct {
	Dashboards *services.DashboardService
}

func (h *DashboardHandler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.Dashboards.AdminDashboard(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dash)
}

func (h *DashboardHandler) CustomerDashboard(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerID(w, r)
	if !ok {
		return
	}
	dash, err := h.Dashboards.CustomerDashboard(r.Context(), customerID)
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dash)
}

func (h *DashboardHandler) ProfessionalDashboard(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := callerID(w, r)
	if !ok {
		return
	}
	dash, err := h.Dashboards.ProfessionalDashboard(r.Context(), professionalID)
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dash)
}
