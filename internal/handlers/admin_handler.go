package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"homeservBack/internal/services"
)

type AdminHandler struct {
	Customers     *services.CustomerService
	Professionals *services.ProfessionalService
}

func (h *AdminHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Customers.GetCustomers(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(customers)
}

func (h *AdminHandler) GetProfessionals(w http.ResponseWriter, r *http.Request) {
	professionals, err := h.Professionals.GetProfessionals(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(professionals)
}

func (h *AdminHandler) BlockCustomer(w http.ResponseWriter, r *http.Request) {
	h.setCustomerBlocked(w, r, true)
}

func (h *AdminHandler) UnblockCustomer(w http.ResponseWriter, r *http.Request) {
	h.setCustomerBlocked(w, r, false)
}

func (h *AdminHandler) setCustomerBlocked(w http.ResponseWriter, r *http.Request, blocked bool) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid customer ID", http.StatusBadRequest)
		return
	}
	if err := h.Customers.SetBlocked(r.Context(), id, blocked); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *AdminHandler) ApproveProfessional(w http.ResponseWriter, r *http.Request) {
	h.setProfessionalApproved(w, r, true)
}

func (h *AdminHandler) UnapproveProfessional(w http.ResponseWriter, r *http.Request) {
	h.setProfessionalApproved(w, r, false)
}

func (h *AdminHandler) setProfessionalApproved(w http.ResponseWriter, r *http.Request, approved bool) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid professional ID", http.StatusBadRequest)
		return
	}
	if err := h.Professionals.SetApproved(r.Context(), id, approved); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
