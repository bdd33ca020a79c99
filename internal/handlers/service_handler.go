package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"homeservBack/internal/models"
	"homeservBack/internal/services"
)

type ServiceHandler struct {
	Catalog *services.CatalogService
}

func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var svc models.Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	svc, err := h.Catalog.CreateService(r.Context(), svc)
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(svc)
}

func (h *ServiceHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	servicesList, err := h.Catalog.GetServices(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(servicesList)
}

func (h *ServiceHandler) SearchServices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	servicesList, err := h.Catalog.SearchServices(r.Context(), query)
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(servicesList)
}

func (h *ServiceHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid service ID", http.StatusBadRequest)
		return
	}
	var svc models.Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	svc.ID = id
	svc, err = h.Catalog.UpdateService(r.Context(), svc)
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(svc)
}

func (h *ServiceHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid service ID", http.StatusBadRequest)
		return
	}
	if err := h.Catalog.DeleteService(r.Context(), id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
