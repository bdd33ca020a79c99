package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"homeservBack/internal/models"
	"homeservBack/internal/services"
)

type RequestHandler struct {
	Requests *services.RequestService
}

// CreateRequest files a new pending service request for the calling customer.
func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerID(w, r)
	if !ok {
		return
	}
	var input models.CreateRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req, err := h.Requests.CreateRequest(r.Context(), customerID, input)
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(req)
}

func (h *RequestHandler) ListCustomerRequests(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerID(w, r)
	if !ok {
		return
	}
	includeClosed := r.URL.Query().Get("include_closed") == "true"
	requests, err := h.Requests.ListCustomerRequests(r.Context(), customerID, includeClosed)
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}

func (h *RequestHandler) UpdateRemarks(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerID(w, r)
	if !ok {
		return
	}
	requestID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}
	var input models.UpdateRemarksInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Requests.UpdateRemarks(r.Context(), requestID, customerID, input.Remarks); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// CloseRequest closes the customer's own request, optionally rating the
// professional.
func (h *RequestHandler) CloseRequest(w http.ResponseWriter, r *http.Request) {
	customerID, ok := callerID(w, r)
	if !ok {
		return
	}
	requestID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}
	var input models.CloseRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req, err := h.Requests.Close(r.Context(), requestID, customerID, input.Rating)
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}

func (h *RequestHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := callerID(w, r)
	if !ok {
		return
	}
	requests, err := h.Requests.ListVisiblePending(r.Context(), professionalID)
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}

func (h *RequestHandler) ListActiveRequests(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := callerID(w, r)
	if !ok {
		return
	}
	requests, err := h.Requests.ListActive(r.Context(), professionalID)
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}

func (h *RequestHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := callerID(w, r)
	if !ok {
		return
	}
	requestID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}
	req, err := h.Requests.Accept(r.Context(), requestID, professionalID)
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}

func (h *RequestHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := callerID(w, r)
	if !ok {
		return
	}
	requestID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}
	if err := h.Requests.Reject(r.Context(), requestID, professionalID); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// AdvanceStatus moves an assigned request to in_progress or completed.
func (h *RequestHandler) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := callerID(w, r)
	if !ok {
		return
	}
	requestID, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		http.Error(w, "Invalid request ID", http.StatusBadRequest)
		return
	}
	var input models.AdvanceStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req, err := h.Requests.AdvanceStatus(r.Context(), requestID, professionalID, input.ServiceStatus)
	if err != nil {
		serviceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}
