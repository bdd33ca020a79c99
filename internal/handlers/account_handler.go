package handlers

import (
	"encoding/json"
	"net/http"

	"homeservBack/internal/models"
	"homeservBack/internal/services"
)

type AccountHandler struct {
	Customers     *services.CustomerService
	Professionals *services.ProfessionalService
	FCM           *services.FCMNotifier
}

type registerRequest struct {
	Role        string `json:"role"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
	Location    string `json:"location"`
	PinCode     string `json:"pin_code"`
	Expertise   string `json:"expertise"`
}

// Register creates a customer or professional account depending on role.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch req.Role {
	case models.RoleCustomer:
		customer, err := h.Customers.Register(r.Context(), models.Customer{
			Username:    req.Username,
			Password:    req.Password,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Address:     req.Address,
			Location:    req.Location,
			PinCode:     req.PinCode,
		})
		if err != nil {
			serviceError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(customer)
	case models.RoleProfessional:
		professional, err := h.Professionals.Register(r.Context(), models.Professional{
			Username:    req.Username,
			Password:    req.Password,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Address:     req.Address,
			Location:    req.Location,
			PinCode:     req.PinCode,
			Expertise:   req.Expertise,
		})
		if err != nil {
			serviceError(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(professional)
	default:
		http.Error(w, "Invalid role", http.StatusBadRequest)
	}
}

// RegisterToken stores an FCM device token for the authenticated user.
func (h *AccountHandler) RegisterToken(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFrom(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if h.FCM == nil {
		http.Error(w, "Push notifications are not configured", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.FCM.RegisterToken(r.Context(), claims.UserID, claims.Role, req.Token); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
