package handlers

import (
	"errors"
	"log"
	"net/http"

	"homeservBack/internal/models"
)

// serviceError maps the error taxonomy onto HTTP statuses. Anything outside
// the taxonomy is a 500 and gets logged.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrServiceNotFound),
		errors.Is(err, models.ErrCustomerNotFound),
		errors.Is(err, models.ErrProfessionalNotFound),
		errors.Is(err, models.ErrRequestNotFound),
		errors.Is(err, models.ErrNoExport):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrForbidden),
		errors.Is(err, models.ErrCustomerBlocked),
		errors.Is(err, models.ErrNotApproved):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, models.ErrStatusConflict),
		errors.Is(err, models.ErrAlreadyRejected),
		errors.Is(err, models.ErrDuplicateUser),
		errors.Is(err, models.ErrServiceInUse):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, models.ErrInvalidRating),
		errors.Is(err, models.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("internal error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
