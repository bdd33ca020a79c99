package models

import (
	"errors"
)

var ErrServiceNotFound = errors.New("service not found")
var ErrCustomerNotFound = errors.New("customer not found")
var ErrProfessionalNotFound = errors.New("professional not found")
var ErrRequestNotFound = errors.New("service request not found")
var (
	ErrForbidden         = errors.New("models: action not allowed for this user")
	ErrCustomerBlocked   = errors.New("models: customer is blocked")
	ErrNotApproved       = errors.New("models: professional is not approved")
	ErrStatusConflict    = errors.New("models: request status changed concurrently")
	ErrAlreadyRejected   = errors.New("models: professional already rejected this request")
	ErrInvalidTransition = errors.New("models: status transition not allowed")
	ErrInvalidRating     = errors.New("models: rating must be between 1 and 5")
	ErrInvalidInput      = errors.New("models: invalid input")
	ErrDuplicateUser     = errors.New("models: duplicate username, email or phone number")
	ErrServiceInUse      = errors.New("models: service has associated requests")
	ErrNoExport          = errors.New("models: no export file found")
)
