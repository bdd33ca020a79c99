package models

import (
	"time"
)

type ServiceRequest struct {
	ID               int        `json:"id"`
	ServiceID        int        `json:"service_id"`
	CustomerID       int        `json:"customer_id"`
	ProfessionalID   *int       `json:"professional_id,omitempty"`
	DateOfRequest    time.Time  `json:"date_of_request"`
	DateOfAcceptance *time.Time `json:"date_of_acceptance,omitempty"`
	DateOfCompletion *time.Time `json:"date_of_completion,omitempty"`
	ServiceStatus    string     `json:"service_status"`
	Remarks          string     `json:"remarks"`
	Location         string     `json:"location"`
	PinCode          string     `json:"pin_code"`
	FieldOfService   string     `json:"field_of_service"`

	AssociatedService    *Service      `json:"associated_service,omitempty"`
	AssignedProfessional *Professional `json:"assigned_professional,omitempty"`
	RequestingCustomer   *Customer     `json:"requesting_customer,omitempty"`
}

type CreateRequestInput struct {
	ServiceID int    `json:"service_id"`
	Location  string `json:"location"`
	PinCode   string `json:"pin_code"`
}

type CloseRequestInput struct {
	Rating *int `json:"rating,omitempty"`
}

type AdvanceStatusInput struct {
	ServiceStatus string `json:"service_status"`
}

type UpdateRemarksInput struct {
	Remarks string `json:"remarks"`
}
