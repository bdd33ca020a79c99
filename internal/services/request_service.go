package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"homeservBack/internal/fsm"
	"homeservBack/internal/models"
)

// RequestsRepository is the persistence surface the lifecycle engine needs.
// The concrete MySQL repository satisfies it; tests use stubs.
type RequestsRepository interface {
	CreateRequest(ctx context.Context, req models.ServiceRequest) (models.ServiceRequest, error)
	GetRequestByID(ctx context.Context, id int) (models.ServiceRequest, error)
	Accept(ctx context.Context, requestID, professionalID int, acceptedAt time.Time) error
	Reject(ctx context.Context, requestID, professionalID int) error
	Advance(ctx context.Context, requestID, professionalID int, from, to string, completedAt *time.Time) error
	Close(ctx context.Context, requestID int, professionalID *int, rating *int) error
	UpdateRemarks(ctx context.Context, requestID int, remarks string) error
	ListByCustomer(ctx context.Context, customerID int, includeClosed bool) ([]models.ServiceRequest, error)
	ListVisiblePending(ctx context.Context, p models.Professional) ([]models.ServiceRequest, error)
	HasVisiblePending(ctx context.Context, p models.Professional) (bool, error)
	ListActiveByProfessional(ctx context.Context, professionalID int) ([]models.ServiceRequest, error)
}

type ServiceCatalog interface {
	GetServiceByID(ctx context.Context, id int) (models.Service, error)
}

type CustomersDirectory interface {
	GetCustomerByID(ctx context.Context, id int) (models.Customer, error)
}

type ProfessionalsDirectory interface {
	GetProfessionalByID(ctx context.Context, id int) (models.Professional, error)
	IsRejected(ctx context.Context, professionalID, requestID int) (bool, error)
}

// RequestService is the lifecycle engine. It validates the caller and the
// transition, then delegates the conditional write to the repository; the
// repository's CAS decides races, the service turns the outcome into the
// error taxonomy. Notifications go out after the commit and never fail the
// operation.
type RequestService struct {
	Requests      RequestsRepository
	Catalog       ServiceCatalog
	Customers     CustomersDirectory
	Professionals ProfessionalsDirectory
	Notifier      Notifier
	ErrorLog      *log.Logger

	// Now is swappable for tests; zero value means time.Now.
	Now func() time.Time
}

func (s *RequestService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// CreateRequest files a new pending request for the customer. Location and
// pin code fall back to the customer's profile when the input leaves them
// empty; the service's field is denormalized onto the request row so the
// matching query never needs the catalog join.
func (s *RequestService) CreateRequest(ctx context.Context, customerID int, input models.CreateRequestInput) (models.ServiceRequest, error) {
	customer, err := s.Customers.GetCustomerByID(ctx, customerID)
	if err != nil {
		return models.ServiceRequest{}, err
	}
	if customer.IsBlocked {
		return models.ServiceRequest{}, models.ErrCustomerBlocked
	}

	service, err := s.Catalog.GetServiceByID(ctx, input.ServiceID)
	if err != nil {
		return models.ServiceRequest{}, err
	}

	location := input.Location
	pinCode := input.PinCode
	if location == "" && pinCode == "" {
		location = customer.Location
		pinCode = customer.PinCode
	}

	req := models.ServiceRequest{
		ServiceID:      service.ID,
		CustomerID:     customer.ID,
		DateOfRequest:  s.now(),
		Location:       location,
		PinCode:        pinCode,
		FieldOfService: service.FieldOfService,
	}
	created, err := s.Requests.CreateRequest(ctx, req)
	if err != nil {
		return models.ServiceRequest{}, err
	}
	created.AssociatedService = &service
	return created, nil
}

// Accept assigns an open request to the professional. Losing the race to
// another professional yields ErrStatusConflict whether the loss is seen at
// the read or at the conditional write.
func (s *RequestService) Accept(ctx context.Context, requestID, professionalID int) (models.ServiceRequest, error) {
	professional, req, err := s.checkActor(ctx, requestID, professionalID)
	if err != nil {
		return models.ServiceRequest{}, err
	}

	rejected, err := s.Professionals.IsRejected(ctx, professionalID, requestID)
	if err != nil {
		return models.ServiceRequest{}, err
	}
	if rejected {
		return models.ServiceRequest{}, models.ErrAlreadyRejected
	}
	if !fsm.IsOpen(req.ServiceStatus) {
		return models.ServiceRequest{}, models.ErrStatusConflict
	}

	if err := s.Requests.Accept(ctx, requestID, professionalID, s.now()); err != nil {
		return models.ServiceRequest{}, err
	}

	s.notifyCustomer(ctx, req.CustomerID, "Service Request Accepted",
		fmt.Sprintf("Your service request #%d was accepted by %s.", req.ID, professional.Username))
	return s.Requests.GetRequestByID(ctx, requestID)
}

// Reject records the professional's permanent rejection of an open request.
// The request stays visible to every other professional with matching
// expertise.
func (s *RequestService) Reject(ctx context.Context, requestID, professionalID int) error {
	_, req, err := s.checkActor(ctx, requestID, professionalID)
	if err != nil {
		return err
	}

	rejected, err := s.Professionals.IsRejected(ctx, professionalID, requestID)
	if err != nil {
		return err
	}
	if rejected {
		return models.ErrAlreadyRejected
	}
	if !fsm.IsOpen(req.ServiceStatus) {
		return models.ErrStatusConflict
	}

	return s.Requests.Reject(ctx, requestID, professionalID)
}

// AdvanceStatus moves an assigned request forward (accepted to in_progress,
// in_progress to completed). Only the assigned professional may advance, and
// replaying a step fails with ErrInvalidTransition rather than silently
// succeeding.
func (s *RequestService) AdvanceStatus(ctx context.Context, requestID, professionalID int, target string) (models.ServiceRequest, error) {
	professional, err := s.Professionals.GetProfessionalByID(ctx, professionalID)
	if err != nil {
		return models.ServiceRequest{}, err
	}
	if !professional.IsApproved {
		return models.ServiceRequest{}, models.ErrNotApproved
	}

	req, err := s.Requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return models.ServiceRequest{}, err
	}
	if req.ProfessionalID == nil || *req.ProfessionalID != professionalID {
		return models.ServiceRequest{}, models.ErrForbidden
	}
	if target != fsm.StatusInProgress && target != fsm.StatusCompleted {
		return models.ServiceRequest{}, models.ErrInvalidTransition
	}
	if !fsm.CanTransition(req.ServiceStatus, target) {
		return models.ServiceRequest{}, models.ErrInvalidTransition
	}

	var completedAt *time.Time
	if target == fsm.StatusCompleted {
		now := s.now()
		completedAt = &now
	}
	if err := s.Requests.Advance(ctx, requestID, professionalID, req.ServiceStatus, target, completedAt); err != nil {
		return models.ServiceRequest{}, err
	}

	if target == fsm.StatusCompleted {
		s.notifyCustomer(ctx, req.CustomerID, "Service Completed",
			fmt.Sprintf("Service request #%d has been marked completed. Please close it and rate the work.", req.ID))
	}
	return s.Requests.GetRequestByID(ctx, requestID)
}

// Close terminates the customer's own request and optionally rates the
// assigned professional. The rating folds into the professional's running
// average in the same transaction as the status flip.
func (s *RequestService) Close(ctx context.Context, requestID, customerID int, rating *int) (models.ServiceRequest, error) {
	req, err := s.Requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return models.ServiceRequest{}, err
	}
	if req.CustomerID != customerID {
		return models.ServiceRequest{}, models.ErrForbidden
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return models.ServiceRequest{}, models.ErrInvalidRating
	}
	if !fsm.CanTransition(req.ServiceStatus, fsm.StatusClosed) {
		return models.ServiceRequest{}, models.ErrInvalidTransition
	}

	if err := s.Requests.Close(ctx, requestID, req.ProfessionalID, rating); err != nil {
		return models.ServiceRequest{}, err
	}

	if req.ProfessionalID != nil {
		body := fmt.Sprintf("Service request #%d was closed by the customer.", req.ID)
		if rating != nil {
			body = fmt.Sprintf("Service request #%d was closed with a rating of %d.", req.ID, *rating)
		}
		s.notifyProfessional(ctx, *req.ProfessionalID, "Service Request Closed", body)
	}
	return s.Requests.GetRequestByID(ctx, requestID)
}

// UpdateRemarks lets the owning customer edit remarks while the request is
// still alive.
func (s *RequestService) UpdateRemarks(ctx context.Context, requestID, customerID int, remarks string) error {
	req, err := s.Requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.CustomerID != customerID {
		return models.ErrForbidden
	}
	if req.ServiceStatus == fsm.StatusClosed {
		return models.ErrInvalidTransition
	}
	return s.Requests.UpdateRemarks(ctx, requestID, remarks)
}

// ListVisiblePending returns the open requests the professional may act on.
func (s *RequestService) ListVisiblePending(ctx context.Context, professionalID int) ([]models.ServiceRequest, error) {
	professional, err := s.Professionals.GetProfessionalByID(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	if !professional.IsApproved {
		return nil, models.ErrNotApproved
	}
	return s.Requests.ListVisiblePending(ctx, professional)
}

// HasPendingRequests reports whether anything is waiting for the
// professional; the daily reminder worker calls this per professional.
func (s *RequestService) HasPendingRequests(ctx context.Context, p models.Professional) (bool, error) {
	return s.Requests.HasVisiblePending(ctx, p)
}

func (s *RequestService) ListActive(ctx context.Context, professionalID int) ([]models.ServiceRequest, error) {
	return s.Requests.ListActiveByProfessional(ctx, professionalID)
}

func (s *RequestService) ListCustomerRequests(ctx context.Context, customerID int, includeClosed bool) ([]models.ServiceRequest, error) {
	return s.Requests.ListByCustomer(ctx, customerID, includeClosed)
}

// checkActor loads and validates the professional and the request for
// accept/reject: the professional must be approved and the request must be
// one they can see, matching their expertise and their service area.
func (s *RequestService) checkActor(ctx context.Context, requestID, professionalID int) (models.Professional, models.ServiceRequest, error) {
	professional, err := s.Professionals.GetProfessionalByID(ctx, professionalID)
	if err != nil {
		return models.Professional{}, models.ServiceRequest{}, err
	}
	if !professional.IsApproved {
		return models.Professional{}, models.ServiceRequest{}, models.ErrNotApproved
	}

	req, err := s.Requests.GetRequestByID(ctx, requestID)
	if err != nil {
		return models.Professional{}, models.ServiceRequest{}, err
	}
	if req.FieldOfService != professional.Expertise {
		return models.Professional{}, models.ServiceRequest{}, models.ErrForbidden
	}
	if !withinArea(req, professional) {
		return models.Professional{}, models.ServiceRequest{}, models.ErrForbidden
	}
	return professional, req, nil
}

// withinArea mirrors the visibility query's location rule: a request with no
// location and no pin code is open to any area, otherwise either must match.
func withinArea(req models.ServiceRequest, p models.Professional) bool {
	if req.Location == "" && req.PinCode == "" {
		return true
	}
	return req.Location == p.Location || req.PinCode == p.PinCode
}

func (s *RequestService) notifyCustomer(ctx context.Context, customerID int, subject, body string) {
	customer, err := s.Customers.GetCustomerByID(ctx, customerID)
	if err != nil {
		s.ErrorLog.Printf("notify: load customer %d: %v", customerID, err)
		return
	}
	s.dispatch(Recipient{UserID: customer.ID, Role: models.RoleCustomer, Username: customer.Username, Email: customer.Email}, subject, body)
}

func (s *RequestService) notifyProfessional(ctx context.Context, professionalID int, subject, body string) {
	professional, err := s.Professionals.GetProfessionalByID(ctx, professionalID)
	if err != nil {
		s.ErrorLog.Printf("notify: load professional %d: %v", professionalID, err)
		return
	}
	s.dispatch(Recipient{UserID: professional.ID, Role: models.RoleProfessional, Username: professional.Username, Email: professional.Email}, subject, body)
}

// dispatch sends the notification on a fresh context so a cancelled request
// cannot strand it; failures are logged and dropped.
func (s *RequestService) dispatch(to Recipient, subject, body string) {
	if s.Notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Notifier.Notify(ctx, to, subject, body); err != nil {
			s.ErrorLog.Printf("notify %s %d: %v", to.Role, to.UserID, err)
		}
	}()
}
