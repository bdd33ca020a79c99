package services

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"sync"
	"testing"
	"time"

	"homeservBack/internal/fsm"
	"homeservBack/internal/models"
)

// stubStore is an in-memory stand-in for the MySQL repositories. Lifecycle
// writes mirror the conditional-update semantics: a write against an
// unexpected status fails with ErrStatusConflict.
type stubStore struct {
	mu            sync.Mutex
	services      map[int]models.Service
	customers     map[int]models.Customer
	professionals map[int]models.Professional
	requests      map[int]*models.ServiceRequest
	rejected      map[int]map[int]bool
	nextID        int
}

func newStubStore() *stubStore {
	return &stubStore{
		services:      make(map[int]models.Service),
		customers:     make(map[int]models.Customer),
		professionals: make(map[int]models.Professional),
		requests:      make(map[int]*models.ServiceRequest),
		rejected:      make(map[int]map[int]bool),
		nextID:        1,
	}
}

func (s *stubStore) CreateRequest(_ context.Context, req models.ServiceRequest) (models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req.ID = s.nextID
	s.nextID++
	req.ServiceStatus = fsm.StatusPending
	copied := req
	s.requests[req.ID] = &copied
	return req, nil
}

func (s *stubStore) GetRequestByID(_ context.Context, id int) (models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[id]
	if !ok {
		return models.ServiceRequest{}, models.ErrRequestNotFound
	}
	return *req, nil
}

func (s *stubStore) Accept(_ context.Context, requestID, professionalID int, acceptedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[requestID]
	if !ok || !fsm.IsOpen(req.ServiceStatus) {
		return models.ErrStatusConflict
	}
	req.ServiceStatus = fsm.StatusAccepted
	req.ProfessionalID = &professionalID
	req.DateOfAcceptance = &acceptedAt
	return nil
}

func (s *stubStore) Reject(_ context.Context, requestID, professionalID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[requestID]
	if !ok || !fsm.IsOpen(req.ServiceStatus) {
		return models.ErrStatusConflict
	}
	req.ServiceStatus = fsm.StatusRejected
	if s.rejected[professionalID] == nil {
		s.rejected[professionalID] = make(map[int]bool)
	}
	s.rejected[professionalID][requestID] = true
	return nil
}

func (s *stubStore) Advance(_ context.Context, requestID, professionalID int, from, to string, completedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[requestID]
	if !ok || req.ServiceStatus != from || req.ProfessionalID == nil || *req.ProfessionalID != professionalID {
		return models.ErrStatusConflict
	}
	req.ServiceStatus = to
	if completedAt != nil {
		req.DateOfCompletion = completedAt
	}
	return nil
}

func (s *stubStore) Close(_ context.Context, requestID int, professionalID *int, rating *int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[requestID]
	if !ok {
		return models.ErrStatusConflict
	}
	switch req.ServiceStatus {
	case fsm.StatusAccepted, fsm.StatusInProgress, fsm.StatusCompleted:
	default:
		return models.ErrStatusConflict
	}
	req.ServiceStatus = fsm.StatusClosed
	if rating != nil && professionalID != nil {
		p := s.professionals[*professionalID]
		p.Rating = math.Round((p.Rating*float64(p.NumReviews)+float64(*rating))/float64(p.NumReviews+1)*100) / 100
		p.NumReviews++
		s.professionals[*professionalID] = p
	}
	return nil
}

func (s *stubStore) UpdateRemarks(_ context.Context, requestID int, remarks string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[requestID]
	if !ok {
		return models.ErrRequestNotFound
	}
	req.Remarks = remarks
	return nil
}

func (s *stubStore) ListByCustomer(_ context.Context, customerID int, includeClosed bool) ([]models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ServiceRequest
	for _, req := range s.requests {
		if req.CustomerID != customerID {
			continue
		}
		if !includeClosed && req.ServiceStatus == fsm.StatusClosed {
			continue
		}
		out = append(out, *req)
	}
	return out, nil
}

func (s *stubStore) visibleTo(req *models.ServiceRequest, p models.Professional) bool {
	if !fsm.IsOpen(req.ServiceStatus) {
		return false
	}
	if req.FieldOfService != p.Expertise {
		return false
	}
	if s.rejected[p.ID][req.ID] {
		return false
	}
	if req.Location == "" && req.PinCode == "" {
		return true
	}
	return req.Location == p.Location || req.PinCode == p.PinCode
}

func (s *stubStore) ListVisiblePending(_ context.Context, p models.Professional) ([]models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ServiceRequest
	for _, req := range s.requests {
		if s.visibleTo(req, p) {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (s *stubStore) HasVisiblePending(_ context.Context, p models.Professional) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, req := range s.requests {
		if s.visibleTo(req, p) {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubStore) ListActiveByProfessional(_ context.Context, professionalID int) ([]models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ServiceRequest
	for _, req := range s.requests {
		if req.ProfessionalID == nil || *req.ProfessionalID != professionalID {
			continue
		}
		if req.ServiceStatus == fsm.StatusAccepted || req.ServiceStatus == fsm.StatusInProgress {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (s *stubStore) GetServiceByID(_ context.Context, id int) (models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.services[id]
	if !ok {
		return models.Service{}, models.ErrServiceNotFound
	}
	return svc, nil
}

func (s *stubStore) GetCustomerByID(_ context.Context, id int) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok {
		return models.Customer{}, models.ErrCustomerNotFound
	}
	return c, nil
}

func (s *stubStore) GetProfessionalByID(_ context.Context, id int) (models.Professional, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.professionals[id]
	if !ok {
		return models.Professional{}, models.ErrProfessionalNotFound
	}
	return p, nil
}

func (s *stubStore) IsRejected(_ context.Context, professionalID, requestID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rejected[professionalID][requestID], nil
}

func newTestService(store *stubStore) *RequestService {
	return &RequestService{
		Requests:      store,
		Catalog:       store,
		Customers:     store,
		Professionals: store,
		ErrorLog:      log.New(io.Discard, "", 0),
		Now:           func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) },
	}
}

func seedMarketplace(store *stubStore) {
	store.services[1] = models.Service{ID: 1, Name: "Pipe Repair", Price: 500, FieldOfService: "Plumbing"}
	store.services[2] = models.Service{ID: 2, Name: "Wiring Check", Price: 800, FieldOfService: "Electrical"}
	store.customers[1] = models.Customer{ID: 1, Username: "asha", Location: "Mumbai", PinCode: "400001"}
	store.customers[2] = models.Customer{ID: 2, Username: "ravi", Location: "Pune", PinCode: "411001"}
	store.professionals[10] = models.Professional{ID: 10, Username: "plumber_a", Expertise: "Plumbing", IsApproved: true, Location: "Mumbai", PinCode: "400001"}
	store.professionals[11] = models.Professional{ID: 11, Username: "plumber_b", Expertise: "Plumbing", IsApproved: true, Location: "Mumbai", PinCode: "400001"}
	store.professionals[20] = models.Professional{ID: 20, Username: "electrician", Expertise: "Electrical", IsApproved: true, Location: "Pune", PinCode: "411001"}
	store.professionals[30] = models.Professional{ID: 30, Username: "newbie", Expertise: "Plumbing", IsApproved: false, Location: "Mumbai", PinCode: "400001"}
}

func TestCreateRequestDefaultsToProfileLocation(t *testing.T) {
	store := newStubStore()
	seedMarketplace(store)
	svc := newTestService(store)
	ctx := context.Background()

	req, err := svc.CreateRequest(ctx, 1, models.CreateRequestInput{ServiceID: 1})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if req.ServiceStatus != fsm.StatusPending {
		t.Fatalf("expected pending status, got %s", req.ServiceStatus)
	}
	if req.ProfessionalID != nil {
		t.Fatalf("new request must not have a professional")
	}
	if req.FieldOfService != "Plumbing" {
		t.Fatalf("expected field Plumbing, got %s", req.FieldOfService)
	}
	if req.Location != "Mumbai" || req.PinCode != "400001" {
		t.Fatalf("expected profile location fallback, got %s/%s", req.Location, req.PinCode)
	}
}

func TestCreateRequestBlockedCustomer(t *testing.T) {
	store := newStubStore()
	seedMarketplace(store)
	store.customers[1] = models.Customer{ID: 1, Username: "asha", IsBlocked: true}
	svc := newTestService(store)

	_, err := svc.CreateRequest(context.Background(), 1, models.CreateRequestInput{ServiceID: 1})
	if !errors.Is(err, models.ErrCustomerBlocked) {
		t.Fatalf("expected ErrCustomerBlocked, got %v", err)
	}
}

func TestAcceptAssignsProfessional(t *testing.T) {
	store := newStubStore()
	seedMarketplace(store)
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.CreateRequest(ctx, 1, models.CreateRequestInput{ServiceID: 1})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	req, err := svc.Accept(ctx, created.ID, 10)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if req.ServiceStatus != fsm.StatusAccepted {
		t.Fatalf("expected accepted, got %s", req.ServiceStatus)
	}
	if req.ProfessionalID == nil || *req.ProfessionalID != 10 {
		t.Fatalf("expected professional 10 assigned")
	}
	if req.DateOfAcceptance == nil {
		t.Fatalf("acceptance timestamp missing")
	}
}

func TestAcceptGuards(t *testing.T) {
	store := newStubStore()
	seedMarketplace(store)
	svc := newTestService(store)
	ctx := context.Background()

	created, _ := svc.CreateRequest(ctx, 1, models.CreateRequestInput{ServiceID: 1})

	if _, err := svc.Accept(ctx, created.ID, 30); !errors.Is(err, models.ErrNotApproved) {
		t.Fatalf("expected ErrNotApproved for unapproved professional, got %v", err)
	}
	if _, err := svc.Accept(ctx, created.ID, 20); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for expertise mismatch, got %v", err)
	}
	if _, err := svc.Accept(ctx, 999, 10); !errors.Is(err, models.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestAcceptLosesRace(t *testing.T) {
	store := newStubStore()
	seedMarketplace(store)
	svc := newTestService(store)
	ctx := context.Background()

	created, _ := svc.CreateRequest(ctx, 1, models.CreateRequestInput{ServiceID: 1})

	if _, err := svc.Accept(ctx, created.ID, 10); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	if _, err := svc.Accept(ctx, created.ID, 11); !errors.Is(err, models.ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict for second accept, got %v", err)
	}
}

func TestRejectionIsPerProfessional(t *testing.T) {
	store := newStubStore()
	seedMarketplace(store)
	svc := newTestService(store)
	ctx := context.Background()

	created, _ := svc.CreateRequest(ctx, 1, models.CreateRequestInput{ServiceID: 1})

	if err := svc.Reject(ctx, created.ID, 10); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	req, _ := store.GetRequestByID(ctx, created.ID)
	if req.ServiceStatus != fsm.StatusRejected {
		t.Fatalf("expected rejected, got %s", req.ServiceStatus)
	}
	if req.ProfessionalID != nil {
		t.Fatalf("rejected request must stay unassigned")
	}

	// The rejecting professional no longer sees it and cannot act on it.
	visible, _ := svc.ListVisiblePending(ctx, 10)
	if len(visible) != 0 {
		t.Fatalf("professional 10 should not see rejected request, got %d", len(visible))
	}
	if _, err := svc.Accept(ctx, created.ID, 10); !errors.Is(err, models.ErrAlreadyRejected) {
		t.Fatalf("expected ErrAlreadyRejected on accept, got %v", err)
	}
	if err := svc.Reject(ctx, created.ID, 10); !errors.Is(err, models.ErrAlreadyRejected) {
		t.Fatalf("expected ErrAlreadyRejected on second reject, got %v", err)
	}

	// Another plumber still sees it and may accept.
	visible, _ = svc.ListVisiblePending(ctx, 11)
	if len(visible) != 1 {
		t.Fatalf("professional 11 should still see the request, got %d", len(visible))
	}
	if _, err := svc.Accept(ctx, created.ID, 11); err != nil {
		t.Fatalf("accept after another's rejection: %v", err)
	}
}

func TestActOutsideServiceArea(t *testing.T) {
	store := newStubStore()
	seedMarketplace(store)
	store.professionals[12] = models.Professional{ID: 12, Username: "plumber_c", Expertise: "Plumbing", IsApproved: true, Location: "Delhi", PinCode: "110001"}
	svc := newTestService(store)
	ctx := context.Background()

	// Mumbai request: the Delhi plumber never sees it and may not touch it.
	created, _ := svc.CreateRequest(ctx, 1, models.CreateRequestInput{ServiceID: 1})

	if err := svc.Reject(ctx, created.ID, 12); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden rejecting out of area, got %v", err)
	}
	if _, err := svc.Accept(ctx, created.ID, 12); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden accepting out of area, got %v", err)
	}

	req, _ := store.GetRequestByID(ctx, created.ID)
	if req.ServiceStatus != fsm.StatusPending {
		t.Fatalf("request must stay pending, got %s", req.ServiceStatus)
	}
	if rejected, _ := store.IsRejected(ctx, 12, created.ID); rejected {
		t.Fatalf("out-of-area reject must not record set membership")
	}

	// A pin-code match alone is enough even when the city differs.
	store.professionals[13] = models.Professional{ID: 13, Username: "plumber_d", Expertise: "Plumbing", IsApproved: true, Location: "Thane", PinCode: "400001"}
	if _, err := svc.Accept(ctx, created.ID, 13); err != nil {
		t.Fatalf("accept with matching pin code: %v", err)
	}
}

func TestAdvanceStatus(t *testing.T) {
	store := newStubStore()
	seedMarketplace(store)
	svc := newTestService(store)
	ctx := context.Background()

	created, _ := svc.CreateRequest(ctx, 1, models.CreateRequestInput{ServiceID: 1})
	if _, err := svc.Accept(ctx, created.ID, 10); err != nil {
		t.Fatalf("Accept: %v", err)
	}

	if _, err := svc.AdvanceStatus(ctx, created.ID, 11, fsm.StatusInProgress); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-assignee, got %v", err)
	}
	if _, err := svc.AdvanceStatus(ctx, created.ID, 10, fsm.StatusCompleted); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition skipping in_progress, got %v", err)
	}

	req, err := svc.AdvanceStatus(ctx, created.ID, 10, fsm.StatusInProgress)
	if err != nil {
		t.Fatalf("advance to in_progress: %v", err)
	}
	if req.ServiceStatus != fsm.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", req.ServiceStatus)
	}

	// Replaying the same step is rejected, not silently accepted.
	if _, err := svc.AdvanceStatus(ctx, created.ID, 10, fsm.StatusInProgress); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on replay, got %v", err)
	}

	req, err = svc.AdvanceStatus(ctx, created.ID, 10, fsm.StatusCompleted)
	if err != nil {
		t.Fatalf("advance to completed: %v", err)
	}
	if req.ServiceStatus != fsm.StatusCompleted {
		t.Fatalf("expected completed, got %s", req.ServiceStatus)
	}
	if req.DateOfCompletion == nil {
		t.Fatalf("completion timestamp missing")
	}
}

func TestCloseFoldsRatingIntoAverage(t *testing.T) {
	store := newStubStore()
	seedMarketplace(store)
	p := store.professionals[10]
	p.Rating = 4.0
	p.NumReviews = 2
	store.professionals[10] = p
	svc := newTestService(store)
	ctx := context.Background()

	created, _ := svc.CreateRequest(ctx, 1, models.CreateRequestInput{ServiceID: 1})
	svc.Accept(ctx, created.ID, 10)
	svc.AdvanceStatus(ctx, created.ID, 10, fsm.StatusInProgress)
	svc.AdvanceStatus(ctx, created.ID, 10, fsm.StatusCompleted)

	rating := 5
	req, err := svc.Close(ctx, created.ID, 1, &rating)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if req.ServiceStatus != fsm.StatusClosed {
		t.Fatalf("expected closed, got %s", req.ServiceStatus)
	}

	got, _ := store.GetProfessionalByID(ctx, 10)
	if got.Rating != 4.33 {
		t.Fatalf("expected rating 4.33, got %v", got.Rating)
	}
	if got.NumReviews != 3 {
		t.Fatalf("expected 3 reviews, got %d", got.NumReviews)
	}
}

func TestCloseValidation(t *testing.T) {
	store := newStubStore()
	seedMarketplace(store)
	svc := newTestService(store)
	ctx := context.Background()

	created, _ := svc.CreateRequest(ctx, 1, models.CreateRequestInput{ServiceID: 1})

	bad := 6
	if _, err := svc.Close(ctx, created.ID, 1, &bad); !errors.Is(err, models.ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating for 6, got %v", err)
	}
	bad = 0
	if _, err := svc.Close(ctx, created.ID, 1, &bad); !errors.Is(err, models.ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating for 0, got %v", err)
	}
	if _, err := svc.Close(ctx, created.ID, 2, nil); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other customer, got %v", err)
	}
	if _, err := svc.Close(ctx, created.ID, 1, nil); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition closing pending request, got %v", err)
	}
}

func TestVisibilityFilter(t *testing.T) {
	store := newStubStore()
	seedMarketplace(store)
	svc := newTestService(store)
	ctx := context.Background()

	// Plumbing in Mumbai, Electrical in Pune, and a plumbing request with no
	// location at all.
	plumbing, _ := svc.CreateRequest(ctx, 1, models.CreateRequestInput{ServiceID: 1})
	svc.CreateRequest(ctx, 2, models.CreateRequestInput{ServiceID: 2})
	anywhere, _ := svc.CreateRequest(ctx, 1, models.CreateRequestInput{ServiceID: 1, Location: "", PinCode: ""})
	store.mu.Lock()
	store.requests[anywhere.ID].Location = ""
	store.requests[anywhere.ID].PinCode = ""
	store.mu.Unlock()

	visible, err := svc.ListVisiblePending(ctx, 10)
	if err != nil {
		t.Fatalf("ListVisiblePending: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("expected plumber to see 2 requests, got %d", len(visible))
	}
	for _, req := range visible {
		if req.FieldOfService != "Plumbing" {
			t.Fatalf("plumber saw %s request", req.FieldOfService)
		}
	}

	visible, _ = svc.ListVisiblePending(ctx, 20)
	if len(visible) != 1 || visible[0].FieldOfService != "Electrical" {
		t.Fatalf("electrician should see exactly the electrical request")
	}

	// A plumber in another city sees only the location-free request.
	store.mu.Lock()
	store.professionals[12] = models.Professional{ID: 12, Username: "plumber_c", Expertise: "Plumbing", IsApproved: true, Location: "Delhi", PinCode: "110001"}
	store.mu.Unlock()
	visible, _ = svc.ListVisiblePending(ctx, 12)
	if len(visible) != 1 || visible[0].ID != anywhere.ID {
		t.Fatalf("out-of-town plumber should see only the location-free request, got %d", len(visible))
	}
	if visible[0].ID == plumbing.ID {
		t.Fatalf("out-of-town plumber must not see the Mumbai request")
	}

	if _, err := svc.ListVisiblePending(ctx, 30); !errors.Is(err, models.ErrNotApproved) {
		t.Fatalf("expected ErrNotApproved for unapproved professional, got %v", err)
	}
}

func TestLifecycleTimestampsUseInjectedClock(t *testing.T) {
	store := newStubStore()
	seedMarketplace(store)
	svc := newTestService(store)
	ist := time.FixedZone("UTC+05:30", 19800)
	stamp := time.Date(2024, 3, 15, 17, 30, 0, 0, ist)
	svc.Now = func() time.Time { return stamp }
	ctx := context.Background()

	created, err := svc.CreateRequest(ctx, 1, models.CreateRequestInput{ServiceID: 1})
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if !created.DateOfRequest.Equal(stamp) || created.DateOfRequest.Location() != ist {
		t.Fatalf("request timestamp not taken from the clock: %v", created.DateOfRequest)
	}

	req, err := svc.Accept(ctx, created.ID, 10)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if req.DateOfAcceptance == nil || !req.DateOfAcceptance.Equal(stamp) || req.DateOfAcceptance.Location() != ist {
		t.Fatalf("acceptance timestamp not taken from the clock: %v", req.DateOfAcceptance)
	}

	svc.AdvanceStatus(ctx, created.ID, 10, fsm.StatusInProgress)
	req, err = svc.AdvanceStatus(ctx, created.ID, 10, fsm.StatusCompleted)
	if err != nil {
		t.Fatalf("advance to completed: %v", err)
	}
	if req.DateOfCompletion == nil || !req.DateOfCompletion.Equal(stamp) || req.DateOfCompletion.Location() != ist {
		t.Fatalf("completion timestamp not taken from the clock: %v", req.DateOfCompletion)
	}
}

func TestUpdateRemarks(t *testing.T) {
	store := newStubStore()
	seedMarketplace(store)
	svc := newTestService(store)
	ctx := context.Background()

	created, _ := svc.CreateRequest(ctx, 1, models.CreateRequestInput{ServiceID: 1})

	if err := svc.UpdateRemarks(ctx, created.ID, 2, "leaky tap"); !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other customer, got %v", err)
	}
	if err := svc.UpdateRemarks(ctx, created.ID, 1, "leaky tap"); err != nil {
		t.Fatalf("UpdateRemarks: %v", err)
	}
	req, _ := store.GetRequestByID(ctx, created.ID)
	if req.Remarks != "leaky tap" {
		t.Fatalf("remarks not updated, got %q", req.Remarks)
	}

	svc.Accept(ctx, created.ID, 10)
	if _, err := svc.Close(ctx, created.ID, 1, nil); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := svc.UpdateRemarks(ctx, created.ID, 1, "too late"); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on closed request, got %v", err)
	}
}
