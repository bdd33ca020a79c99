package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"homeservBack/internal/fsm"
	"homeservBack/internal/models"
)

// RequestRepository owns the service_requests table and the per-professional
// membership sets that must change in the same transaction as a status flip.
// Every lifecycle mutation is a conditional UPDATE on the current status, so
// two professionals racing for the same request leave exactly one winner; the
// loser's UPDATE matches zero rows and surfaces models.ErrStatusConflict.
type RequestRepository struct {
	DB *sql.DB
}

func (r *RequestRepository) CreateRequest(ctx context.Context, req models.ServiceRequest) (models.ServiceRequest, error) {
	query := `
		INSERT INTO service_requests
			(service_id, customer_id, date_of_request, service_status, remarks, location, pin_code, field_of_service)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		req.ServiceID, req.CustomerID, req.DateOfRequest, fsm.StatusPending,
		req.Remarks, req.Location, req.PinCode, req.FieldOfService,
	)
	if err != nil {
		return models.ServiceRequest{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.ServiceRequest{}, err
	}
	req.ID = int(id)
	req.ServiceStatus = fsm.StatusPending
	return req, nil
}

func (r *RequestRepository) GetRequestByID(ctx context.Context, id int) (models.ServiceRequest, error) {
	query := `
		SELECT id, service_id, customer_id, professional_id, date_of_request, date_of_acceptance,
		       date_of_completion, service_status, COALESCE(remarks, ''), COALESCE(location, ''),
		       COALESCE(pin_code, ''), field_of_service
		FROM service_requests
		WHERE id = ?
	`
	var req models.ServiceRequest
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.ServiceID, &req.CustomerID, &req.ProfessionalID,
		&req.DateOfRequest, &req.DateOfAcceptance, &req.DateOfCompletion,
		&req.ServiceStatus, &req.Remarks, &req.Location, &req.PinCode, &req.FieldOfService,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ServiceRequest{}, models.ErrRequestNotFound
	}
	if err != nil {
		return models.ServiceRequest{}, err
	}
	return req, nil
}

// Accept assigns the request to the professional if it is still open. The
// conditional UPDATE is the only accept path, so the first writer wins and
// the accepted-set row lands in the same transaction.
func (r *RequestRepository) Accept(ctx context.Context, requestID, professionalID int, acceptedAt time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE service_requests
		SET service_status = ?, professional_id = ?, date_of_acceptance = ?
		WHERE id = ? AND service_status IN (?, ?)
	`, fsm.StatusAccepted, professionalID, acceptedAt, requestID, fsm.StatusPending, fsm.StatusRejected)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrStatusConflict
	}

	_, err = tx.ExecContext(ctx,
		`INSERT IGNORE INTO professional_requests (professional_id, request_id, kind) VALUES (?, ?, ?)`,
		professionalID, requestID, models.RequestSetAccepted,
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Reject flips an open request to rejected and records permanent rejected-set
// membership for this professional. professional_id is left untouched; a
// rejected request stays visible to everyone else with matching expertise.
func (r *RequestRepository) Reject(ctx context.Context, requestID, professionalID int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE service_requests
		SET service_status = ?
		WHERE id = ? AND service_status IN (?, ?)
	`, fsm.StatusRejected, requestID, fsm.StatusPending, fsm.StatusRejected)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrStatusConflict
	}

	_, err = tx.ExecContext(ctx,
		`INSERT IGNORE INTO professional_requests (professional_id, request_id, kind) VALUES (?, ?, ?)`,
		professionalID, requestID, models.RequestSetRejected,
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Advance moves accepted → in_progress → completed for the assigned
// professional only. The WHERE clause pins both the expected status and the
// assignee, so replays and out-of-order calls match zero rows.
func (r *RequestRepository) Advance(ctx context.Context, requestID, professionalID int, from, to string, completedAt *time.Time) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE service_requests
		SET service_status = ?, date_of_completion = COALESCE(?, date_of_completion)
		WHERE id = ? AND service_status = ? AND professional_id = ?
	`, to, completedAt, requestID, from, professionalID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrStatusConflict
	}

	if to == fsm.StatusCompleted {
		_, err = tx.ExecContext(ctx,
			`INSERT IGNORE INTO professional_requests (professional_id, request_id, kind) VALUES (?, ?, ?)`,
			professionalID, requestID, models.RequestSetCompleted,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Close terminates an assigned request and, when a rating is supplied, folds
// it into the professional's running average inside the same transaction.
func (r *RequestRepository) Close(ctx context.Context, requestID int, professionalID *int, rating *int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE service_requests
		SET service_status = ?
		WHERE id = ? AND service_status IN (?, ?, ?)
	`, fsm.StatusClosed, requestID, fsm.StatusAccepted, fsm.StatusInProgress, fsm.StatusCompleted)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrStatusConflict
	}

	if rating != nil && professionalID != nil {
		_, err = tx.ExecContext(ctx, `
			UPDATE professionals
			SET rating = ROUND((rating * num_reviews + ?) / (num_reviews + 1), 2),
			    num_reviews = num_reviews + 1
			WHERE id = ?
		`, *rating, *professionalID)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *RequestRepository) UpdateRemarks(ctx context.Context, requestID int, remarks string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE service_requests SET remarks = ? WHERE id = ?`, remarks, requestID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.ErrRequestNotFound
	}
	return nil
}

const requestWithServiceColumns = `
	sr.id, sr.service_id, sr.customer_id, sr.professional_id, sr.date_of_request,
	sr.date_of_acceptance, sr.date_of_completion, sr.service_status,
	COALESCE(sr.remarks, ''), COALESCE(sr.location, ''), COALESCE(sr.pin_code, ''), sr.field_of_service,
	s.id, s.name, s.price, s.time_required, s.description, s.field_of_service
`

// ListByCustomer returns the customer's requests newest first, joined with the
// catalog entry and, when assigned, the professional's public card.
func (r *RequestRepository) ListByCustomer(ctx context.Context, customerID int, includeClosed bool) ([]models.ServiceRequest, error) {
	query := `
		SELECT ` + requestWithServiceColumns + `,
		       p.id, p.username, p.rating, p.num_reviews, p.phone_number, p.email
		FROM service_requests sr
		JOIN services s ON sr.service_id = s.id
		LEFT JOIN professionals p ON sr.professional_id = p.id
		WHERE sr.customer_id = ? AND (? OR sr.service_status <> ?)
		ORDER BY sr.date_of_request DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, customerID, includeClosed, fsm.StatusClosed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.ServiceRequest
	for rows.Next() {
		var req models.ServiceRequest
		var s models.Service
		var pID sql.NullInt64
		var pUsername, pPhone, pEmail sql.NullString
		var pRating sql.NullFloat64
		var pReviews sql.NullInt64
		err := rows.Scan(
			&req.ID, &req.ServiceID, &req.CustomerID, &req.ProfessionalID,
			&req.DateOfRequest, &req.DateOfAcceptance, &req.DateOfCompletion,
			&req.ServiceStatus, &req.Remarks, &req.Location, &req.PinCode, &req.FieldOfService,
			&s.ID, &s.Name, &s.Price, &s.TimeRequired, &s.Description, &s.FieldOfService,
			&pID, &pUsername, &pRating, &pReviews, &pPhone, &pEmail,
		)
		if err != nil {
			return nil, err
		}
		req.AssociatedService = &s
		if pID.Valid {
			req.AssignedProfessional = &models.Professional{
				ID:          int(pID.Int64),
				Username:    pUsername.String,
				Rating:      pRating.Float64,
				NumReviews:  int(pReviews.Int64),
				PhoneNumber: pPhone.String,
				Email:       pEmail.String,
			}
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

const visiblePendingFilter = `
	sr.service_status IN (?, ?)
	AND sr.field_of_service = ?
	AND NOT EXISTS (
		SELECT 1 FROM professional_requests pr
		WHERE pr.professional_id = ? AND pr.request_id = sr.id AND pr.kind = ?
	)
	AND (
		((sr.location IS NULL OR sr.location = '') AND (sr.pin_code IS NULL OR sr.pin_code = ''))
		OR sr.location = ? OR sr.pin_code = ?
	)
`

// ListVisiblePending computes the pending set a professional may act on:
// open requests in their expertise, minus their own rejections, filtered to
// their location or pin code unless the request left both empty.
func (r *RequestRepository) ListVisiblePending(ctx context.Context, p models.Professional) ([]models.ServiceRequest, error) {
	query := `
		SELECT ` + requestWithServiceColumns + `, c.username
		FROM service_requests sr
		JOIN services s ON sr.service_id = s.id
		JOIN customers c ON sr.customer_id = c.id
		WHERE ` + visiblePendingFilter + `
		ORDER BY sr.date_of_request
	`
	rows, err := r.DB.QueryContext(ctx, query,
		fsm.StatusPending, fsm.StatusRejected, p.Expertise,
		p.ID, models.RequestSetRejected, p.Location, p.PinCode,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.ServiceRequest
	for rows.Next() {
		var req models.ServiceRequest
		var s models.Service
		var customerName string
		err := rows.Scan(
			&req.ID, &req.ServiceID, &req.CustomerID, &req.ProfessionalID,
			&req.DateOfRequest, &req.DateOfAcceptance, &req.DateOfCompletion,
			&req.ServiceStatus, &req.Remarks, &req.Location, &req.PinCode, &req.FieldOfService,
			&s.ID, &s.Name, &s.Price, &s.TimeRequired, &s.Description, &s.FieldOfService,
			&customerName,
		)
		if err != nil {
			return nil, err
		}
		req.AssociatedService = &s
		req.RequestingCustomer = &models.Customer{ID: req.CustomerID, Username: customerName}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// HasVisiblePending is the EXISTS form of ListVisiblePending; it drives the
// daily reminder.
func (r *RequestRepository) HasVisiblePending(ctx context.Context, p models.Professional) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM service_requests sr WHERE ` + visiblePendingFilter + `)`
	var has bool
	err := r.DB.QueryRowContext(ctx, query,
		fsm.StatusPending, fsm.StatusRejected, p.Expertise,
		p.ID, models.RequestSetRejected, p.Location, p.PinCode,
	).Scan(&has)
	return has, err
}

// ListActiveByProfessional returns the accepted and in-progress requests
// assigned to the professional, with customer contact details.
func (r *RequestRepository) ListActiveByProfessional(ctx context.Context, professionalID int) ([]models.ServiceRequest, error) {
	query := `
		SELECT ` + requestWithServiceColumns + `,
		       c.id, c.username, c.location, c.pin_code, c.phone_number, c.email, c.address
		FROM service_requests sr
		JOIN services s ON sr.service_id = s.id
		JOIN customers c ON sr.customer_id = c.id
		WHERE sr.professional_id = ? AND sr.service_status IN (?, ?)
		ORDER BY sr.date_of_acceptance
	`
	rows, err := r.DB.QueryContext(ctx, query, professionalID, fsm.StatusAccepted, fsm.StatusInProgress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.ServiceRequest
	for rows.Next() {
		var req models.ServiceRequest
		var s models.Service
		var c models.Customer
		err := rows.Scan(
			&req.ID, &req.ServiceID, &req.CustomerID, &req.ProfessionalID,
			&req.DateOfRequest, &req.DateOfAcceptance, &req.DateOfCompletion,
			&req.ServiceStatus, &req.Remarks, &req.Location, &req.PinCode, &req.FieldOfService,
			&s.ID, &s.Name, &s.Price, &s.TimeRequired, &s.Description, &s.FieldOfService,
			&c.ID, &c.Username, &c.Location, &c.PinCode, &c.PhoneNumber, &c.Email, &c.Address,
		)
		if err != nil {
			return nil, err
		}
		req.AssociatedService = &s
		req.RequestingCustomer = &c
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *RequestRepository) StatusCountsByCustomer(ctx context.Context, customerID int) (models.CustomerRequestCounts, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN service_status IN (?, ?) THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN service_status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN service_status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN service_status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN service_status = ? THEN 1 ELSE 0 END), 0)
		FROM service_requests
		WHERE customer_id = ?
	`
	var counts models.CustomerRequestCounts
	err := r.DB.QueryRowContext(ctx, query,
		fsm.StatusPending, fsm.StatusRejected,
		fsm.StatusAccepted, fsm.StatusInProgress, fsm.StatusCompleted, fsm.StatusClosed,
		customerID,
	).Scan(&counts.Pending, &counts.Accepted, &counts.InProgress, &counts.Completed, &counts.Closed)
	return counts, err
}

// CountActiveByProfessional returns (accepted, in_progress) totals for the
// requests currently assigned to the professional.
func (r *RequestRepository) CountActiveByProfessional(ctx context.Context, professionalID int) (int, int, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN service_status = ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN service_status = ? THEN 1 ELSE 0 END), 0)
		FROM service_requests
		WHERE professional_id = ?
	`
	var accepted, inProgress int
	err := r.DB.QueryRowContext(ctx, query, fsm.StatusAccepted, fsm.StatusInProgress, professionalID).
		Scan(&accepted, &inProgress)
	return accepted, inProgress, err
}

// MonthlyCountsByCustomer returns (requested, closed) totals for requests
// filed in [from, to); the monthly report worker reads these.
func (r *RequestRepository) MonthlyCountsByCustomer(ctx context.Context, customerID int, from, to time.Time) (int, int, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN service_status = ? THEN 1 ELSE 0 END), 0)
		FROM service_requests
		WHERE customer_id = ? AND date_of_request >= ? AND date_of_request < ?
	`
	var requested, closed int
	err := r.DB.QueryRowContext(ctx, query, fsm.StatusClosed, customerID, from, to).
		Scan(&requested, &closed)
	return requested, closed, err
}
