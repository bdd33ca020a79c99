package repositories

import (
	"context"
	"database/sql"
	"errors"

	"homeservBack/internal/models"
)

type ProfessionalRepository struct {
	DB *sql.DB
}

func (r *ProfessionalRepository) CreateProfessional(ctx context.Context, p models.Professional) (models.Professional, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM professionals WHERE username = ? OR email = ? OR phone_number = ?)`,
		p.Username, p.Email, p.PhoneNumber,
	).Scan(&exists)
	if err != nil {
		return models.Professional{}, err
	}
	if exists {
		return models.Professional{}, models.ErrDuplicateUser
	}

	// New professionals start unapproved with no reviews.
	query := `
		INSERT INTO professionals
			(username, password, expertise, rating, num_reviews, location, pin_code, is_approved, phone_number, email, address)
		VALUES (?, ?, ?, 0, 0, ?, ?, FALSE, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		p.Username, p.Password, p.Expertise, p.Location, p.PinCode,
		p.PhoneNumber, p.Email, p.Address,
	)
	if err != nil {
		return models.Professional{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Professional{}, err
	}
	p.ID = int(id)
	return p, nil
}

func (r *ProfessionalRepository) GetProfessionalByID(ctx context.Context, id int) (models.Professional, error) {
	var p models.Professional
	query := `
		SELECT id, username, password, expertise, rating, num_reviews, location, pin_code, is_approved, phone_number, email, address
		FROM professionals
		WHERE id = ?
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Username, &p.Password, &p.Expertise, &p.Rating, &p.NumReviews,
		&p.Location, &p.PinCode, &p.IsApproved, &p.PhoneNumber, &p.Email, &p.Address,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Professional{}, models.ErrProfessionalNotFound
	}
	if err != nil {
		return models.Professional{}, err
	}
	return p, nil
}

func (r *ProfessionalRepository) GetProfessionals(ctx context.Context, search string) ([]models.Professional, error) {
	query := `
		SELECT id, username, expertise, rating, num_reviews, location, pin_code, is_approved, phone_number, email, address
		FROM professionals
		WHERE (? = '' OR username LIKE CONCAT('%', ?, '%'))
		ORDER BY username
	`
	rows, err := r.DB.QueryContext(ctx, query, search, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var professionals []models.Professional
	for rows.Next() {
		var p models.Professional
		if err := rows.Scan(&p.ID, &p.Username, &p.Expertise, &p.Rating, &p.NumReviews,
			&p.Location, &p.PinCode, &p.IsApproved, &p.PhoneNumber, &p.Email, &p.Address); err != nil {
			return nil, err
		}
		professionals = append(professionals, p)
	}
	return professionals, rows.Err()
}

// ListApproved feeds the daily reminder worker.
func (r *ProfessionalRepository) ListApproved(ctx context.Context) ([]models.Professional, error) {
	query := `
		SELECT id, username, expertise, rating, num_reviews, location, pin_code, is_approved, phone_number, email, address
		FROM professionals
		WHERE is_approved = TRUE
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var professionals []models.Professional
	for rows.Next() {
		var p models.Professional
		if err := rows.Scan(&p.ID, &p.Username, &p.Expertise, &p.Rating, &p.NumReviews,
			&p.Location, &p.PinCode, &p.IsApproved, &p.PhoneNumber, &p.Email, &p.Address); err != nil {
			return nil, err
		}
		professionals = append(professionals, p)
	}
	return professionals, rows.Err()
}

func (r *ProfessionalRepository) SetApproved(ctx context.Context, id int, approved bool) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE professionals SET is_approved = ? WHERE id = ?`, approved, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrProfessionalNotFound
	}
	return nil
}

func (r *ProfessionalRepository) CountByApproval(ctx context.Context) (int, int, error) {
	var approved, unapproved int
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN is_approved THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN is_approved THEN 0 ELSE 1 END), 0)
		FROM professionals
	`).Scan(&approved, &unapproved)
	return approved, unapproved, err
}

// IsRejected reports whether the professional has the request in their
// rejected set. Membership is permanent for that professional.
func (r *ProfessionalRepository) IsRejected(ctx context.Context, professionalID, requestID int) (bool, error) {
	var rejected bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM professional_requests WHERE professional_id = ? AND request_id = ? AND kind = ?)`,
		professionalID, requestID, models.RequestSetRejected,
	).Scan(&rejected)
	return rejected, err
}

// RequestSetCounts returns how many request ids sit in each membership set.
func (r *ProfessionalRepository) RequestSetCounts(ctx context.Context, professionalID int) (map[string]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT kind, COUNT(*) FROM professional_requests WHERE professional_id = ? GROUP BY kind`,
		professionalID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}
