package repositories

import (
	"context"
	"database/sql"
	"errors"

	"homeservBack/internal/models"
)

type ServiceRepository struct {
	DB *sql.DB
}

func (r *ServiceRepository) CreateService(ctx context.Context, s models.Service) (models.Service, error) {
	query := `
		INSERT INTO services (name, price, time_required, description, field_of_service)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		s.Name, s.Price, s.TimeRequired, s.Description, s.FieldOfService,
	)
	if err != nil {
		return models.Service{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Service{}, err
	}
	s.ID = int(id)
	return s, nil
}

func (r *ServiceRepository) GetServiceByID(ctx context.Context, id int) (models.Service, error) {
	query := `
		SELECT id, name, price, time_required, description, field_of_service
		FROM services
		WHERE id = ?
	`
	var s models.Service
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.Price, &s.TimeRequired, &s.Description, &s.FieldOfService,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Service{}, models.ErrServiceNotFound
	}
	if err != nil {
		return models.Service{}, err
	}
	return s, nil
}

func (r *ServiceRepository) GetServices(ctx context.Context) ([]models.Service, error) {
	query := `
		SELECT id, name, price, time_required, description, field_of_service
		FROM services
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		var s models.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.TimeRequired, &s.Description, &s.FieldOfService); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *ServiceRepository) SearchServices(ctx context.Context, query string) ([]models.Service, error) {
	stmt := `
		SELECT id, name, price, time_required, description, field_of_service
		FROM services
		WHERE name LIKE CONCAT('%', ?, '%')
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, stmt, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		var s models.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.TimeRequired, &s.Description, &s.FieldOfService); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *ServiceRepository) UpdateService(ctx context.Context, s models.Service) (models.Service, error) {
	query := `
		UPDATE services
		SET name = ?, price = ?, time_required = ?, description = ?
		WHERE id = ?
	`
	result, err := r.DB.ExecContext(ctx, query,
		s.Name, s.Price, s.TimeRequired, s.Description, s.ID,
	)
	if err != nil {
		return models.Service{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return models.Service{}, err
	}
	if rowsAffected == 0 {
		return models.Service{}, models.ErrServiceNotFound
	}
	return r.GetServiceByID(ctx, s.ID)
}

// DeleteService removes a service unless any request references it.
func (r *ServiceRepository) DeleteService(ctx context.Context, id int) error {
	var inUse bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM service_requests WHERE service_id = ?)`, id,
	).Scan(&inUse)
	if err != nil {
		return err
	}
	if inUse {
		return models.ErrServiceInUse
	}

	result, err := r.DB.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepository) CountServices(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM services`).Scan(&count)
	return count, err
}
