package repositories

import (
	"context"
	"database/sql"
	"errors"

	"homeservBack/internal/models"
)

type CustomerRepository struct {
	DB *sql.DB
}

// CreateCustomer inserts a new customer. Username, email and phone number must
// be unique within the customers table only; professionals are checked
// separately against their own table.
func (r *CustomerRepository) CreateCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE username = ? OR email = ? OR phone_number = ?)`,
		c.Username, c.Email, c.PhoneNumber,
	).Scan(&exists)
	if err != nil {
		return models.Customer{}, err
	}
	if exists {
		return models.Customer{}, models.ErrDuplicateUser
	}

	query := `
		INSERT INTO customers (username, password, is_blocked, location, pin_code, phone_number, email, address)
		VALUES (?, ?, FALSE, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		c.Username, c.Password, c.Location, c.PinCode, c.PhoneNumber, c.Email, c.Address,
	)
	if err != nil {
		return models.Customer{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.Customer{}, err
	}
	c.ID = int(id)
	return c, nil
}

func (r *CustomerRepository) GetCustomerByID(ctx context.Context, id int) (models.Customer, error) {
	var c models.Customer
	query := `
		SELECT id, username, password, is_blocked, location, pin_code, phone_number, email, address
		FROM customers
		WHERE id = ?
	`
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Username, &c.Password, &c.IsBlocked, &c.Location, &c.PinCode,
		&c.PhoneNumber, &c.Email, &c.Address,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Customer{}, models.ErrCustomerNotFound
	}
	if err != nil {
		return models.Customer{}, err
	}
	return c, nil
}

// GetCustomers returns all customers, optionally filtered by a username
// substring (the admin search box).
func (r *CustomerRepository) GetCustomers(ctx context.Context, search string) ([]models.Customer, error) {
	query := `
		SELECT id, username, is_blocked, location, pin_code, phone_number, email, address
		FROM customers
		WHERE (? = '' OR username LIKE CONCAT('%', ?, '%'))
		ORDER BY username
	`
	rows, err := r.DB.QueryContext(ctx, query, search, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Username, &c.IsBlocked, &c.Location, &c.PinCode,
			&c.PhoneNumber, &c.Email, &c.Address); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) SetBlocked(ctx context.Context, id int, blocked bool) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE customers SET is_blocked = ? WHERE id = ?`, blocked, id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrCustomerNotFound
	}
	return nil
}

// CountByBlocked returns (active, blocked) customer totals for the admin dashboard.
func (r *CustomerRepository) CountByBlocked(ctx context.Context) (int, int, error) {
	var active, blocked int
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN is_blocked THEN 0 ELSE 1 END), 0),
			COALESCE(SUM(CASE WHEN is_blocked THEN 1 ELSE 0 END), 0)
		FROM customers
	`).Scan(&active, &blocked)
	return active, blocked, err
}
