package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"homeservBack/internal/models"
	"homeservBack/internal/repositories"
)

type CustomerService struct {
	Repo *repositories.CustomerRepository
}

// Register creates a customer account with a bcrypt-hashed password.
func (s *CustomerService) Register(ctx context.Context, c models.Customer) (models.Customer, error) {
	if strings.TrimSpace(c.Username) == "" || strings.TrimSpace(c.Email) == "" || len(c.Password) < 6 {
		return models.Customer{}, models.ErrInvalidInput
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Customer{}, err
	}
	c.Password = string(hashed)

	created, err := s.Repo.CreateCustomer(ctx, c)
	if err != nil {
		return models.Customer{}, err
	}
	created.Password = ""
	return created, nil
}

func (s *CustomerService) GetCustomerByID(ctx context.Context, id int) (models.Customer, error) {
	return s.Repo.GetCustomerByID(ctx, id)
}

func (s *CustomerService) GetCustomers(ctx context.Context, search string) ([]models.Customer, error) {
	return s.Repo.GetCustomers(ctx, search)
}

func (s *CustomerService) SetBlocked(ctx context.Context, id int, blocked bool) error {
	return s.Repo.SetBlocked(ctx, id, blocked)
}
