package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"homeservBack/internal/models"
	"homeservBack/internal/repositories"
)

type ProfessionalService struct {
	Repo *repositories.ProfessionalRepository
}

// Register creates a professional account. New professionals stay invisible
// to the marketplace until an admin approves them.
func (s *ProfessionalService) Register(ctx context.Context, p models.Professional) (models.Professional, error) {
	if strings.TrimSpace(p.Username) == "" || strings.TrimSpace(p.Email) == "" ||
		strings.TrimSpace(p.Expertise) == "" || len(p.Password) < 6 {
		return models.Professional{}, models.ErrInvalidInput
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Professional{}, err
	}
	p.Password = string(hashed)

	created, err := s.Repo.CreateProfessional(ctx, p)
	if err != nil {
		return models.Professional{}, err
	}
	created.Password = ""
	return created, nil
}

func (s *ProfessionalService) GetProfessionalByID(ctx context.Context, id int) (models.Professional, error) {
	return s.Repo.GetProfessionalByID(ctx, id)
}

func (s *ProfessionalService) GetProfessionals(ctx context.Context, search string) ([]models.Professional, error) {
	return s.Repo.GetProfessionals(ctx, search)
}

func (s *ProfessionalService) ListApproved(ctx context.Context) ([]models.Professional, error) {
	return s.Repo.ListApproved(ctx)
}

func (s *ProfessionalService) SetApproved(ctx context.Context, id int, approved bool) error {
	return s.Repo.SetApproved(ctx, id, approved)
}

func (s *ProfessionalService) IsRejected(ctx context.Context, professionalID, requestID int) (bool, error) {
	return s.Repo.IsRejected(ctx, professionalID, requestID)
}
