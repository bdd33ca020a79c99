package services

import (
	"context"
	"strings"

	"homeservBack/internal/models"
	"homeservBack/internal/repositories"
)

// CatalogService exposes the admin-curated service catalog.
type CatalogService struct {
	Repo *repositories.ServiceRepository
}

func (s *CatalogService) CreateService(ctx context.Context, svc models.Service) (models.Service, error) {
	if strings.TrimSpace(svc.Name) == "" || strings.TrimSpace(svc.FieldOfService) == "" || svc.Price < 0 {
		return models.Service{}, models.ErrInvalidInput
	}
	return s.Repo.CreateService(ctx, svc)
}

func (s *CatalogService) GetServiceByID(ctx context.Context, id int) (models.Service, error) {
	return s.Repo.GetServiceByID(ctx, id)
}

func (s *CatalogService) GetServices(ctx context.Context) ([]models.Service, error) {
	return s.Repo.GetServices(ctx)
}

func (s *CatalogService) SearchServices(ctx context.Context, query string) ([]models.Service, error) {
	return s.Repo.SearchServices(ctx, query)
}

func (s *CatalogService) UpdateService(ctx context.Context, svc models.Service) (models.Service, error) {
	if strings.TrimSpace(svc.Name) == "" || svc.Price < 0 {
		return models.Service{}, models.ErrInvalidInput
	}
	return s.Repo.UpdateService(ctx, svc)
}

func (s *CatalogService) DeleteService(ctx context.Context, id int) error {
	return s.Repo.DeleteService(ctx, id)
}
