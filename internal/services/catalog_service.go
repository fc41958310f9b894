package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"workersdeck/internal/apperr"
	"workersdeck/internal/domain"
	"workersdeck/internal/repos"
	"workersdeck/internal/validate"
)

type CatalogService struct {
	Services *repos.ServiceRepo
}

func NewCatalogService(services *repos.ServiceRepo) *CatalogService {
	return &CatalogService{Services: services}
}

type ServiceInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

func (in ServiceInput) check() error {
	if in.Name == "" || in.Price == 0 {
		return apperr.BadRequest("Name and price are required")
	}
	if err := validate.Struct(in); err != nil {
		return apperr.BadRequest(err.Error())
	}
	return nil
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Service, error) {
	out, err := s.Services.List(ctx)
	if err != nil {
		return nil, apperr.Server("Failed to fetch services", err)
	}
	return out, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (domain.Service, error) {
	svc, err := s.Services.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Service{}, apperr.NotFound("Service not found")
	}
	if err != nil {
		return domain.Service{}, apperr.Server("Failed to fetch service", err)
	}
	return svc, nil
}

func (s *CatalogService) Create(ctx context.Context, in ServiceInput) (domain.Service, error) {
	if err := in.check(); err != nil {
		return domain.Service{}, err
	}
	svc := domain.Service{ID: uuid.NewString(), Name: in.Name, Description: in.Description, Price: in.Price}
	if err := s.Services.Create(ctx, svc); err != nil {
		return domain.Service{}, apperr.Server("Server error", err)
	}
	return svc, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, in ServiceInput) error {
	if err := in.check(); err != nil {
		return err
	}
	n, err := s.Services.Update(ctx, domain.Service{ID: id, Name: in.Name, Description: in.Description, Price: in.Price})
	if err != nil {
		return apperr.Server("Server error", err)
	}
	if n == 0 {
		return apperr.NotFound("Service not found")
	}
	return nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	n, err := s.Services.Delete(ctx, id)
	if err != nil {
		return apperr.Server("Server error", err)
	}
	if n == 0 {
		return apperr.NotFound("Service not found")
	}
	return nil
}
