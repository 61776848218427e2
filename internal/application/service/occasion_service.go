package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mithaas/sweetshop-api/internal/domain/entity"
	"github.com/mithaas/sweetshop-api/internal/domain/repository"
	"github.com/mithaas/sweetshop-api/pkg/apperror"
)

// OccasionService handles the occasion list that feeds order-number prefixes
type OccasionService struct {
	occasionRepo repository.OccasionRepository
}

// NewOccasionService creates a new occasion service
func NewOccasionService(occasionRepo repository.OccasionRepository) *OccasionService {
	return &OccasionService{occasionRepo: occasionRepo}
}

// OccasionInput represents the create/update occasion input
type OccasionInput struct {
	Code string
	Name string
}

// CreateOccasion adds an occasion
func (s *OccasionService) CreateOccasion(ctx context.Context, input *OccasionInput) (*entity.Occasion, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" || strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewBadRequestError("Occasion code and name are required")
	}

	existing, err := s.occasionRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Occasion code already exists")
	}

	occasion := &entity.Occasion{
		Code: code,
		Name: strings.TrimSpace(input.Name),
	}
	if err := s.occasionRepo.Create(ctx, occasion); err != nil {
		return nil, err
	}
	return occasion, nil
}

// UpdateOccasion renames an occasion. The code is immutable: existing order
// numbers embed it.
func (s *OccasionService) UpdateOccasion(ctx context.Context, id uuid.UUID, input *OccasionInput) (*entity.Occasion, error) {
	occasion, err := s.occasionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if occasion == nil {
		return nil, apperror.NewNotFoundError("Occasion")
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		occasion.Name = name
	}
	if err := s.occasionRepo.Update(ctx, occasion); err != nil {
		return nil, err
	}
	return occasion, nil
}

// ListOccasions lists all occasions
func (s *OccasionService) ListOccasions(ctx context.Context) ([]entity.Occasion, error) {
	return s.occasionRepo.List(ctx)
}

// DeleteOccasion removes an occasion
func (s *OccasionService) DeleteOccasion(ctx context.Context, id uuid.UUID) error {
	occasion, err := s.occasionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if occasion == nil {
		return apperror.NewNotFoundError("Occasion")
	}
	return s.occasionRepo.Delete(ctx, id)
}
