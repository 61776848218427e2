package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mithaas/sweetshop-api/internal/domain/entity"
)

// OccasionRepository defines occasion persistence operations
type OccasionRepository interface {
	Create(ctx context.Context, occasion *entity.Occasion) error
	Update(ctx context.Context, occasion *entity.Occasion) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Occasion, error)
	GetByCode(ctx context.Context, code string) (*entity.Occasion, error)
	List(ctx context.Context) ([]entity.Occasion, error)
}
