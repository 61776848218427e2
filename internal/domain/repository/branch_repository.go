package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mithaas/sweetshop-api/internal/domain/entity"
)

// BranchRepository defines branch persistence operations
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	Update(ctx context.Context, branch *entity.Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Branch, error)
	GetByCode(ctx context.Context, code string) (*entity.Branch, error)
	List(ctx context.Context) ([]entity.Branch, error)
}
