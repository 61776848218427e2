package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mithaas/sweetshop-api/internal/domain/entity"
)

// ItemRepository defines catalog item persistence operations
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	GetByName(ctx context.Context, name string) (*entity.Item, error)
	List(ctx context.Context, search string) ([]entity.Item, error)
}
