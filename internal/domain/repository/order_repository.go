package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mithaas/sweetshop-api/internal/domain/entity"
	"github.com/mithaas/sweetshop-api/internal/domain/enum"
	"github.com/mithaas/sweetshop-api/pkg/pagination"
)

// OrderFilterParams defines filtering options for listing orders
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	IsDraft    *bool
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// OrderRepository defines order persistence. Every method routes to the
// branch's own order table, derived from the branch code.
type OrderRepository interface {
	Create(ctx context.Context, branchCode string, order *entity.Order) error
	Update(ctx context.Context, branchCode string, order *entity.Order) error
	Delete(ctx context.Context, branchCode string, id uuid.UUID) error
	GetByID(ctx context.Context, branchCode string, id uuid.UUID) (*entity.Order, error)
	GetByOrderNumber(ctx context.Context, branchCode, orderNumber string) (*entity.Order, error)
	ListNumbersByPrefix(ctx context.Context, branchCode, prefix string) ([]string, error)
	List(ctx context.Context, branchCode string, params *OrderFilterParams) ([]entity.Order, int64, error)
}
