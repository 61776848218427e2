package repository

import (
	"context"

	"github.com/mithaas/sweetshop-api/internal/domain/entity"
	"github.com/mithaas/sweetshop-api/pkg/pagination"
)

// ChangelogRepository defines append-only changelog persistence
type ChangelogRepository interface {
	Append(ctx context.Context, entry *entity.ChangelogEntry) error
	List(ctx context.Context, branchCode string, params *pagination.PaginationParams) ([]entity.ChangelogEntry, int64, error)
}
