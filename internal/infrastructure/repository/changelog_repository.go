package repository

import (
	"context"

	"github.com/mithaas/sweetshop-api/internal/domain/entity"
	domainRepo "github.com/mithaas/sweetshop-api/internal/domain/repository"
	"github.com/mithaas/sweetshop-api/pkg/pagination"
	"gorm.io/gorm"
)

type changelogRepository struct {
	db *gorm.DB
}

// NewChangelogRepository creates a new changelog repository
func NewChangelogRepository(db *gorm.DB) domainRepo.ChangelogRepository {
	return &changelogRepository{db: db}
}

func (r *changelogRepository) Append(ctx context.Context, entry *entity.ChangelogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *changelogRepository) List(ctx context.Context, branchCode string, params *pagination.PaginationParams) ([]entity.ChangelogEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.ChangelogEntry{})
	if branchCode != "" {
		query = query.Where("branch_code = ?", branchCode)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	var entries []entity.ChangelogEntry
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&entries).Error

	return entries, total, err
}
