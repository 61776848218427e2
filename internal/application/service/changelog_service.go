package service

import (
	"context"
	"strings"

	"github.com/mithaas/sweetshop-api/internal/domain/entity"
	"github.com/mithaas/sweetshop-api/internal/domain/repository"
	"github.com/mithaas/sweetshop-api/pkg/pagination"
)

// ChangelogService exposes the order changelog for review
type ChangelogService struct {
	changelogRepo repository.ChangelogRepository
}

// NewChangelogService creates a new changelog service
func NewChangelogService(changelogRepo repository.ChangelogRepository) *ChangelogService {
	return &ChangelogService{changelogRepo: changelogRepo}
}

// ListEntries lists changelog entries for a branch, newest first
func (s *ChangelogService) ListEntries(ctx context.Context, branchCode string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.ChangelogEntry], error) {
	params.Validate()
	entries, total, err := s.changelogRepo.List(ctx, strings.ToUpper(strings.TrimSpace(branchCode)), params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(entries, pag), nil
}
