package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mithaas/sweetshop-api/internal/domain/entity"
	"github.com/mithaas/sweetshop-api/internal/domain/repository"
	"github.com/mithaas/sweetshop-api/pkg/apperror"
)

// TableEnsurer provisions a branch's order table on first use.
// Satisfied by *repository.BranchTables.
type TableEnsurer interface {
	Ensure(branchCode string) (string, error)
}

// BranchService handles branch management
type BranchService struct {
	branchRepo repository.BranchRepository
	tables     TableEnsurer
}

// NewBranchService creates a new branch service
func NewBranchService(branchRepo repository.BranchRepository, tables TableEnsurer) *BranchService {
	return &BranchService{
		branchRepo: branchRepo,
		tables:     tables,
	}
}

// BranchInput represents the create/update branch input
type BranchInput struct {
	Code    string
	Name    string
	Address string
	Phone   string
}

// CreateBranch registers a branch and provisions its order table up front,
// so the first order save does not pay the migration cost.
func (s *BranchService) CreateBranch(ctx context.Context, input *BranchInput) (*entity.Branch, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" || strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewBadRequestError("Branch code and name are required")
	}

	existing, err := s.branchRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Branch code already exists")
	}

	branch := &entity.Branch{
		Code:    code,
		Name:    strings.TrimSpace(input.Name),
		Address: input.Address,
		Phone:   strings.TrimSpace(input.Phone),
	}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}

	if _, err := s.tables.Ensure(code); err != nil {
		return nil, err
	}
	return branch, nil
}

// UpdateBranch updates a branch's details. The code is immutable: order
// tables and staff scoping hang off it.
func (s *BranchService) UpdateBranch(ctx context.Context, id uuid.UUID, input *BranchInput) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		branch.Name = name
	}
	branch.Address = input.Address
	branch.Phone = strings.TrimSpace(input.Phone)

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// GetBranch retrieves a branch by ID
func (s *BranchService) GetBranch(ctx context.Context, id uuid.UUID) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}
	return branch, nil
}

// GetBranchByCode retrieves a branch by its code
func (s *BranchService) GetBranchByCode(ctx context.Context, code string) (*entity.Branch, error) {
	branch, err := s.branchRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, apperror.NewNotFoundError("Branch")
	}
	return branch, nil
}

// ListBranches lists all branches
func (s *BranchService) ListBranches(ctx context.Context) ([]entity.Branch, error) {
	return s.branchRepo.List(ctx)
}

// DeleteBranch removes a branch. Its order table is left in place; the data
// outlives the branch record.
func (s *BranchService) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if branch == nil {
		return apperror.NewNotFoundError("Branch")
	}
	return s.branchRepo.Delete(ctx, id)
}
