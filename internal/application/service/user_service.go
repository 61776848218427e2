package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mithaas/sweetshop-api/internal/domain/entity"
	"github.com/mithaas/sweetshop-api/internal/domain/enum"
	"github.com/mithaas/sweetshop-api/internal/domain/repository"
	"github.com/mithaas/sweetshop-api/pkg/apperror"
	"github.com/mithaas/sweetshop-api/pkg/utils"
)

// UserService handles staff account management. Only admins reach these
// operations; the middleware enforces that.
type UserService struct {
	userRepo   repository.UserRepository
	branchRepo repository.BranchRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, branchRepo repository.BranchRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		branchRepo: branchRepo,
	}
}

// UserInput represents the create/update user input
type UserInput struct {
	Username   string
	FullName   string
	Password   string
	Role       enum.Role
	BranchCode string
}

// CreateUser creates a staff or admin account. Staff accounts must name an
// existing branch; admin accounts carry no branch.
func (s *UserService) CreateUser(ctx context.Context, input *UserInput) (*entity.User, error) {
	if err := s.validate(ctx, input, true); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already taken")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Username:   strings.TrimSpace(input.Username),
		FullName:   strings.TrimSpace(input.FullName),
		Password:   hashed,
		Role:       input.Role,
		BranchCode: branchCodeFor(input),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser updates an account. An empty password leaves the current one
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, input *UserInput) (*entity.User, error) {
	if err := s.validate(ctx, input, false); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if username := strings.TrimSpace(input.Username); username != "" && username != user.Username {
		other, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, apperror.NewConflictError("Username already taken")
		}
		user.Username = username
	}
	user.FullName = strings.TrimSpace(input.FullName)
	user.Role = input.Role
	user.BranchCode = branchCodeFor(input)

	if input.Password != "" {
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListUsers lists all accounts
func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.userRepo.List(ctx)
}

// DeleteUser removes an account
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	return s.userRepo.Delete(ctx, id)
}

func (s *UserService) validate(ctx context.Context, input *UserInput, requirePassword bool) error {
	if strings.TrimSpace(input.Username) == "" {
		return apperror.NewBadRequestError("Username is required")
	}
	if requirePassword && input.Password == "" {
		return apperror.NewBadRequestError("Password is required")
	}
	if !input.Role.IsValid() {
		return apperror.NewBadRequestError("Role must be admin or staff")
	}
	if input.Role == enum.RoleStaff {
		code := strings.ToUpper(strings.TrimSpace(input.BranchCode))
		if code == "" {
			return apperror.NewBadRequestError("Staff accounts need a branch")
		}
		branch, err := s.branchRepo.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if branch == nil {
			return apperror.NewNotFoundError("Branch")
		}
	}
	return nil
}

func branchCodeFor(input *UserInput) string {
	if input.Role == enum.RoleAdmin {
		return ""
	}
	return strings.ToUpper(strings.TrimSpace(input.BranchCode))
}
