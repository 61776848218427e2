package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mithaas/sweetshop-api/internal/domain/entity"
	"github.com/mithaas/sweetshop-api/internal/domain/repository"
	"github.com/mithaas/sweetshop-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ItemService handles the shared item catalog
type ItemService struct {
	itemRepo repository.ItemRepository
}

// NewItemService creates a new item service
func NewItemService(itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{itemRepo: itemRepo}
}

// ItemInput represents the create/update item input
type ItemInput struct {
	Name      string
	Unit      string
	UnitPrice decimal.Decimal
}

// CreateItem adds a catalog entry
func (s *ItemService) CreateItem(ctx context.Context, input *ItemInput) (*entity.Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewBadRequestError("Item name is required")
	}
	if input.UnitPrice.IsNegative() {
		return nil, apperror.NewBadRequestError("Unit price cannot be negative")
	}

	existing, err := s.itemRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Item already exists")
	}

	item := &entity.Item{
		Name:      name,
		Unit:      unitOrDefault(input.Unit),
		UnitPrice: input.UnitPrice,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem updates a catalog entry
func (s *ItemService) UpdateItem(ctx context.Context, id uuid.UUID, input *ItemInput) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	if input.UnitPrice.IsNegative() {
		return nil, apperror.NewBadRequestError("Unit price cannot be negative")
	}

	if name := strings.TrimSpace(input.Name); name != "" && name != item.Name {
		other, err := s.itemRepo.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != item.ID {
			return nil, apperror.NewConflictError("Item already exists")
		}
		item.Name = name
	}
	item.Unit = unitOrDefault(input.Unit)
	item.UnitPrice = input.UnitPrice

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem retrieves an item by ID
func (s *ItemService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems lists catalog entries, optionally filtered by a name search
func (s *ItemService) ListItems(ctx context.Context, search string) ([]entity.Item, error) {
	return s.itemRepo.List(ctx, strings.TrimSpace(search))
}

// DeleteItem removes a catalog entry. Orders keep their own copy of item
// names and prices, so existing orders are unaffected.
func (s *ItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Item")
	}
	return s.itemRepo.Delete(ctx, id)
}

func unitOrDefault(unit string) string {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return "kg"
	}
	return unit
}
