package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mithaas/sweetshop-api/internal/domain/entity"
	domainRepo "github.com/mithaas/sweetshop-api/internal/domain/repository"
	"gorm.io/gorm"
)

type orderRepository struct {
	db     *gorm.DB
	tables *BranchTables
}

// NewOrderRepository creates a new order repository routing every query to
// the branch's own order table.
func NewOrderRepository(db *gorm.DB, tables *BranchTables) domainRepo.OrderRepository {
	return &orderRepository{db: db, tables: tables}
}

func (r *orderRepository) table(ctx context.Context, branchCode string) (*gorm.DB, error) {
	name, err := r.tables.Ensure(branchCode)
	if err != nil {
		return nil, err
	}
	return r.db.WithContext(ctx).Table(name), nil
}

func (r *orderRepository) Create(ctx context.Context, branchCode string, order *entity.Order) error {
	tx, err := r.table(ctx, branchCode)
	if err != nil {
		return err
	}
	return tx.Create(order).Error
}

func (r *orderRepository) Update(ctx context.Context, branchCode string, order *entity.Order) error {
	tx, err := r.table(ctx, branchCode)
	if err != nil {
		return err
	}
	return tx.Save(order).Error
}

func (r *orderRepository) Delete(ctx context.Context, branchCode string, id uuid.UUID) error {
	tx, err := r.table(ctx, branchCode)
	if err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&entity.Order{}).Error
}

func (r *orderRepository) GetByID(ctx context.Context, branchCode string, id uuid.UUID) (*entity.Order, error) {
	tx, err := r.table(ctx, branchCode)
	if err != nil {
		return nil, err
	}
	var order entity.Order
	err = tx.Where("id = ? AND deleted_at IS NULL", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetByOrderNumber(ctx context.Context, branchCode, orderNumber string) (*entity.Order, error) {
	tx, err := r.table(ctx, branchCode)
	if err != nil {
		return nil, err
	}
	var order entity.Order
	err = tx.Where("order_number = ? AND deleted_at IS NULL", orderNumber).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) ListNumbersByPrefix(ctx context.Context, branchCode, prefix string) ([]string, error) {
	tx, err := r.table(ctx, branchCode)
	if err != nil {
		return nil, err
	}
	var numbers []string
	err = tx.Where("order_number LIKE ? AND deleted_at IS NULL", prefix+"%").
		Pluck("order_number", &numbers).Error
	return numbers, err
}

func (r *orderRepository) List(ctx context.Context, branchCode string, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	tx, err := r.table(ctx, branchCode)
	if err != nil {
		return nil, 0, err
	}

	query := tx.Where("deleted_at IS NULL")

	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where(
			"order_number ILIKE ? OR customer_name ILIKE ? OR customer_phone ILIKE ?",
			like, like, like,
		)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.IsDraft != nil {
		query = query.Where("is_draft = ?", *params.IsDraft)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	sortOrder := "DESC"
	switch params.SortBy {
	case "order_number", "customer_name", "grand_total", "created_at":
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	var orders []entity.Order
	err = query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}
