package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/mithaas/sweetshop-api/internal/domain/entity"
	domainRepo "github.com/mithaas/sweetshop-api/internal/domain/repository"
	"gorm.io/gorm"
)

type occasionRepository struct {
	db *gorm.DB
}

// NewOccasionRepository creates a new occasion repository
func NewOccasionRepository(db *gorm.DB) domainRepo.OccasionRepository {
	return &occasionRepository{db: db}
}

func (r *occasionRepository) Create(ctx context.Context, occasion *entity.Occasion) error {
	return r.db.WithContext(ctx).Create(occasion).Error
}

func (r *occasionRepository) Update(ctx context.Context, occasion *entity.Occasion) error {
	return r.db.WithContext(ctx).Save(occasion).Error
}

func (r *occasionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Occasion{}, "id = ?", id).Error
}

func (r *occasionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Occasion, error) {
	var occasion entity.Occasion
	err := r.db.WithContext(ctx).First(&occasion, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &occasion, err
}

func (r *occasionRepository) GetByCode(ctx context.Context, code string) (*entity.Occasion, error) {
	var occasion entity.Occasion
	err := r.db.WithContext(ctx).First(&occasion, "UPPER(code) = ?", strings.ToUpper(code)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &occasion, err
}

func (r *occasionRepository) List(ctx context.Context) ([]entity.Occasion, error) {
	var occasions []entity.Occasion
	err := r.db.WithContext(ctx).Order("code ASC").Find(&occasions).Error
	return occasions, err
}
