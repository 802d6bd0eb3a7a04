package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
	domainRepo "github.com/viewtouch/settle-api/internal/domain/repository"
	"gorm.io/gorm"
)

type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository creates a new discount definition repository
func NewDiscountRepository(db *gorm.DB) domainRepo.DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(ctx context.Context, d *entity.DiscountDefinition) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *discountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DiscountDefinition, error) {
	var d entity.DiscountDefinition
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &d, err
}

func (r *discountRepository) Update(ctx context.Context, d *entity.DiscountDefinition) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *discountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.DiscountDefinition{}, "id = ?", id).Error
}

func (r *discountRepository) List(ctx context.Context, tender *enum.TenderType, activeOnly bool) ([]entity.DiscountDefinition, error) {
	var defs []entity.DiscountDefinition
	query := r.db.WithContext(ctx).Model(&entity.DiscountDefinition{})
	if tender != nil {
		query = query.Where("tender = ?", *tender)
	}
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	err := query.Order("tender ASC, name ASC").Find(&defs).Error
	return defs, err
}
