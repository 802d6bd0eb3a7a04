package repository

import (
	"context"
	"errors"

	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the oldest settings row
func (r *settingsRepository) Get(ctx context.Context) (*entity.TaxSettings, error) {
	var settings entity.TaxSettings
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Create stores a new settings row
func (r *settingsRepository) Create(ctx context.Context, settings *entity.TaxSettings) error {
	return r.db.WithContext(ctx).Create(settings).Error
}

// Update saves every field of the settings row
func (r *settingsRepository) Update(ctx context.Context, settings *entity.TaxSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
