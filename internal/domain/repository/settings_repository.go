package repository

import (
	"context"

	"github.com/viewtouch/settle-api/internal/domain/entity"
)

// SettingsRepository defines the interface for the store's tax settings row
type SettingsRepository interface {
	// Get returns the current settings, or nil when none are stored
	Get(ctx context.Context) (*entity.TaxSettings, error)
	Create(ctx context.Context, settings *entity.TaxSettings) error
	Update(ctx context.Context, settings *entity.TaxSettings) error
}
