package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
	"github.com/viewtouch/settle-api/internal/domain/repository"
	"github.com/viewtouch/settle-api/internal/domain/settlement"
	"github.com/viewtouch/settle-api/pkg/apperror"
)

// SettingsService handles the store's tax and rounding settings
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetTaxSettings returns the current tax settings
func (s *SettingsService) GetTaxSettings(ctx context.Context) (*entity.TaxSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, apperror.ErrMissingTaxConfig
	}
	return settings, nil
}

// UpdateTaxSettingsInput represents the input for updating tax settings
type UpdateTaxSettingsInput struct {
	StoreName           string
	FoodRate            decimal.Decimal
	AlcoholRate         decimal.Decimal
	RoomRate            decimal.Decimal
	MerchandiseRate     decimal.Decimal
	GSTRate             decimal.Decimal
	PSTRate             decimal.Decimal
	HSTRate             decimal.Decimal
	QSTRate             decimal.Decimal
	VATRate             decimal.Decimal
	Rounding            enum.RoundingPolicy
	TakeoutFoodExempt   bool
	AlcoholDiscountable bool
	NewQSTMethod        bool
	PSTExemptUnder      int64
	ChangeForCredit     bool
	ChangeForRoom       bool
	ChangeForCheck      bool
	ChangeForGift       bool
	TipCaptureTenders   string
}

// UpdateTaxSettings replaces the tax settings. Subchecks already open keep
// the QST method they were created with.
func (s *SettingsService) UpdateTaxSettings(ctx context.Context, input *UpdateTaxSettingsInput) (*entity.TaxSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	// If no settings exist, create new
	if settings == nil {
		settings = &entity.TaxSettings{}
	}

	settings.StoreName = input.StoreName
	settings.FoodRate = input.FoodRate
	settings.AlcoholRate = input.AlcoholRate
	settings.RoomRate = input.RoomRate
	settings.MerchandiseRate = input.MerchandiseRate
	settings.GSTRate = input.GSTRate
	settings.PSTRate = input.PSTRate
	settings.HSTRate = input.HSTRate
	settings.QSTRate = input.QSTRate
	settings.VATRate = input.VATRate
	settings.Rounding = input.Rounding
	settings.TakeoutFoodExempt = input.TakeoutFoodExempt
	settings.AlcoholDiscountable = input.AlcoholDiscountable
	settings.NewQSTMethod = input.NewQSTMethod
	settings.PSTExemptUnder = input.PSTExemptUnder
	settings.ChangeForCredit = input.ChangeForCredit
	settings.ChangeForRoom = input.ChangeForRoom
	settings.ChangeForCheck = input.ChangeForCheck
	settings.ChangeForGift = input.ChangeForGift
	settings.TipCaptureTenders = input.TipCaptureTenders

	if _, err := settlement.ConfigFromSettings(settings); err != nil {
		if errors.Is(err, settlement.ErrInvalidRate) {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "rates", Message: err.Error()}})
		}
		return nil, err
	}
	if settings.PSTExemptUnder < 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "pst_exempt_under", Message: "must not be negative"}})
	}

	if settings.ID == uuid.Nil {
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	} else {
		if err := s.settingsRepo.Update(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}
