package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewtouch/settle-api/internal/domain/enum"
	"github.com/viewtouch/settle-api/pkg/apperror"
)

func TestSettingsService_GetMissing(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.settings.GetTaxSettings(context.Background())
	assert.ErrorIs(t, err, apperror.ErrMissingTaxConfig)
}

func TestSettingsService_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	input := &UpdateTaxSettingsInput{
		StoreName:         "Harbor Grill",
		FoodRate:          decimal.RequireFromString("0.07"),
		GSTRate:           decimal.RequireFromString("0.05"),
		Rounding:          enum.RoundingDropPennies,
		TipCaptureTenders: "CreditCard",
	}
	created, err := f.settings.UpdateTaxSettings(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "Harbor Grill", created.StoreName)

	input.FoodRate = decimal.RequireFromString("0.08")
	updated, err := f.settings.UpdateTaxSettings(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, err := f.settings.GetTaxSettings(ctx)
	require.NoError(t, err)
	assert.True(t, got.FoodRate.Equal(decimal.RequireFromString("0.08")))
	assert.Equal(t, enum.RoundingDropPennies, got.Rounding)
}

func TestSettingsService_RejectsBadRates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	_, err := f.settings.UpdateTaxSettings(ctx, &UpdateTaxSettingsInput{FoodRate: decimal.RequireFromString("8.25")})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	_, err = f.settings.UpdateTaxSettings(ctx, &UpdateTaxSettingsInput{PSTExemptUnder: -1})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	got, err := f.settings.GetTaxSettings(ctx)
	require.NoError(t, err)
	assert.True(t, got.FoodRate.Equal(decimal.RequireFromString("0.10")), "rejected updates are not stored")
}
