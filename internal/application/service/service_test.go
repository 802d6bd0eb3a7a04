package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/viewtouch/settle-api/internal/config"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/infrastructure/database"
	infraRepo "github.com/viewtouch/settle-api/internal/infrastructure/repository"
	"github.com/viewtouch/settle-api/pkg/apperror"
	"github.com/viewtouch/settle-api/pkg/printer"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	checks    *CheckService
	settings  *SettingsService
	discounts *DiscountService
	printer   *printer.Memory
	receipts  *PrinterService
}

func newFixture(t *testing.T, withSettings bool) *fixture {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	settingsRepo := infraRepo.NewSettingsRepository(db)
	discountRepo := infraRepo.NewDiscountRepository(db)
	employeeRepo := infraRepo.NewEmployeeRepository(db)

	if withSettings {
		require.NoError(t, settingsRepo.Create(context.Background(), &entity.TaxSettings{
			StoreName:    "Corner Bistro",
			FoodRate:     decimal.RequireFromString("0.10"),
			AlcoholRate:  decimal.RequireFromString("0.10"),
			NewQSTMethod: true,
		}))
	}

	checks := NewCheckService(infraRepo.NewCheckRepository(db), settingsRepo, discountRepo)
	mem := printer.NewMemory()
	return &fixture{
		db:        db,
		checks:    checks,
		settings:  NewSettingsService(settingsRepo),
		discounts: NewDiscountService(discountRepo),
		printer:   mem,
		receipts:  NewPrinterService(mem, checks, employeeRepo, entity.ReceiptHeader{StoreName: "Corner Bistro"}, 32),
	}
}

func requireAppError(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperror.IsAppError(err), "expected AppError, got %v", err)
	require.Equal(t, code, apperror.GetAppError(err).Code, err.Error())
}
