package database

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewtouch/settle-api/internal/config"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedDefaultData(t *testing.T) {
	db, err := Open(&config.DatabaseConfig{Driver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	cfg := &config.Config{
		Settle: config.SettleConfig{
			FoodRate: decimal.RequireFromString("0.0825"),
			Rounding: "DropPennies",
		},
		Admin: config.AdminConfig{Code: "100", PIN: "4321", FirstName: "Robin"},
	}
	require.NoError(t, SeedDefaultData(db, cfg))
	require.NoError(t, SeedDefaultData(db, cfg), "seeding twice is harmless")

	var settings []entity.TaxSettings
	require.NoError(t, db.Find(&settings).Error)
	require.Len(t, settings, 1)
	assert.True(t, settings[0].FoodRate.Equal(decimal.RequireFromString("0.0825")))
	assert.Equal(t, enum.RoundingDropPennies, settings[0].Rounding)

	var manager entity.Employee
	require.NoError(t, db.Where("code = ?", "100").First(&manager).Error)
	assert.True(t, manager.IsManager())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(manager.PIN), []byte("4321")))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
