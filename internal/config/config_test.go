package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadReadsSettleEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SETTLE_FOOD_RATE", "0.0825")
	t.Setenv("SETTLE_QST_RATE", "not-a-rate")
	t.Setenv("SETTLE_ROUNDING", "DropPennies")
	t.Setenv("SETTLE_PST_EXEMPT_UNDER", "400")
	t.Cleanup(viper.Reset)

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "0.0825", cfg.Settle.FoodRate.String())
	assert.True(t, cfg.Settle.QSTRate.IsZero())
	assert.Equal(t, "DropPennies", cfg.Settle.Rounding)
	assert.Equal(t, int64(400), cfg.Settle.PSTExemptUnder)
	assert.True(t, cfg.Settle.NewQSTMethod)
	assert.Equal(t, "none", cfg.Printer.Type)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "settle", Port: "5432", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=settle port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}
