package config

import (
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	Settle    SettleConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Driver     string // postgres or sqlite
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SSLMode    string
	Timezone   string
	SQLitePath string
	LogSQL     bool
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type PrinterConfig struct {
	Type       string // usb, network or none
	DevicePath string
	Address    string
	Width      int
	StoreName  string
	Address1   string
	Phone      string
}

// SettleConfig seeds the tax settings row the first time the database is
// prepared; afterwards settings are managed through the API
type SettleConfig struct {
	FoodRate            decimal.Decimal
	AlcoholRate         decimal.Decimal
	RoomRate            decimal.Decimal
	MerchandiseRate     decimal.Decimal
	GSTRate             decimal.Decimal
	PSTRate             decimal.Decimal
	HSTRate             decimal.Decimal
	QSTRate             decimal.Decimal
	VATRate             decimal.Decimal
	Rounding            string
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

// AdminConfig is the manager account created on first start
type AdminConfig struct {
	Code      string
	PIN       string
	FirstName string
	LastName  string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(viper.GetString("DB_DRIVER")),
			Host:       viper.GetString("DB_HOST"),
			Port:       viper.GetString("DB_PORT"),
			Name:       viper.GetString("DB_NAME"),
			User:       viper.GetString("DB_USER"),
			Password:   viper.GetString("DB_PASSWORD"),
			SSLMode:    viper.GetString("DB_SSL_MODE"),
			Timezone:   viper.GetString("DB_TIMEZONE"),
			SQLitePath: viper.GetString("SQLITE_PATH"),
			LogSQL:     viper.GetBool("DB_LOG_SQL"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Printer: PrinterConfig{
			Type:       viper.GetString("PRINTER_TYPE"),
			DevicePath: viper.GetString("PRINTER_DEVICE_PATH"),
			Address:    viper.GetString("PRINTER_ADDRESS"),
			Width:      viper.GetInt("PRINTER_WIDTH"),
			StoreName:  viper.GetString("PRINTER_STORE_NAME"),
			Address1:   viper.GetString("PRINTER_STORE_ADDRESS"),
			Phone:      viper.GetString("PRINTER_STORE_PHONE"),
		},
		Settle: SettleConfig{
			FoodRate:            rate("SETTLE_FOOD_RATE"),
			AlcoholRate:         rate("SETTLE_ALCOHOL_RATE"),
			RoomRate:            rate("SETTLE_ROOM_RATE"),
			MerchandiseRate:     rate("SETTLE_MERCHANDISE_RATE"),
			GSTRate:             rate("SETTLE_GST_RATE"),
			PSTRate:             rate("SETTLE_PST_RATE"),
			HSTRate:             rate("SETTLE_HST_RATE"),
			QSTRate:             rate("SETTLE_QST_RATE"),
			VATRate:             rate("SETTLE_VAT_RATE"),
			Rounding:            viper.GetString("SETTLE_ROUNDING"),
			TakeoutFoodExempt:   viper.GetBool("SETTLE_TAKEOUT_FOOD_EXEMPT"),
			AlcoholDiscountable: viper.GetBool("SETTLE_ALCOHOL_DISCOUNTABLE"),
			NewQSTMethod:        viper.GetBool("SETTLE_NEW_QST_METHOD"),
			PSTExemptUnder:      viper.GetInt64("SETTLE_PST_EXEMPT_UNDER"),
			ChangeForCredit:     viper.GetBool("SETTLE_CHANGE_FOR_CREDIT"),
			ChangeForRoom:       viper.GetBool("SETTLE_CHANGE_FOR_ROOM"),
			ChangeForCheck:      viper.GetBool("SETTLE_CHANGE_FOR_CHECK"),
			ChangeForGift:       viper.GetBool("SETTLE_CHANGE_FOR_GIFT"),
			TipCaptureTenders:   viper.GetString("SETTLE_TIP_CAPTURE_TENDERS"),
		},
		Admin: AdminConfig{
			Code:      viper.GetString("ADMIN_CODE"),
			PIN:       viper.GetString("ADMIN_PIN"),
			FirstName: viper.GetString("ADMIN_FIRST_NAME"),
			LastName:  viper.GetString("ADMIN_LAST_NAME"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "settle-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "settle")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("SQLITE_PATH", "settle.db")
	viper.SetDefault("DB_LOG_SQL", false)
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 300)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_WIDTH", 42)
	viper.SetDefault("PRINTER_STORE_NAME", "ViewTouch")
	viper.SetDefault("SETTLE_ROUNDING", "None")
	viper.SetDefault("SETTLE_NEW_QST_METHOD", true)
	viper.SetDefault("ADMIN_FIRST_NAME", "Manager")
}

// rate reads a fractional tax rate; malformed values fall back to zero
func rate(key string) decimal.Decimal {
	raw := strings.TrimSpace(viper.GetString(key))
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("Warning: invalid %s %q, using 0: %v", key, raw, err)
		return decimal.Zero
	}
	return d
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
