package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/viewtouch/settle-api/internal/config"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/domain/enum"
	"github.com/viewtouch/settle-api/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database driver
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "sqlite":
		return NewSQLiteDB(cfg)
	case "postgres", "":
		return NewPostgresDB(cfg)
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

func gormConfig(cfg *config.DatabaseConfig) *gorm.Config {
	level := logger.Warn
	if cfg.LogSQL {
		level = logger.Info
	}
	return &gorm.Config{
		Logger: logger.Default.LogMode(level),
	}
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Staff
		&entity.Employee{},

		// Checks
		&entity.Check{},
		&entity.SubCheck{},
		&entity.Order{},
		&entity.Payment{},

		// Configuration
		&entity.TaxSettings{},
		&entity.DiscountDefinition{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the tax settings row and the first manager when
// they do not exist yet
func SeedDefaultData(db *gorm.DB, cfg *config.Config) error {
	log.Println("Seeding default data...")

	var count int64
	if err := db.Model(&entity.TaxSettings{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count tax settings: %w", err)
	}
	if count == 0 {
		settings := DefaultTaxSettings(cfg)
		if err := db.Create(settings).Error; err != nil {
			return fmt.Errorf("failed to create tax settings: %w", err)
		}
		log.Printf("Default tax settings created (rounding %s)", settings.Rounding)
	}

	admin := cfg.Admin
	if admin.Code == "" || admin.PIN == "" {
		log.Println("Default data seeding completed")
		return nil
	}

	var existing entity.Employee
	err := db.Where("code = ?", admin.Code).First(&existing).Error
	switch {
	case err == nil:
		log.Printf("Manager %s already exists", admin.Code)
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := utils.HashPIN(admin.PIN)
		if err != nil {
			return fmt.Errorf("failed to hash manager PIN: %w", err)
		}
		manager := entity.Employee{
			Code:      admin.Code,
			FirstName: admin.FirstName,
			LastName:  admin.LastName,
			PIN:       hash,
			Role:      entity.RoleManager,
			Active:    true,
		}
		if err := db.Create(&manager).Error; err != nil {
			return fmt.Errorf("failed to create manager: %w", err)
		}
		log.Printf("Manager created: %s", admin.Code)
	default:
		return fmt.Errorf("failed to look up manager: %w", err)
	}

	log.Println("Default data seeding completed")
	return nil
}

// DefaultTaxSettings builds the first settings row from SETTLE_* values
func DefaultTaxSettings(cfg *config.Config) *entity.TaxSettings {
	s := cfg.Settle
	return &entity.TaxSettings{
		StoreName:           cfg.Printer.StoreName,
		FoodRate:            s.FoodRate,
		AlcoholRate:         s.AlcoholRate,
		RoomRate:            s.RoomRate,
		MerchandiseRate:     s.MerchandiseRate,
		GSTRate:             s.GSTRate,
		PSTRate:             s.PSTRate,
		HSTRate:             s.HSTRate,
		QSTRate:             s.QSTRate,
		VATRate:             s.VATRate,
		Rounding:            enum.ParseRoundingPolicy(s.Rounding),
		TakeoutFoodExempt:   s.TakeoutFoodExempt,
		AlcoholDiscountable: s.AlcoholDiscountable,
		NewQSTMethod:        s.NewQSTMethod,
		PSTExemptUnder:      s.PSTExemptUnder,
		ChangeForCredit:     s.ChangeForCredit,
		ChangeForRoom:       s.ChangeForRoom,
		ChangeForCheck:      s.ChangeForCheck,
		ChangeForGift:       s.ChangeForGift,
		TipCaptureTenders:   s.TipCaptureTenders,
	}
}
