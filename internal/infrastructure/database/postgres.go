package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/viewtouch/settle-api/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Pool sizes for the store server; a handful of terminals share it
const (
	postgresMaxIdleConns    = 5
	postgresMaxOpenConns    = 25
	postgresConnMaxLifetime = 30 * time.Minute
	postgresPingTimeout     = 5 * time.Second
)

// NewPostgresDB connects to the store's PostgreSQL server and checks it answers
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), gormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres %s:%s/%s: %w", cfg.Host, cfg.Port, cfg.Name, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(postgresMaxIdleConns)
	sqlDB.SetMaxOpenConns(postgresMaxOpenConns)
	sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), postgresPingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("postgres %s:%s did not answer: %w", cfg.Host, cfg.Port, err)
	}

	log.Printf("Connected to PostgreSQL database %s on %s:%s", cfg.Name, cfg.Host, cfg.Port)
	return db, nil
}
