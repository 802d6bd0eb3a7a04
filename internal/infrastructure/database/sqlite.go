package database

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"github.com/viewtouch/settle-api/internal/config"
	"gorm.io/gorm"
)

// NewSQLiteDB opens the terminal-local SQLite database. ":memory:" gives a
// private in-memory database held on a single connection.
func NewSQLiteDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	path := cfg.SQLitePath
	if path == "" {
		path = ":memory:"
	}

	dsn := path
	if path != ":memory:" {
		dsn += "?_pragma=busy_timeout(5000)"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	// SQLite serializes writers; one connection also keeps :memory: shared
	sqlDB.SetMaxOpenConns(1)

	log.Printf("Opened SQLite database at %s", path)
	return db, nil
}
