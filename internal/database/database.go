// Package database opens Bun connections for the drivers the module
// supports.
package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Config selects the storage backend.
type Config struct {
	// Driver is "sqlite3" or "postgres".
	Driver string
	// DSN is the driver-specific connection string.
	DSN string
}

// Open connects to the configured database and wraps it with the matching
// Bun dialect.
func Open(cfg Config) (*bun.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database: dsn is required")
	}

	switch driver {
	case "", "sqlite3", "sqlite":
		sqlDB, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("database: open sqlite: %w", err)
		}
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres", "pg":
		sqlDB, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("database: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", cfg.Driver)
	}
}
