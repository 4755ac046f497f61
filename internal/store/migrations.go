package store

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/holawaleh/dreamspacefrontend/migrations"
	"github.com/pressly/goose/v3"
)

// goose keeps its dialect and filesystem in package state.
var migrateMu sync.Mutex

// RunMigrations applies all pending database migrations using goose.
// It uses the embedded SQL files for the given dialect.
func RunMigrations(db *sql.DB, d Dialect) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	// Disable goose's default logging to avoid stdout noise
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect(d.gooseDialect()); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.Up(db, string(d)); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// MigrationVersion returns the current schema version.
func MigrationVersion(db *sql.DB, d Dialect) (int64, error) {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(d.gooseDialect()); err != nil {
		return 0, fmt.Errorf("set dialect: %w", err)
	}
	v, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("get version: %w", err)
	}
	return v, nil
}
