// Package testdb opens a migrated in-memory SQLite database for repository
// and end-to-end tests.
package testdb

import (
	"database/sql"
	"testing"

	"go-hrdash/internal/migration"
	"go-hrdash/internal/shared/connection"

	"gorm.io/gorm"
)

// New returns a fresh schema per call; it is closed when t finishes.
func New(t testing.TB) (*gorm.DB, *sql.DB) {
	t.Helper()

	gormDB, err := connection.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := migration.Run(gormDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gormDB, sqlDB
}
