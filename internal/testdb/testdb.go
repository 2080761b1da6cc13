// Package testdb provides database helpers for integration tests. Tests
// that need a real database call New, which skips unless DATABASE_URL is
// set, so the unit suite stays hermetic.
package testdb

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"

	"github.com/akarpov/storefront-api/migrations"
)

var (
	migrateOnce sync.Once
	migrateErr  error
)

// IsIntegrationEnvironment reports whether a test database is configured.
func IsIntegrationEnvironment() bool {
	return os.Getenv("DATABASE_URL") != ""
}

// New opens a connection to the database named by DATABASE_URL and brings
// its schema up to date with the embedded migrations. The connection is
// closed when the test finishes. Skips the test when no database is
// configured.
func New(t *testing.T) *sql.DB {
	t.Helper()

	if !IsIntegrationEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	db, err := sql.Open("pgx", os.Getenv("DATABASE_URL"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	// Migrations run once per test binary; every later New call reuses the
	// migrated schema.
	migrateOnce.Do(func() {
		migrateErr = applyMigrations(db)
	})
	if migrateErr != nil {
		t.Fatalf("failed to apply migrations: %v", migrateErr)
	}

	return db
}

// Reset truncates all entity tables so the test starts from a clean slate.
func Reset(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec("TRUNCATE TABLE users, orders, students CASCADE"); err != nil {
		t.Fatalf("failed to reset test data: %v", err)
	}
}

func applyMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}
