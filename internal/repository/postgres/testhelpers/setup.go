package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/bikeshare-loader/internal/repository/postgres"
)

// TestDB holds two handles on the test database: DB goes through the pgx
// driver the repositories require, Admin through lib/pq for fixtures and cleanup.
type TestDB struct {
	DB     *sqlx.DB
	Admin  *sqlx.DB
	Logger *zap.Logger
}

// SetupTestDB connects to the database described by TEST_DB_* variables.
// The test is skipped when the database cannot be reached.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	host := getEnv("TEST_DB_HOST", "localhost")
	port := getEnv("TEST_DB_PORT", "5433")
	user := getEnv("TEST_DB_USER", "postgres")
	password := getEnv("TEST_DB_PASSWORD", "postgres")
	dbname := getEnv("TEST_DB_NAME", "bikeshare_test")
	sslmode := getEnv("TEST_DB_SSLMODE", "disable")

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	// Retry with exponential backoff to ride out a database that is still starting
	var admin *sqlx.DB
	var err error
	maxRetries := 3
	retryDelay := 250 * time.Millisecond

	for i := 0; i < maxRetries; i++ {
		admin, err = sqlx.Connect("postgres", connStr)
		if err == nil {
			break
		}

		if i < maxRetries-1 {
			t.Logf("Database not ready (attempt %d/%d), waiting %v...", i+1, maxRetries, retryDelay)
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}
	if err != nil {
		t.Skipf("test database unavailable at %s:%s: %v", host, port, err)
	}

	db, err := sqlx.Connect(postgres.DriverName, connStr)
	if err != nil {
		admin.Close()
		t.Fatalf("Failed to open pgx connection: %v", err)
	}

	return &TestDB{
		DB:     db,
		Admin:  admin,
		Logger: zap.NewNop(),
	}
}

// Close closes both connections
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
	if tdb.Admin != nil {
		tdb.Admin.Close()
	}
}

// Cleanup empties the pipeline tables, children first
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	tables := []string{
		"rides",
		"stations",
		"pipeline_loaded_files",
		"pipeline_checkpoints",
	}

	for _, table := range tables {
		_, err := tdb.Admin.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			// Ignore errors if table doesn't exist
			continue
		}
	}

	return nil
}

// getEnv gets environment variable or returns default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
