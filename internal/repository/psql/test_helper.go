package psql

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// TestDB represents a test database connection
type TestDB struct {
	Pool *pgxpool.Pool
}

// NewTestDB creates a new test database connection
func NewTestDB(t *testing.T, connString string) *TestDB {
	t.Helper()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err, "Failed to connect to test database")

	err = pool.Ping(ctx)
	require.NoError(t, err, "Failed to ping test database")

	return &TestDB{
		Pool: pool,
	}
}

// Setup initializes the test database with the cms schema
func (db *TestDB) Setup(t *testing.T) {
	t.Helper()
	require.NoError(t, EnsureSchema(context.Background(), db.Pool), "Failed to create cms schema")
}

// Cleanup removes all test data from the database
func (db *TestDB) Cleanup(t *testing.T) {
	t.Helper()
	_, err := db.Pool.Exec(context.Background(), "TRUNCATE cms.contents, cms.categories, cms.users CASCADE")
	require.NoError(t, err, "Failed to truncate cms tables")
}

// Close closes the database connection
func (db *TestDB) Close(t *testing.T) {
	t.Helper()
	db.Pool.Close()
}

// RunTest runs a test with database setup and cleanup.
// It is skipped unless TEST_DATABASE_URL is set.
func RunTest(t *testing.T, testFunc func(t *testing.T, db *TestDB)) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}
	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db := NewTestDB(t, connString)
	defer db.Close(t)

	db.Setup(t)

	t.Run("", func(t *testing.T) {
		db.Cleanup(t)
		testFunc(t, db)
	})
}
