package database

import (
	"context"
	"os"
	"testing"
	"time"
)

// TestDatabaseURLEnv names the DSN integration tests run against.
const TestDatabaseURLEnv = "HOOPS_EDGE_TEST_DATABASE_URL"

// SetupTestDB connects to the integration database and applies the schema, skipping
// the test when no database is configured. The pool is closed on cleanup.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv(TestDatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping integration test", TestDatabaseURLEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}
	if err := db.ApplySchema(ctx); err != nil {
		db.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}
	t.Cleanup(db.Close)
	return db
}

// TruncateAll empties every table the schema owns.
func TruncateAll(t *testing.T, db *DB) {
	t.Helper()
	_, err := db.pool.Exec(context.Background(),
		`TRUNCATE player_gl, team_season_stats, props, player_stat_correlation, report_runs`)
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}
