package db_test

import (
	"path/filepath"
	"testing"

	"github.com/piringsehat/piring-cli/internal/db"
)

func TestApplyMigrationsIdempotentAndSeedsFoods(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "piring.db")
	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("first apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("second apply migrations: %v", err)
	}

	var migrationCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM schema_migrations`).Scan(&migrationCount); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if migrationCount != 2 {
		t.Fatalf("expected 2 migration versions, got %d", migrationCount)
	}

	var foodCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM foods`).Scan(&foodCount); err != nil {
		t.Fatalf("count seeded foods: %v", err)
	}
	if foodCount != 10 {
		t.Fatalf("expected 10 seeded foods, got %d", foodCount)
	}

	for _, table := range []string{"users", "foods", "food_logs"} {
		var n int
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n); err != nil {
			t.Fatalf("check table %s: %v", table, err)
		}
		if n != 1 {
			t.Fatalf("expected table %s to exist", table)
		}
	}
}
