package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/macroprep/macroprep-cli/internal/db"
)

func TestApplyMigrationsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "macroprep.db")
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

	for _, table := range []string{"user_profile", "ingredients", "fridge", "logs", "recipes"} {
		var count int
		if err := sqldb.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&count); err != nil {
			t.Fatalf("check %s table: %v", table, err)
		}
		if count != 1 {
			t.Fatalf("expected %s table to exist", table)
		}
	}

	var sourceColCount int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM pragma_table_info('logs') WHERE name = 'source_batch_id'`).Scan(&sourceColCount); err != nil {
		t.Fatalf("check logs source_batch_id column: %v", err)
	}
	if sourceColCount != 1 {
		t.Fatalf("expected source_batch_id column in logs table")
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected db file to exist: %v", err)
	}
}

func TestFridgeRejectsCurrentAboveTotal(t *testing.T) {
	t.Parallel()

	sqldb, err := db.Open(filepath.Join(t.TempDir(), "macroprep.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	_, err = sqldb.Exec(`
INSERT INTO fridge(name, calories, protein_g, carbs_g, fat_g, total_mass_g, current_mass_g, created_at)
VALUES('chili', 120, 10, 8, 4, 100, 150, '2026-02-20T08:00:00Z')`)
	if err == nil {
		t.Fatalf("expected check constraint to reject current mass above total")
	}
	_, err = sqldb.Exec(`
INSERT INTO fridge(name, calories, protein_g, carbs_g, fat_g, total_mass_g, current_mass_g, created_at)
VALUES('chili', 120, 10, 8, 4, 100, 0, '2026-02-20T08:00:00Z')`)
	if err == nil {
		t.Fatalf("expected check constraint to reject an empty batch")
	}
}
