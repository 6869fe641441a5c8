package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT,
  username TEXT,
  daily_calorie_target REAL CHECK(daily_calorie_target >= 0),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS foods (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  calories REAL NOT NULL DEFAULT 0 CHECK(calories >= 0),
  protein_g REAL NOT NULL DEFAULT 0 CHECK(protein_g >= 0),
  carbs_g REAL NOT NULL DEFAULT 0 CHECK(carbs_g >= 0),
  fat_g REAL NOT NULL DEFAULT 0 CHECK(fat_g >= 0)
);

CREATE INDEX IF NOT EXISTS idx_foods_name ON foods(name COLLATE NOCASE);

CREATE TABLE IF NOT EXISTS food_logs (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  food_id TEXT,
  food_name_custom TEXT,
  calories REAL NOT NULL CHECK(calories >= 0),
  portion REAL NOT NULL DEFAULT 1 CHECK(portion > 0),
  date TEXT NOT NULL,
  logged_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(food_id) REFERENCES foods(id)
);

CREATE INDEX IF NOT EXISTS idx_food_logs_user_date ON food_logs(user_id, date);
`,
	},
	{
		version: 2,
		name:    "seed_foods",
		sql: `
INSERT OR IGNORE INTO foods(id, name, calories, protein_g, carbs_g, fat_g) VALUES
  ('f-nasi-goreng', 'Nasi Goreng', 350, 9, 45, 14),
  ('f-nasi-putih', 'Nasi Putih', 204, 4.2, 44.5, 0.4),
  ('f-telur-rebus', 'Telur Rebus', 77, 6.3, 0.6, 5.3),
  ('f-ayam-goreng', 'Ayam Goreng', 260, 21.9, 10.8, 14.6),
  ('f-soto-ayam', 'Soto Ayam', 312, 24, 19.6, 14.9),
  ('f-gado-gado', 'Gado-Gado', 293, 11.8, 20.8, 18.9),
  ('f-tempe-goreng', 'Tempe Goreng', 110, 10, 5, 6),
  ('f-rendang', 'Rendang', 285, 22, 7, 19),
  ('f-bakso', 'Bakso', 218, 10.3, 25.2, 8.5),
  ('f-mie-goreng', 'Mie Goreng', 322, 9.3, 43.9, 11.8);
`,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	return nil
}
