package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "engine_state: scalar score and timestamp fields",
		SQL: `
CREATE TABLE engine_state (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`,
	},
	{
		Version:     2,
		Description: "activity_flags: daily completion flags and counters",
		SQL: `
CREATE TABLE activity_flags (
    kind        TEXT PRIMARY KEY,
    done_today  INTEGER NOT NULL DEFAULT 0,
    count_today INTEGER NOT NULL DEFAULT 0
);
`,
	},
	{
		Version:     3,
		Description: "ledger: append-only audit log of score deltas",
		SQL: `
CREATE TABLE ledger (
    id         INTEGER PRIMARY KEY,
    amount     REAL NOT NULL,
    kind       TEXT NOT NULL CHECK (kind IN ('gain', 'loss')),
    cause      TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX idx_ledger_created ON ledger(created_at DESC);
`,
	},
	{
		Version:     4,
		Description: "history: one score snapshot per calendar day",
		SQL: `
CREATE TABLE history (
    id          INTEGER PRIMARY KEY,
    day         TEXT NOT NULL UNIQUE,
    label       TEXT NOT NULL,
    score       REAL NOT NULL,
    recorded_at INTEGER NOT NULL
);

CREATE INDEX idx_history_day ON history(day);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
