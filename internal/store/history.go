package store

import (
	"fmt"
)

// HistoryEntry is the score snapshot for one calendar day.
type HistoryEntry struct {
	ID         int64
	Day        string // canonical day key, e.g. "2026-09-01"
	Label      string // display label, e.g. "Sep 1"
	Score      float64
	RecordedAt int64 // unix milliseconds
}

// UpsertDay writes the score snapshot for a calendar day, replacing any
// existing entry for that day so the series never holds duplicates.
func (db *DB) UpsertDay(e *HistoryEntry) error {
	_, err := db.Exec(`
		INSERT INTO history (day, label, score, recorded_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			label = excluded.label,
			score = excluded.score,
			recorded_at = excluded.recorded_at
	`, e.Day, e.Label, e.Score, e.RecordedAt)
	if err != nil {
		return fmt.Errorf("upsert history day %s: %w", e.Day, err)
	}
	return nil
}

// RecentHistory returns the most recent n daily snapshots, oldest first.
func (db *DB) RecentHistory(n int) ([]HistoryEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := db.Query(`
		SELECT id, day, label, score, recorded_at FROM (
			SELECT id, day, label, score, recorded_at FROM history
			ORDER BY day DESC LIMIT ?
		) ORDER BY day ASC
	`, n)
	if err != nil {
		return nil, fmt.Errorf("recent history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Day, &e.Label, &e.Score, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountHistory returns the number of stored daily snapshots.
func (db *DB) CountHistory() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM history").Scan(&count)
	return count, err
}
