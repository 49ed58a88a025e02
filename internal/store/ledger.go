package store

import (
	"fmt"
)

// Ledger entry kinds.
const (
	EntryGain = "gain"
	EntryLoss = "loss"
)

// MaxLedgerEntries caps the audit log; the oldest entries are discarded
// when an insert pushes past the cap.
const MaxLedgerEntries = 50

// LedgerEntry is one immutable score-delta record.
type LedgerEntry struct {
	ID        int64
	Amount    float64 // always positive; Kind carries the sign
	Kind      string  // "gain" or "loss"
	Cause     string
	CreatedAt int64 // unix milliseconds
}

// AppendEntry inserts a ledger entry and prunes the log to the
// MaxLedgerEntries most recent rows.
func (db *DB) AppendEntry(e *LedgerEntry) error {
	result, err := db.Exec(`
		INSERT INTO ledger (amount, kind, cause, created_at)
		VALUES (?, ?, ?, ?)
	`, e.Amount, e.Kind, e.Cause, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	id, _ := result.LastInsertId()
	e.ID = id

	_, err = db.Exec(`
		DELETE FROM ledger WHERE id NOT IN (
			SELECT id FROM ledger ORDER BY created_at DESC, id DESC LIMIT ?
		)
	`, MaxLedgerEntries)
	if err != nil {
		return fmt.Errorf("prune ledger: %w", err)
	}
	return nil
}

// RecentEntries returns up to limit ledger entries, newest first. A limit
// of 0 or less returns the full retained log.
func (db *DB) RecentEntries(limit int) ([]LedgerEntry, error) {
	if limit <= 0 || limit > MaxLedgerEntries {
		limit = MaxLedgerEntries
	}
	rows, err := db.Query(`
		SELECT id, amount, kind, cause, created_at FROM ledger
		ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []LedgerEntry
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.ID, &e.Amount, &e.Kind, &e.Cause, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountEntries returns the number of retained ledger entries.
func (db *DB) CountEntries() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM ledger").Scan(&count)
	return count, err
}
