package store

import (
	"database/sql"
	"fmt"
)

// ActivityFlag holds the daily completion state for one activity kind.
type ActivityFlag struct {
	Kind       string
	DoneToday  bool
	CountToday int
}

// FlagDone reports whether the given activity kind has already been
// rewarded today. Unknown kinds report false.
func (db *DB) FlagDone(kind string) (bool, error) {
	var done int
	err := db.QueryRow("SELECT done_today FROM activity_flags WHERE kind = ?", kind).Scan(&done)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get flag %s: %w", kind, err)
	}
	return done != 0, nil
}

// MarkDone sets the done-today flag for an activity kind.
func (db *DB) MarkDone(kind string) error {
	_, err := db.Exec(`
		INSERT INTO activity_flags (kind, done_today, count_today) VALUES (?, 1, 0)
		ON CONFLICT(kind) DO UPDATE SET done_today = 1
	`, kind)
	if err != nil {
		return fmt.Errorf("mark done %s: %w", kind, err)
	}
	return nil
}

// IncrementCount bumps the daily raw counter for an activity kind. The
// counter tracks every completion, rewarded or not.
func (db *DB) IncrementCount(kind string) error {
	_, err := db.Exec(`
		INSERT INTO activity_flags (kind, done_today, count_today) VALUES (?, 0, 1)
		ON CONFLICT(kind) DO UPDATE SET count_today = count_today + 1
	`, kind)
	if err != nil {
		return fmt.Errorf("increment count %s: %w", kind, err)
	}
	return nil
}

// Flags returns all activity flags, ordered by kind.
func (db *DB) Flags() ([]ActivityFlag, error) {
	rows, err := db.Query("SELECT kind, done_today, count_today FROM activity_flags ORDER BY kind")
	if err != nil {
		return nil, fmt.Errorf("list flags: %w", err)
	}
	defer rows.Close()

	var flags []ActivityFlag
	for rows.Next() {
		var f ActivityFlag
		var done int
		if err := rows.Scan(&f.Kind, &done, &f.CountToday); err != nil {
			return nil, fmt.Errorf("scan flag: %w", err)
		}
		f.DoneToday = done != 0
		flags = append(flags, f)
	}
	return flags, rows.Err()
}

// ResetFlags clears every done-today flag and daily counter. Runs at the
// calendar-day rollover.
func (db *DB) ResetFlags() error {
	_, err := db.Exec("UPDATE activity_flags SET done_today = 0, count_today = 0")
	if err != nil {
		return fmt.Errorf("reset flags: %w", err)
	}
	return nil
}
