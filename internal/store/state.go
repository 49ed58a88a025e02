package store

import (
	"database/sql"
	"fmt"
	"strconv"
)

// engine_state keys. Values are stored as text; a value that fails to parse
// falls back to the field default rather than surfacing an error, so a
// corrupt row can never wedge the engine.
const (
	keyScore        = "score"
	keyLastDecayAt  = "last_decay_at"
	keyLastResetAt  = "last_reset_at"
	keyUsageSeconds = "usage_seconds"
)

// DefaultScore is the score assigned on first run.
const DefaultScore = 50.0

func (db *DB) stateValue(key string) (string, bool, error) {
	var v string
	err := db.QueryRow("SELECT value FROM engine_state WHERE key = ?", key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get state %s: %w", key, err)
	}
	return v, true, nil
}

func (db *DB) setStateValue(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO engine_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set state %s: %w", key, err)
	}
	return nil
}

func (db *DB) stateFloat(key string, fallback float64) (float64, error) {
	v, ok, err := db.stateValue(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback, nil
	}
	return f, nil
}

func (db *DB) stateInt64(key string, fallback int64) (int64, error) {
	v, ok, err := db.stateValue(key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback, nil
	}
	return n, nil
}

// Score returns the current score, or DefaultScore if none is stored yet.
func (db *DB) Score() (float64, error) {
	return db.stateFloat(keyScore, DefaultScore)
}

// SetScore persists the current score.
func (db *DB) SetScore(score float64) error {
	return db.setStateValue(keyScore, strconv.FormatFloat(score, 'f', -1, 64))
}

// LastDecayAt returns the unix-millisecond timestamp of the last decay
// check, or 0 if decay has never run.
func (db *DB) LastDecayAt() (int64, error) {
	return db.stateInt64(keyLastDecayAt, 0)
}

// SetLastDecayAt persists the last decay check timestamp.
func (db *DB) SetLastDecayAt(unixMilli int64) error {
	return db.setStateValue(keyLastDecayAt, strconv.FormatInt(unixMilli, 10))
}

// LastResetAt returns the unix-millisecond timestamp of the last daily
// flag reset, or 0 if a rollover has never run.
func (db *DB) LastResetAt() (int64, error) {
	return db.stateInt64(keyLastResetAt, 0)
}

// SetLastResetAt persists the last daily reset timestamp.
func (db *DB) SetLastResetAt(unixMilli int64) error {
	return db.setStateValue(keyLastResetAt, strconv.FormatInt(unixMilli, 10))
}

// UsageSeconds returns the last processed cumulative external usage
// duration, in seconds.
func (db *DB) UsageSeconds() (float64, error) {
	return db.stateFloat(keyUsageSeconds, 0)
}

// SetUsageSeconds persists the last processed cumulative usage duration.
func (db *DB) SetUsageSeconds(seconds float64) error {
	return db.setStateValue(keyUsageSeconds, strconv.FormatFloat(seconds, 'f', -1, 64))
}
