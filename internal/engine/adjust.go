package engine

import (
	"fmt"
	"time"

	"github.com/lazypower/stability/internal/store"
)

// Score bounds.
const (
	minScore = 0.0
	maxScore = 100.0
)

// adjust is the single mutation point for the score. It clamps the
// requested delta to [0,100], logs only the actual (clamped) delta, and
// upserts today's history entry. A delta that clamps to zero writes
// nothing, so re-syncs and decay-at-floor never spam the ledger.
// Callers must hold e.mu.
func (e *Engine) adjust(amount float64, cause string, now time.Time) (float64, error) {
	current, err := e.db.Score()
	if err != nil {
		return 0, err
	}

	next := current + amount
	if next < minScore {
		next = minScore
	}
	if next > maxScore {
		next = maxScore
	}

	actual := next - current
	if actual == 0 {
		return 0, nil
	}

	kind := store.EntryGain
	magnitude := actual
	if actual < 0 {
		kind = store.EntryLoss
		magnitude = -actual
	}

	entry := &store.LedgerEntry{
		Amount:    magnitude,
		Kind:      kind,
		Cause:     cause,
		CreatedAt: now.UnixMilli(),
	}
	if err := e.db.AppendEntry(entry); err != nil {
		return 0, fmt.Errorf("log adjustment: %w", err)
	}
	if err := e.db.SetScore(next); err != nil {
		return 0, fmt.Errorf("persist score: %w", err)
	}
	if err := e.recordToday(next, now); err != nil {
		return 0, err
	}
	return actual, nil
}

// recordToday upserts today's entry in the daily history series, so the
// chart reflects the latest score without accumulating duplicate rows
// across same-day updates. Callers must hold e.mu.
func (e *Engine) recordToday(score float64, now time.Time) error {
	day := e.dayStart(now)
	entry := &store.HistoryEntry{
		Day:        dayKey(day),
		Label:      dayLabel(day),
		Score:      score,
		RecordedAt: now.UnixMilli(),
	}
	if err := e.db.UpsertDay(entry); err != nil {
		return fmt.Errorf("record today: %w", err)
	}
	return nil
}
