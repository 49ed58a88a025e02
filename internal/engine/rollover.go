package engine

import (
	"fmt"
	"time"
)

// EnsureDailyRollover resets the per-activity flags and counters when the
// calendar day has changed since the stored last-reset timestamp.
// Idempotent within a day; never touches the score.
func (e *Engine) EnsureDailyRollover(now time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ensureDailyRollover(now)
}

func (e *Engine) ensureDailyRollover(now time.Time) error {
	lastReset, err := e.db.LastResetAt()
	if err != nil {
		return err
	}

	if lastReset == 0 {
		// First run: flags are already at their defaults.
		return e.db.SetLastResetAt(now.UnixMilli())
	}

	lastDay := e.dayStart(time.UnixMilli(lastReset))
	today := e.dayStart(now)

	// Only a forward day change triggers a reset. A clock that moved
	// backward lands in the past branch and does nothing.
	if !today.After(lastDay) {
		return nil
	}

	if err := e.db.ResetFlags(); err != nil {
		return fmt.Errorf("daily rollover: %w", err)
	}
	return e.db.SetLastResetAt(now.UnixMilli())
}

// ApplyDecay subtracts DecayPerDay for every whole calendar day elapsed
// since the last decay check, floored at a score of zero. The last-decay
// timestamp advances whenever a day change is seen, even if the score was
// already at the floor, so decay cannot re-trigger within a day.
func (e *Engine) ApplyDecay(now time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyDecay(now)
}

func (e *Engine) applyDecay(now time.Time) error {
	lastDecay, err := e.db.LastDecayAt()
	if err != nil {
		return err
	}

	if lastDecay == 0 {
		// First run: start the decay clock, nothing to decay against.
		return e.db.SetLastDecayAt(now.UnixMilli())
	}

	lastDay := e.dayStart(time.UnixMilli(lastDecay))
	today := e.dayStart(now)

	daysPassed := daysBetween(lastDay, today)
	if daysPassed <= 0 {
		// Same day, or the clock moved backward. Leave the stored
		// timestamp alone so the real rollover still fires later.
		return nil
	}

	score, err := e.db.Score()
	if err != nil {
		return err
	}

	decay := e.params.DecayPerDay * float64(daysPassed)
	if decay > score {
		decay = score
	}
	if decay > 0 {
		if _, err := e.adjust(-decay, "daily decay", now); err != nil {
			return fmt.Errorf("apply decay: %w", err)
		}
	}
	return e.db.SetLastDecayAt(now.UnixMilli())
}
