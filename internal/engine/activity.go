package engine

import (
	"fmt"
	"time"
)

// ActivityResult reports what a completion call did.
type ActivityResult struct {
	Rewarded bool    // false when the kind was already rewarded today
	Amount   float64 // actual (clamped) score gain
	Score    float64 // score after the call
}

// CompleteActivity records an activity completion. The raw daily counter
// increments every time; the score reward applies only on the first
// completion of that kind per calendar day. The magnitude is computed by
// the caller (see the reward package) and clamped here.
func (e *Engine) CompleteActivity(kind string, magnitude float64, now time.Time) (ActivityResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var res ActivityResult

	// Decay settles before the reward lands, so a post-midnight
	// completion applies against the already-decayed score.
	if err := e.ensureDailyRollover(now); err != nil {
		return res, err
	}
	if err := e.applyDecay(now); err != nil {
		return res, err
	}

	if err := e.db.IncrementCount(kind); err != nil {
		return res, err
	}

	done, err := e.db.FlagDone(kind)
	if err != nil {
		return res, err
	}

	if magnitude < 0 {
		magnitude = 0
	}

	if !done {
		// First completion today claims the reward, even if the score is
		// already at the ceiling and the clamped gain comes out zero.
		actual, err := e.adjust(magnitude, kind+" (first)", now)
		if err != nil {
			return res, fmt.Errorf("complete %s: %w", kind, err)
		}
		if err := e.db.MarkDone(kind); err != nil {
			return res, err
		}
		res.Rewarded = true
		res.Amount = actual
	}

	score, err := e.db.Score()
	if err != nil {
		return res, err
	}
	res.Score = score

	if res.Amount == 0 {
		// No adjustment wrote the history row — either the reward was
		// already claimed, or it clamped to nothing at the ceiling.
		// Today's entry still gets refreshed.
		if err := e.recordToday(score, now); err != nil {
			return res, err
		}
	}
	return res, nil
}

// ApplyExternalUsage consumes a cumulative external usage reading, in
// seconds. Only the unprocessed increment is penalized; re-syncing the
// same counter value is a no-op, so the periodic poller can re-read
// freely. Returns the penalty actually applied.
func (e *Engine) ApplyExternalUsage(totalSeconds float64, now time.Time) (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureDailyRollover(now); err != nil {
		return 0, err
	}
	if err := e.applyDecay(now); err != nil {
		return 0, err
	}

	last, err := e.db.UsageSeconds()
	if err != nil {
		return 0, err
	}

	delta := totalSeconds - last
	if delta <= 0 {
		// Same reading, or a counter that went backward. Keep the stored
		// watermark so a later catch-up isn't double-penalized.
		return 0, nil
	}

	penalty := e.params.UsagePenalty(delta)
	var applied float64
	if penalty > 0 {
		actual, err := e.adjust(-penalty, "screen time", now)
		if err != nil {
			return 0, fmt.Errorf("apply usage penalty: %w", err)
		}
		applied = -actual
	}

	if err := e.db.SetUsageSeconds(totalSeconds); err != nil {
		return applied, err
	}
	return applied, nil
}
