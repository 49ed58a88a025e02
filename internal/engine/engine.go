package engine

import (
	"log"
	"sync"
	"time"

	"github.com/lazypower/stability/internal/store"
)

// Engine owns the stability score. Every mutation funnels through the
// clamped adjust routine under one mutex, so the HTTP handlers, the daily
// activation timer, and the telemetry poller can all call in concurrently.
type Engine struct {
	mu     sync.Mutex
	db     *store.DB
	params Params
	stopCh chan struct{}
}

// Params configures the scoring policies the engine enforces. Reward
// magnitudes are not here on purpose: callers compute those via the
// reward package and pass amounts in.
type Params struct {
	// DecayPerDay is subtracted from the score per elapsed calendar day
	// of inactivity.
	DecayPerDay float64

	// DayStartHour shifts the calendar-day boundary, so a 1am meditation
	// can still count toward the previous day. 0 = midnight.
	DayStartHour int

	// Location is the time zone calendar days are computed in.
	Location *time.Location

	// HistoryDays is the default recent-window size for the daily series.
	HistoryDays int

	// UsagePenalty converts a delta of external usage seconds into a
	// score penalty. The policy is owned by the caller; the engine only
	// applies the resulting amount.
	UsagePenalty func(deltaSeconds float64) float64
}

// DefaultParams returns the stock scoring parameters.
func DefaultParams() Params {
	return Params{
		DecayPerDay: 15.0,
		HistoryDays: 7,
	}
}

// New creates an Engine over the given store. Zero-valued params fields
// are filled with defaults.
func New(db *store.DB, params Params) *Engine {
	if params.DecayPerDay <= 0 {
		params.DecayPerDay = 15.0
	}
	if params.HistoryDays <= 0 {
		params.HistoryDays = 7
	}
	if params.Location == nil {
		params.Location = time.Local
	}
	if params.UsagePenalty == nil {
		params.UsagePenalty = func(float64) float64 { return 0 }
	}
	return &Engine{
		db:     db,
		params: params,
		stopCh: make(chan struct{}),
	}
}

// Activate runs the daily rollover check followed by decay. Called on
// startup, by the daily timer, and implicitly before reward and penalty
// application.
func (e *Engine) Activate(now time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureDailyRollover(now); err != nil {
		return err
	}
	return e.applyDecay(now)
}

// StartDailyTimer runs Activate once immediately and then daily, so decay
// lands even when the daemon idles overnight.
func (e *Engine) StartDailyTimer() {
	if err := e.Activate(time.Now()); err != nil {
		log.Printf("activate error: %v", err)
	}

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := e.Activate(time.Now()); err != nil {
					log.Printf("activate error: %v", err)
				}
			case <-e.stopCh:
				return
			}
		}
	}()
}

// Stop shuts down the engine's background goroutines.
func (e *Engine) Stop() {
	close(e.stopCh)
}

// Score returns the current stability score.
func (e *Engine) Score() (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.db.Score()
}

// RecentLedger returns up to limit audit entries, newest first.
func (e *Engine) RecentLedger(limit int) ([]store.LedgerEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.db.RecentEntries(limit)
}

// Flags returns the per-activity daily completion flags and counters.
func (e *Engine) Flags() ([]store.ActivityFlag, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.db.Flags()
}

// History returns the most recent days of the daily score series, oldest
// first. With no stored entries yet it synthesizes a flat placeholder
// series ending today, so chart consumers always get renderable data. The
// placeholder is never persisted.
func (e *Engine) History(days int, now time.Time) ([]store.HistoryEntry, error) {
	if days <= 0 {
		days = e.params.HistoryDays
	}
	if days > 366 {
		days = 366
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	entries, err := e.db.RecentHistory(days)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		return entries, nil
	}

	// Placeholder: flat line at the initial score.
	today := e.dayStart(now)
	placeholder := make([]store.HistoryEntry, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		placeholder = append(placeholder, store.HistoryEntry{
			Day:   dayKey(day),
			Label: dayLabel(day),
			Score: store.DefaultScore,
		})
	}
	return placeholder, nil
}
