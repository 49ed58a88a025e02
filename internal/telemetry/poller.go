// Package telemetry mirrors the screen-time collaborator's usage counter
// into the engine. The collaborator drops a JSON snapshot in shared
// storage; the poller re-reads it on an interval and feeds the cumulative
// counter to the engine, whose delta tracking makes re-reads idempotent.
package telemetry

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lazypower/stability/internal/engine"
)

// Snapshot is the usage reading the screen-time collaborator writes.
type Snapshot struct {
	CumulativeSeconds float64 `json:"cumulative_seconds"`
	SyncedAt          int64   `json:"synced_at"` // unix milliseconds
}

// DefaultSnapshotPath returns the default shared-storage path:
// ~/.stability/usage.json
func DefaultSnapshotPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".stability", "usage.json"), nil
}

// ReadSnapshot loads a usage snapshot from disk. A missing file returns
// (nil, nil) — the collaborator may simply not have written yet.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}

// Poller periodically feeds the snapshot counter to the engine.
type Poller struct {
	eng      *engine.Engine
	path     string
	interval time.Duration
	stopCh   chan struct{}
}

// NewPoller creates a Poller reading from path every interval.
func NewPoller(eng *engine.Engine, path string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Poller{
		eng:      eng,
		path:     path,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start syncs once immediately and then on the configured interval.
func (p *Poller) Start() {
	p.SyncOnce(time.Now())

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				p.SyncOnce(time.Now())
			case <-p.stopCh:
				return
			}
		}
	}()
}

// Stop shuts down the poller's background goroutine.
func (p *Poller) Stop() {
	close(p.stopCh)
}

// SyncOnce reads the snapshot and applies it. Missing or unreadable
// snapshots are skipped; the engine never sees a bad reading.
func (p *Poller) SyncOnce(now time.Time) {
	snap, err := ReadSnapshot(p.path)
	if err != nil {
		log.Printf("usage sync: %v", err)
		return
	}
	if snap == nil {
		return
	}

	penalty, err := p.eng.ApplyExternalUsage(snap.CumulativeSeconds, now)
	if err != nil {
		log.Printf("usage sync: %v", err)
		return
	}
	if penalty > 0 {
		log.Printf("usage sync: applied penalty %.1f for %.0fs total usage", penalty, snap.CumulativeSeconds)
	}
}
