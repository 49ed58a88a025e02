package store

import (
	"fmt"
	"testing"
)

func TestAppendEntry(t *testing.T) {
	db := testDB(t)

	e := &LedgerEntry{Amount: 20, Kind: EntryGain, Cause: "meditation (first)", CreatedAt: 1000}
	if err := db.AppendEntry(e); err != nil {
		t.Fatalf("AppendEntry: %v", err)
	}
	if e.ID == 0 {
		t.Error("expected non-zero ID")
	}

	entries, err := db.RecentEntries(10)
	if err != nil {
		t.Fatalf("RecentEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len = %d, want 1", len(entries))
	}
	if entries[0].Cause != "meditation (first)" {
		t.Errorf("cause = %q, want %q", entries[0].Cause, "meditation (first)")
	}
	if entries[0].Kind != EntryGain {
		t.Errorf("kind = %q, want gain", entries[0].Kind)
	}
}

func TestLedgerNewestFirst(t *testing.T) {
	db := testDB(t)

	for i := 0; i < 3; i++ {
		e := &LedgerEntry{Amount: float64(i + 1), Kind: EntryLoss, Cause: fmt.Sprintf("cause-%d", i), CreatedAt: int64(1000 + i)}
		if err := db.AppendEntry(e); err != nil {
			t.Fatalf("AppendEntry %d: %v", i, err)
		}
	}

	entries, err := db.RecentEntries(3)
	if err != nil {
		t.Fatalf("RecentEntries: %v", err)
	}
	if entries[0].Cause != "cause-2" || entries[2].Cause != "cause-0" {
		t.Errorf("entries not newest-first: %v, %v, %v", entries[0].Cause, entries[1].Cause, entries[2].Cause)
	}
}

func TestLedgerPrunesAtCap(t *testing.T) {
	db := testDB(t)

	for i := 0; i < MaxLedgerEntries+1; i++ {
		e := &LedgerEntry{Amount: 1, Kind: EntryGain, Cause: fmt.Sprintf("cause-%d", i), CreatedAt: int64(i)}
		if err := db.AppendEntry(e); err != nil {
			t.Fatalf("AppendEntry %d: %v", i, err)
		}
	}

	count, err := db.CountEntries()
	if err != nil {
		t.Fatalf("CountEntries: %v", err)
	}
	if count != MaxLedgerEntries {
		t.Errorf("count = %d, want %d", count, MaxLedgerEntries)
	}

	// Oldest entry (cause-0) is gone, newest survives at the head.
	entries, _ := db.RecentEntries(0)
	if entries[0].Cause != fmt.Sprintf("cause-%d", MaxLedgerEntries) {
		t.Errorf("head = %q, want cause-%d", entries[0].Cause, MaxLedgerEntries)
	}
	for _, e := range entries {
		if e.Cause == "cause-0" {
			t.Error("oldest entry should have been pruned")
		}
	}
}
