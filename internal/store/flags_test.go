package store

import (
	"testing"
)

func TestFlagDoneUnknownKind(t *testing.T) {
	db := testDB(t)

	done, err := db.FlagDone("meditation-session")
	if err != nil {
		t.Fatalf("FlagDone: %v", err)
	}
	if done {
		t.Error("unknown kind should not be done")
	}
}

func TestMarkDone(t *testing.T) {
	db := testDB(t)

	if err := db.MarkDone("meditation-session"); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}
	done, err := db.FlagDone("meditation-session")
	if err != nil {
		t.Fatalf("FlagDone: %v", err)
	}
	if !done {
		t.Error("expected done after MarkDone")
	}
}

func TestIncrementCountKeepsFlag(t *testing.T) {
	db := testDB(t)

	if err := db.IncrementCount("flow-session"); err != nil {
		t.Fatalf("IncrementCount: %v", err)
	}
	if err := db.IncrementCount("flow-session"); err != nil {
		t.Fatalf("IncrementCount: %v", err)
	}

	flags, err := db.Flags()
	if err != nil {
		t.Fatalf("Flags: %v", err)
	}
	if len(flags) != 1 {
		t.Fatalf("len(flags) = %d, want 1", len(flags))
	}
	if flags[0].CountToday != 2 {
		t.Errorf("CountToday = %d, want 2", flags[0].CountToday)
	}
	if flags[0].DoneToday {
		t.Error("counter increments must not set the done flag")
	}
}

func TestResetFlags(t *testing.T) {
	db := testDB(t)

	db.MarkDone("meditation-session")
	db.IncrementCount("meditation-session")
	db.IncrementCount("emotion-log")

	if err := db.ResetFlags(); err != nil {
		t.Fatalf("ResetFlags: %v", err)
	}

	flags, err := db.Flags()
	if err != nil {
		t.Fatalf("Flags: %v", err)
	}
	for _, f := range flags {
		if f.DoneToday {
			t.Errorf("%s: done flag survived reset", f.Kind)
		}
		if f.CountToday != 0 {
			t.Errorf("%s: CountToday = %d after reset, want 0", f.Kind, f.CountToday)
		}
	}
}
