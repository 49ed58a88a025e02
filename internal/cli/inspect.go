package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/lazypower/stability/internal/config"
	"github.com/lazypower/stability/internal/engine"
	"github.com/lazypower/stability/internal/reward"
	"github.com/lazypower/stability/internal/store"
	"github.com/spf13/cobra"
)

// openDB is a helper that opens the database read-only for CLI commands;
// only the daemon writes.
func openDB() (*store.DB, error) {
	dbPath := os.Getenv("STABILITY_DB")
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return store.OpenReadOnly(dbPath)
}

// openEngine opens the database and builds an engine over it with the
// configured scoring parameters.
func openEngine() (*engine.Engine, *store.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	db, err := openDB()
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	eng := engine.New(db, engine.Params{
		DecayPerDay:  cfg.Engine.DecayPerDay,
		DayStartHour: cfg.Engine.DayStartHour,
		Location:     cfg.Location(),
		HistoryDays:  cfg.Engine.HistoryDays,
		UsagePenalty: reward.UsagePenalty(cfg.Engine.UsagePenaltyPerMin),
	})
	return eng, db, nil
}

// --- score command ---

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the current stability score",
	RunE:  runScore,
}

func runScore(cmd *cobra.Command, args []string) error {
	eng, db, err := openEngine()
	if err != nil {
		return err
	}
	defer db.Close()

	score, err := eng.Score()
	if err != nil {
		return fmt.Errorf("get score: %w", err)
	}
	fmt.Printf("stability score: %.1f / 100\n", score)

	flags, err := eng.Flags()
	if err != nil {
		return fmt.Errorf("get flags: %w", err)
	}
	if len(flags) == 0 {
		return nil
	}

	fmt.Println("\ntoday:")
	for _, f := range flags {
		mark := " "
		if f.DoneToday {
			mark = "x"
		}
		fmt.Printf("  [%s] %-20s (%d today)\n", mark, f.Kind, f.CountToday)
	}
	return nil
}

// --- log command ---

var logLimit int

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show recent score changes",
	RunE:  runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	eng, db, err := openEngine()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := eng.RecentLedger(logLimit)
	if err != nil {
		return fmt.Errorf("get ledger: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No score changes yet.")
		return nil
	}

	for _, e := range entries {
		sign := "+"
		if e.Kind == store.EntryLoss {
			sign = "-"
		}
		when := time.UnixMilli(e.CreatedAt).Format("Jan 2 15:04")
		fmt.Printf("  %s  %s%.1f  %s\n", when, sign, e.Amount, e.Cause)
	}
	return nil
}

// --- history command ---

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the daily score series",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	eng, db, err := openEngine()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := eng.History(historyDays, time.Now())
	if err != nil {
		return fmt.Errorf("get history: %w", err)
	}

	for _, e := range entries {
		bar := ""
		for i := 0.0; i < e.Score; i += 5 {
			bar += "#"
		}
		fmt.Printf("  %-8s %5.1f  %s\n", e.Label, e.Score, bar)
	}
	return nil
}

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 20, "Maximum number of entries")
	historyCmd.Flags().IntVarP(&historyDays, "days", "d", 0, "Number of days to show")
}
