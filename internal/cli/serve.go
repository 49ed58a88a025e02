package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lazypower/stability/internal/config"
	"github.com/lazypower/stability/internal/engine"
	"github.com/lazypower/stability/internal/reward"
	"github.com/lazypower/stability/internal/server"
	"github.com/lazypower/stability/internal/store"
	"github.com/lazypower/stability/internal/telemetry"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scoring daemon",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Resolve database path
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return fmt.Errorf("resolve db path: %w", err)
		}
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	eng := engine.New(db, engine.Params{
		DecayPerDay:  cfg.Engine.DecayPerDay,
		DayStartHour: cfg.Engine.DayStartHour,
		Location:     cfg.Location(),
		HistoryDays:  cfg.Engine.HistoryDays,
		UsagePenalty: reward.UsagePenalty(cfg.Engine.UsagePenaltyPerMin),
	})
	eng.StartDailyTimer()
	defer eng.Stop()

	// Resolve the usage snapshot path and start the telemetry poller
	snapshotPath := cfg.Telemetry.SnapshotPath
	if snapshotPath == "" {
		snapshotPath, err = telemetry.DefaultSnapshotPath()
		if err != nil {
			return fmt.Errorf("resolve snapshot path: %w", err)
		}
	}
	poller := telemetry.NewPoller(eng, snapshotPath, cfg.Telemetry.PollInterval)
	poller.Start()
	defer poller.Stop()

	srv := server.New(db, eng, VersionString())
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "stability serving on %s\n", addr)
		fmt.Fprintf(os.Stderr, "  db: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "  usage snapshot: %s (every %s)\n", snapshotPath, cfg.Telemetry.PollInterval)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
