package cli

import (
	"encoding/json"
	"fmt"

	"github.com/lazypower/stability/internal/client"
	"github.com/lazypower/stability/internal/reward"
	"github.com/spf13/cobra"
)

// Mutating commands go through the daemon so it stays the single writer.

var completeMinutes float64

var completeCmd = &cobra.Command{
	Use:   "complete <kind>",
	Short: "Report an activity completion to the daemon",
	Long:  "Report a completed activity. Kinds: anchor-session, flow-session, meditation-session, emotion-log.",
	Args:  cobra.ExactArgs(1),
	RunE:  runComplete,
}

func runComplete(cmd *cobra.Command, args []string) error {
	kind := args[0]
	if !reward.Known(kind) {
		return fmt.Errorf("unknown activity kind %q", kind)
	}

	c := client.New()
	if !c.Healthy() {
		return fmt.Errorf("daemon not reachable; is `stability serve` running?")
	}

	body, _ := json.Marshal(map[string]any{
		"kind":             kind,
		"duration_seconds": completeMinutes * 60,
	})
	data, err := c.Post("/api/activities", body)
	if err != nil {
		return err
	}

	var resp struct {
		Rewarded bool    `json:"rewarded"`
		Amount   float64 `json:"amount"`
		Score    float64 `json:"score"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	if resp.Rewarded {
		fmt.Printf("recorded %s: +%.1f (score %.1f)\n", kind, resp.Amount, resp.Score)
	} else {
		fmt.Printf("recorded %s: already rewarded today (score %.1f)\n", kind, resp.Score)
	}
	return nil
}

var syncSeconds float64

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push a usage-counter reading to the daemon",
	RunE:  runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	c := client.New()
	if !c.Healthy() {
		return fmt.Errorf("daemon not reachable; is `stability serve` running?")
	}

	body, _ := json.Marshal(map[string]any{
		"cumulative_seconds": syncSeconds,
	})
	data, err := c.Post("/api/usage", body)
	if err != nil {
		return err
	}

	var resp struct {
		Penalty float64 `json:"penalty"`
		Score   float64 `json:"score"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	if resp.Penalty > 0 {
		fmt.Printf("synced: -%.1f (score %.1f)\n", resp.Penalty, resp.Score)
	} else {
		fmt.Printf("synced: no new usage (score %.1f)\n", resp.Score)
	}
	return nil
}

func init() {
	completeCmd.Flags().Float64VarP(&completeMinutes, "minutes", "m", 0, "Activity duration in minutes")
	syncCmd.Flags().Float64Var(&syncSeconds, "seconds", 0, "Cumulative usage counter in seconds")
	syncCmd.MarkFlagRequired("seconds")
}
