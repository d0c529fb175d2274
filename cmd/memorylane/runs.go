package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-lane/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show run history",
	Long: `Display recent runs and per-level totals. Use the global --level flag
to only show runs of one level.

Examples:
  memorylane runs
  memorylane runs --level meadow --limit 5`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening memories database: %w", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(flagLevel, flagRunsLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Println("Recent runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'memorylane play' to start your first run!")
		return nil
	}

	fmt.Printf("  %-10s  %-10s  %-9s  %-7s  %-6s  %-7s  %s\n", "Level", "Player", "Outcome", "Pickups", "Lost", "Ticks", "Date")
	fmt.Printf("  %-10s  %-10s  %-9s  %-7s  %-6s  %-7s  %s\n", "-----", "------", "-------", "-------", "----", "-----", "----")

	levels := make([]string, 0)
	seen := make(map[string]bool)
	for _, r := range runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-10s  %-10s  %-9s  %-7d  %-6d  %-7d  %s\n",
			r.LevelID, player, r.Outcome, r.Pickups, r.LivesLost, r.Ticks, r.CreatedAt.Format("2006-01-02 15:04"))
		if !seen[r.LevelID] {
			seen[r.LevelID] = true
			levels = append(levels, r.LevelID)
		}
	}

	fmt.Println()
	for _, id := range levels {
		stats, err := store.LevelStats(id)
		if err != nil {
			continue
		}
		line := fmt.Sprintf("%s: %d runs, %d goals", id, stats.Runs, stats.Goals)
		if stats.FastestGoal > 0 {
			line += fmt.Sprintf(", fastest %d ticks", stats.FastestGoal)
		}
		fmt.Println(line)
	}
	return nil
}
