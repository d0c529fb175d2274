package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-lane/internal/storage"
)

var flagPlayer string

var memoriesCmd = &cobra.Command{
	Use:   "memories [level]",
	Short: "Show collected memories",
	Long: `List the memories of a level and which of them have been found.
Memories that are still locked stay hidden.

Examples:
  memorylane memories
  memorylane memories meadow
  memorylane memories --player alice   # memories of an SSH or web player`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMemories,
}

func init() {
	memoriesCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name (empty for local play)")
}

func runMemories(_ *cobra.Command, args []string) error {
	ref := flagLevel
	if len(args) == 1 {
		ref = args[0]
	}

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	lvl, err := resolveLevel(ref, cfg)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening memories database: %w", err)
	}
	defer store.Close()

	ids, err := store.LoadIDs(storage.PlayerKey(cfg.Storage.LedgerKey, flagPlayer))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	found := make(map[int]bool, len(ids))
	for _, id := range ids {
		found[id] = true
	}

	fmt.Printf("Memories - %s\n", lvl.Name)
	fmt.Println()

	count := 0
	for _, c := range lvl.Collectibles {
		if found[c.ID] {
			count++
			fmt.Printf("  %-3d ♥ %s\n", c.ID, firstLine(c.Message))
		} else {
			fmt.Printf("  %-3d   ? ? ?\n", c.ID)
		}
	}

	fmt.Println()
	fmt.Printf("Found %d of %d\n", count, len(lvl.Collectibles))
	if count == 0 {
		fmt.Printf("Play 'memorylane play %s' to find the first one!\n", lvl.ID)
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
