package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-lane/internal/config"
	"github.com/vovakirdan/memory-lane/internal/level"
	"github.com/vovakirdan/memory-lane/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows the built-in levels and any level files found in
~/.memorylane/levels.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

type levelRow struct {
	ID     string
	Title  string
	Source string
}

func runLevels(_ *cobra.Command, _ []string) {
	var rows []levelRow
	for _, l := range registry.List() {
		rows = append(rows, levelRow{ID: l.ID, Title: l.Title, Source: "built-in"})
	}

	if dir := config.UserPath("levels"); dir != "" {
		user, err := level.NewLoader(dir).LoadAll()
		if err != nil {
			fmt.Printf("Warning: %v\n\n", err)
		}
		for _, g := range user {
			rows = append(rows, levelRow{ID: g.ID, Title: g.Name, Source: g.FilePath})
		}
	}

	if len(rows) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5
	for _, r := range rows {
		maxIDLen = max(maxIDLen, len(r.ID))
		maxTitleLen = max(maxTitleLen, len(r.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Source")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "------")
	for _, r := range rows {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, r.ID, maxTitleLen, r.Title, r.Source)
	}

	fmt.Println()
	fmt.Println("Run 'memorylane play <id>' to play a level.")
}
