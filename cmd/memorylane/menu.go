package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-lane/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the title menu",
	Long: `Start in interactive menu mode.

From the title menu you can start a run or open the memories gallery.
Leaving a paused run returns you to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  memorylane menu
  memorylane menu --fps 30
  memorylane menu --db ./memorylane.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	setup, cleanup, err := localSetup(flagLevel)
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.RunSession(setup)
}
