package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-lane/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the given level, or the configured one.

Controls:
  Left/Right, A/D   - Walk
  Space/Up/W        - Jump (press again in the air for a second jump)
  Enter             - Keep memory / accept revival
  P                 - Pause
  B/Esc             - Back (while paused)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Longer invincibility, softer knockback
  normal - Configured values
  hard   - Shorter invincibility, stronger knockback

Examples:
  memorylane play
  memorylane play meadow --difficulty easy
  memorylane play ./levels/garden.yaml
  memorylane play --config ./my-game.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	ref := flagLevel
	if len(args) == 1 {
		ref = args[0]
	}

	setup, cleanup, err := localSetup(ref)
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.Run(setup)
}
