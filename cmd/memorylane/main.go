// memorylane is a small narrative platformer: walk the meadow, collect
// memories, dodge the spikes and reach the goal.
//
// Usage:
//
//	memorylane play [level]     - Play a level directly
//	memorylane menu             - Title menu with the memories gallery
//	memorylane serve            - Start SSH server for remote play
//	memorylane web              - Serve the game to a browser over a websocket
//	memorylane levels           - List available levels
//	memorylane memories         - Show collected memories
//	memorylane runs             - Show run history
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible cosmetics
//	--db <path>           - Set database path (default: ~/.memorylane/memorylane.db)
//	--config <path>       - Custom game config YAML
//	--level <id|path>     - Level ID or level YAML file
//	--difficulty <preset> - easy, normal or hard
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import levels to register them
	_ "github.com/vovakirdan/memory-lane/internal/level/builtin"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevel      string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "memorylane",
	Short: "Memory Lane - a tiny platformer about collected memories",
	Long: `Memory Lane is a small narrative platformer. Walk through the level,
collect the memories scattered along the way, avoid the spikes and reach
the goal. Collected memories are kept between runs.

Available commands:
  play      - Play a level directly
  menu      - Title menu with the memories gallery
  serve     - Start SSH server for remote play
  web       - Serve the game to a browser
  levels    - Show all available levels
  memories  - Show collected memories
  runs      - Show run history

Examples:
  memorylane play
  memorylane play --difficulty easy
  memorylane menu
  memorylane serve --ssh :2222
  memorylane web --addr :8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.memorylane/memorylane.db", "Path to the memories database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "", "Level ID or path to a level YAML (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(memoriesCmd)
	rootCmd.AddCommand(runsCmd)
}
