package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-lane/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the game to a browser",
	Long: `Start an HTTP server with a small page that plays the game over a
websocket. The simulation runs on the server; the page only draws frames
and sends input. Add ?player=<name> to the page URL to keep a separate set
of memories per player.

Examples:
  memorylane web
  memorylane web --addr :8080
  memorylane web --level ./levels/garden.yaml`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "memorylane-web")
	if err != nil {
		return err
	}

	game, err := loadGameConfig()
	if err != nil {
		return err
	}
	lvl, err := resolveLevel(flagLevel, game)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	server, err := web.NewServer(web.ServerConfig{
		Address:  flagWebAddr,
		Game:     game,
		Level:    lvl,
		TickRate: flagFPS,
		Store:    store,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Open http://localhost:%s in a browser\n", port(flagWebAddr))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// port extracts the port from a listen address for the hint lines.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
