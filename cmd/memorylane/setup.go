package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/memory-lane/internal/audio"
	"github.com/vovakirdan/memory-lane/internal/config"
	"github.com/vovakirdan/memory-lane/internal/core"
	"github.com/vovakirdan/memory-lane/internal/level"
	"github.com/vovakirdan/memory-lane/internal/platform/tui"
	"github.com/vovakirdan/memory-lane/internal/platformer"
	"github.com/vovakirdan/memory-lane/internal/registry"
	"github.com/vovakirdan/memory-lane/internal/storage"
)

// newLogger builds the process logger. Terminal hosts own stdout, so logs
// go to stderr, or to a file when playing full screen.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	logLevel, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           logLevel,
	}), nil
}

// playLogger writes to ~/.memorylane/memorylane.log so the alt screen stays
// clean. The returned closer is never nil.
func playLogger() (*log.Logger, func(), error) {
	path := config.UserPath("memorylane.log")
	if path == "" {
		logger, err := newLogger(io.Discard, "memorylane")
		return logger, func() {}, err
	}
	if err := os.MkdirAll(config.UserPath(), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger, err := newLogger(f, "memorylane")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}

// loadGameConfig reads the config and applies the difficulty preset. The
// --difficulty flag wins over the preset named in the file.
func loadGameConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset := cfg.Preset
	if flagDifficulty != "" {
		preset = config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (expected easy, normal or hard)", flagDifficulty)
		}
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// resolveLevel finds ref among registered levels, level files and
// ~/.memorylane/levels. An empty ref falls back to the config's level.
func resolveLevel(ref string, cfg config.GameConfig) (*level.Geometry, error) {
	if ref == "" {
		ref = cfg.Level
	}
	if ref == "" {
		ref = "meadow"
	}

	g, err := registry.Resolve(ref)
	if err == nil {
		return g, nil
	}
	if dir := config.UserPath("levels"); dir != "" {
		if _, statErr := os.Stat(dir); statErr == nil {
			if g, loadErr := level.NewLoader(dir).LoadByID(ref); loadErr == nil {
				return g, nil
			}
		}
	}
	return nil, fmt.Errorf("%w\nRun 'memorylane levels' to see available levels", err)
}

// terminalSize returns the terminal size, or 80x24 when unknown.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// openStore opens the database; failure only disables persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open memories database, progress will not be saved", "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open memories database: %v\n", err)
		return nil
	}
	return store
}

// openAudio starts sound output when enabled and a backend exists. The
// returned closer is never nil.
func openAudio(cfg config.GameConfig, seed int64, logger *log.Logger) (platformer.Notifier, func()) {
	if !cfg.Audio.Enabled {
		return nil, func() {}
	}
	backend, err := audio.DetectBackend()
	if err != nil {
		logger.Info("audio disabled", "err", err)
		return nil, func() {}
	}
	out, err := audio.OpenBackend(backend)
	if err != nil {
		logger.Warn("audio disabled", "backend", backend.Name, "err", err)
		return nil, func() {}
	}
	logger.Debug("audio enabled", "backend", backend.Name)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return audio.NewNotifier(out, cfg.Audio.Volume, seed), func() {
		if err := out.Close(); err != nil {
			logger.Debug("audio closed", "err", err)
		}
	}
}

// localSetup gathers everything a local terminal run needs. The cleanup
// function releases audio, the store and the log file.
func localSetup(levelRef string) (tui.Setup, func(), error) {
	logger, closeLog, err := playLogger()
	if err != nil {
		return tui.Setup{}, nil, err
	}

	cfg, err := loadGameConfig()
	if err != nil {
		closeLog()
		return tui.Setup{}, nil, err
	}
	lvl, err := resolveLevel(levelRef, cfg)
	if err != nil {
		closeLog()
		return tui.Setup{}, nil, err
	}

	width, height := terminalSize()
	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store := openStore(logger)
	notifiers := platformer.Notifiers{platformer.LogNotifier{Logger: logger}}
	sound, closeAudio := openAudio(cfg, flagSeed, logger)
	if sound != nil {
		notifiers = append(notifiers, sound)
	}

	setup := tui.Setup{
		Config:   cfg,
		Level:    lvl,
		Runtime:  runtime,
		Store:    store,
		Notifier: notifiers,
		Logger:   logger,
	}
	cleanup := func() {
		closeAudio()
		if store != nil {
			store.Close()
		}
		closeLog()
	}
	return setup, cleanup, nil
}
