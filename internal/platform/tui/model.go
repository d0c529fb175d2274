package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/memory-lane/internal/config"
	"github.com/vovakirdan/memory-lane/internal/core"
	"github.com/vovakirdan/memory-lane/internal/level"
	"github.com/vovakirdan/memory-lane/internal/platformer"
	"github.com/vovakirdan/memory-lane/internal/storage"
)

// Setup holds everything a terminal run needs.
type Setup struct {
	Config   config.GameConfig
	Level    *level.Geometry
	Runtime  core.RuntimeConfig
	Store    *storage.Store // optional; nil disables persistence
	Player   string         // ledger and run owner, "" for local play
	Notifier platformer.Notifier
	Logger   *log.Logger
}

// Model is the Bubble Tea model for one platformer run. Quitting and going
// back both end the program; SessionModel intercepts the back request and
// returns to its menu instead.
type Model struct {
	game   *platformer.Game
	host   *Host
	holds  *HoldTracker
	keys   *KeyMapper
	screen *core.Screen
	store  *storage.Store
	player string
	config core.RuntimeConfig
	logger *log.Logger
	now    func() time.Time

	state      core.GameState
	shake      int
	recorded   bool
	quitting   bool
	backToMenu bool
}

// NewModel builds the game for setup and wraps it in a model.
func NewModel(setup Setup) (Model, error) {
	cfg := setup.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := setup.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	host := NewHost()
	var ledger platformer.LedgerStore
	if setup.Store != nil {
		key := storage.PlayerKey(setup.Config.Storage.LedgerKey, setup.Player)
		ledger = setup.Store.Ledger(key, logger)
	}

	game, err := platformer.New(platformer.Options{
		Config:   setup.Config,
		Level:    setup.Level,
		Host:     host,
		Notifier: setup.Notifier,
		Store:    ledger,
		Logger:   logger,
	})
	if err != nil {
		return Model{}, err
	}
	game.Reset(cfg)

	return Model{
		game:   game,
		host:   host,
		holds:  NewHoldTracker(),
		keys:   NewKeyMapper(),
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  setup.Store,
		player: setup.Player,
		config: cfg,
		logger: logger,
		now:    time.Now,
		state:  game.State(),
	}, nil
}

// Init starts the tick loop. The game was reset by NewModel.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.recordRun()
		m.quitting = true
		return m, tea.Quit
	}

	if m.InFinalScene() {
		switch action {
		case core.ActionJump, core.ActionConfirm:
			m.restart()
		case core.ActionBack:
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Leaving mid-run is only offered while the simulation is suspended.
	if action == core.ActionBack {
		if m.state.Paused {
			m.recordRun()
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	}

	m.holds.Press(action, m.now())
	return m, nil
}

// handleTick advances the game one step.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}
	if m.InFinalScene() {
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.holds.Frame(now))
	m.state = result.State

	if m.shake > 0 {
		m.shake--
	}
	for _, ev := range result.Events {
		if ev == platformer.EventHazardHit {
			m.shake = m.config.TicksFor(200)
		}
	}

	if m.InFinalScene() {
		m.holds.Reset()
		m.recordRun()
	}

	return m, tickCmd(m.config.TickRate)
}

// restart begins a new run with a fresh seed.
func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.host.ClearScene()
	m.holds.Reset()
	m.game.Reset(m.config)
	m.state = m.game.State()
	m.shake = 0
	m.recorded = false
}

// recordRun stores the run summary once. Runs that never ticked are skipped.
func (m *Model) recordRun() {
	if m.recorded || m.store == nil || m.game.CurrentTick() == 0 {
		return
	}
	m.recorded = true
	sum := m.game.Summary()
	if err := m.store.RecordRun(m.player, sum); err != nil {
		m.logger.Warn("cannot record run", "level", sum.Level, "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := config.UserPath("screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.Level().ID, timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

func (m Model) draw() {
	if m.InFinalScene() {
		found := 0
		for _, c := range m.game.Level().Collectibles {
			if m.game.Ledger().Has(c.ID) {
				found++
			}
		}
		DrawFinal(m.screen, found, len(m.game.Level().Collectibles))
		return
	}
	DrawGame(m.screen, m.game, m.host, m.shake)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

// InFinalScene reports whether the game handed over to the closing scene.
func (m Model) InFinalScene() bool { return m.host.Scene() != "" }

// Game returns the hosted game.
func (m Model) Game() *platformer.Game { return m.game }

// State returns the state after the last tick.
func (m Model) State() core.GameState { return m.state }

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// Run plays a single run in the terminal until the player quits.
func Run(setup Setup) error {
	model, err := NewModel(setup)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.recordRun()
	}
	return err
}
