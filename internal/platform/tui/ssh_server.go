package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/memory-lane/internal/config"
	"github.com/vovakirdan/memory-lane/internal/level"
	"github.com/vovakirdan/memory-lane/internal/platformer"
	"github.com/vovakirdan/memory-lane/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.memorylane/host_key.
	HostKeyPath string

	// DBPath is the path to the memories database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game and Level are shared by every session; the level is read-only.
	Game     config.GameConfig
	Level    *level.Geometry
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.memorylane/memorylane.db",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultGameConfig(),
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server. Every user gets their own ledger.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if cfg.Level == nil {
		return nil, errors.New("ssh: level is required")
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "memorylane-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open memories database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = config.UserPath("host_key")
		if hostKeyPath == "" {
			return nil, errors.New("cannot get home directory for host key")
		}
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	user := sshSession.User()
	logger := s.logger.With("user", user)

	setup := Setup{
		Config:   s.config.Game,
		Level:    s.config.Level,
		Store:    s.store,
		Player:   user,
		Notifier: platformer.LogNotifier{Logger: logger},
		Logger:   logger,
	}
	setup.Runtime.ScreenW = pty.Window.Width
	setup.Runtime.ScreenH = pty.Window.Height
	setup.Runtime.TickRate = s.config.TickRate
	setup.Runtime.Seed = time.Now().UnixNano()

	return NewSessionModel(setup), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "level", s.config.Level.ID)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen identifies the view a SessionModel is showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenMemories
)

// SessionModel manages the full flow: menu -> game or gallery -> menu.
// It is the top-level model for SSH sessions and the local menu command.
type SessionModel struct {
	setup    Setup
	current  sessionScreen
	menu     MenuModel
	game     *Model
	memories *MemoriesModel
	err      error
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(setup Setup) SessionModel {
	return SessionModel{
		setup: setup,
		menu:  NewMenuModel(setup.Level.Name, setup.Runtime.ScreenW, setup.Runtime.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.setup.Runtime.ScreenW = wsm.Width
		m.setup.Runtime.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenMemories:
		return m.updateMemories(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Selected() {
	case ChoicePlay:
		setup := m.setup
		setup.Runtime.Seed = time.Now().UnixNano()
		game, err := NewModel(setup)
		if err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		m.game = &game
		m.current = screenGame
		return m, m.game.Init()

	case ChoiceMemories:
		gallery := NewMemoriesModel(m.setup.Level, m.collected(), m.stats(),
			m.setup.Runtime.ScreenW, m.setup.Runtime.ScreenH)
		m.memories = &gallery
		m.current = screenMemories
		return m, m.memories.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		return m.toMenu()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// updateMemories handles updates when the gallery is open.
func (m SessionModel) updateMemories(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.memories.Update(msg)
	if gallery, ok := newModel.(MemoriesModel); ok {
		m.memories = &gallery
	}

	if m.memories.IsGoingBack() {
		return m.toMenu()
	}

	if m.memories.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.game = nil
	m.memories = nil
	m.menu = NewMenuModel(m.setup.Level.Name, m.setup.Runtime.ScreenW, m.setup.Runtime.ScreenH)
	return m, m.menu.Init()
}

// collected loads the player's ledger for the gallery.
func (m SessionModel) collected() []int {
	if m.setup.Store == nil {
		return nil
	}
	key := storage.PlayerKey(m.setup.Config.Storage.LedgerKey, m.setup.Player)
	return m.setup.Store.Ledger(key, m.setup.Logger).Load()
}

func (m SessionModel) stats() *storage.RunStats {
	if m.setup.Store == nil {
		return nil
	}
	stats, err := m.setup.Store.LevelStats(m.setup.Level.ID)
	if err != nil {
		if m.setup.Logger != nil {
			m.setup.Logger.Warn("cannot load run stats", "err", err)
		}
		return nil
	}
	return stats
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenMemories:
		return m.memories.View()
	default:
		return m.menu.View()
	}
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error { return m.err }

// RunSession runs the title menu flow locally.
func RunSession(setup Setup) error {
	p := tea.NewProgram(NewSessionModel(setup), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(SessionModel); ok {
		if m.game != nil {
			m.game.recordRun()
		}
		return m.Err()
	}
	return nil
}
