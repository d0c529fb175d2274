package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/memory-lane/internal/config"
	"github.com/vovakirdan/memory-lane/internal/core"
	"github.com/vovakirdan/memory-lane/internal/level"
	"github.com/vovakirdan/memory-lane/internal/platformer"
	"github.com/vovakirdan/memory-lane/internal/storage"
)

//go:embed static
var staticFiles embed.FS

const (
	writeWait  = time.Second
	inboxDepth = 32
)

// ServerConfig holds configuration for the web server.
type ServerConfig struct {
	Address  string
	Game     config.GameConfig
	Level    *level.Geometry
	TickRate int
	Store    *storage.Store // optional
	Logger   *log.Logger
}

// Server serves the page and runs one game per websocket connection.
type Server struct {
	cfg      ServerConfig
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a server for cfg.Level.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Level == nil {
		return nil, errors.New("web: level is required")
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Server{
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}, nil
}

// Handler routes "/" to the page and "/ws" to the game socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("/", http.FileServer(http.FS(static)))
	mux.HandleFunc("/ws", s.handleSocket)
	return mux
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Address, "level", s.cfg.Level.ID)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	player := r.URL.Query().Get("player")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "player", player, "err", err)
		return
	}
	defer conn.Close()

	logger := s.logger.With("player", player, "remote", r.RemoteAddr)
	sess, err := s.newSession(conn, player, logger)
	if err != nil {
		logger.Error("cannot start game", "err", err)
		return
	}

	logger.Info("session started")
	sess.run(r.Context())
	sess.recordRun()
	logger.Info("session ended", "ticks", sess.game.CurrentTick())
}

// session is one browser connection. Only run touches the game and writes
// to the socket; readLoop feeds it through inbox.
type session struct {
	game   *platformer.Game
	bridge *Bridge
	conn   *websocket.Conn
	store  *storage.Store
	player string
	rate   int
	logger *log.Logger

	inbox   chan clientMessage
	signals core.Signals
	jumped  bool // a jump press arrived since the last tick
}

func (s *Server) newSession(conn *websocket.Conn, player string, logger *log.Logger) (*session, error) {
	bridge := &Bridge{}

	var ledger platformer.LedgerStore
	if s.cfg.Store != nil {
		ledger = s.cfg.Store.Ledger(storage.PlayerKey(s.cfg.Game.Storage.LedgerKey, player), logger)
	}

	game, err := platformer.New(platformer.Options{
		Config:   s.cfg.Game,
		Level:    s.cfg.Level,
		Host:     bridge,
		Notifier: platformer.LogNotifier{Logger: logger},
		Store:    ledger,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	game.Reset(core.RuntimeConfig{TickRate: s.cfg.TickRate, Seed: time.Now().UnixNano()})
	bridge.Drain()

	return &session{
		game:   game,
		bridge: bridge,
		conn:   conn,
		store:  s.cfg.Store,
		player: player,
		rate:   s.cfg.TickRate,
		logger: logger,
		inbox:  make(chan clientMessage, inboxDepth),
	}, nil
}

// run drives the game until the client leaves or ctx ends.
func (s *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := s.write(newLevelMessage(s.game.Level())); err != nil {
		return
	}

	go s.readLoop(ctx)

	ticker := time.NewTicker(time.Second / time.Duration(s.rate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case msg, ok := <-s.inbox:
			if !ok {
				return
			}
			s.apply(msg)
			if err := s.flush(nil); err != nil {
				return
			}

		case <-ticker.C:
			res := s.game.Tick(s.nextSignals())
			if err := s.flush(&res); err != nil {
				return
			}
		}
	}
}

// readLoop decodes client messages until the socket closes.
func (s *session) readLoop(ctx context.Context) {
	defer close(s.inbox)

	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logger.Debug("discarding malformed message", "err", err)
			continue
		}

		select {
		case s.inbox <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// apply handles one client command on the game goroutine.
func (s *session) apply(msg clientMessage) {
	switch msg.Type {
	case TypeInput:
		s.signals = msg.signals()
		s.jumped = s.jumped || s.signals.JumpPressed
	case TypeDismiss:
		s.game.DismissOverlay()
	case TypePause:
		if err := s.game.TogglePause(); err != nil {
			s.logger.Debug("pause ignored", "err", err)
		}
	case TypeRestart:
		s.recordRun()
		s.game.Reset(core.RuntimeConfig{TickRate: s.rate, Seed: time.Now().UnixNano()})
		s.signals = core.Signals{}
		s.jumped = false
	default:
		s.logger.Debug("unknown message type", "type", msg.Type)
	}
}

// nextSignals returns the input for the coming tick. A jump pressed and
// released between two ticks is still seen as pressed for one tick.
func (s *session) nextSignals() core.Signals {
	sig := s.signals
	if s.jumped {
		sig.JumpPressed = true
		s.jumped = false
	}
	return sig
}

// flush sends queued host messages, then the tick's events and frame.
func (s *session) flush(res *core.StepResult) error {
	for _, msg := range s.bridge.Drain() {
		if err := s.write(msg); err != nil {
			return err
		}
	}
	if res == nil {
		return nil
	}
	for _, ev := range res.Events {
		if err := s.write(eventMessage{Type: TypeEvent, Event: ev}); err != nil {
			return err
		}
	}
	return s.write(newFrameMessage(s.game, res.State))
}

func (s *session) write(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Warn("cannot marshal message", "err", err)
		return nil
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// recordRun stores the run if it ticked at all.
func (s *session) recordRun() {
	if s.store == nil || s.game.CurrentTick() == 0 {
		return
	}
	sum := s.game.Summary()
	if err := s.store.RecordRun(s.player, sum); err != nil {
		s.logger.Warn("cannot record run", "level", sum.Level, "err", err)
	}
}
