package platformer

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// State is the top-level session mode.
type State int

const (
	StateActive State = iota
	StatePaused
	StateEnded
	StateReviving
)

// String returns the lowercase state name used in logs and snapshots.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	case StateReviving:
		return "reviving"
	default:
		return "unknown"
	}
}

// EndReason tells why a session entered StateEnded.
type EndReason int

const (
	EndNone EndReason = iota
	EndGoalReached
	EndLivesExhausted
)

func (r EndReason) String() string {
	switch r {
	case EndGoalReached:
		return "goal"
	case EndLivesExhausted:
		return "lives_exhausted"
	default:
		return "none"
	}
}

// PauseReason tells who paused the session.
type PauseReason int

const (
	PauseNone PauseReason = iota
	PauseOverlay
	PauseManual
)

func (r PauseReason) String() string {
	switch r {
	case PauseOverlay:
		return "overlay"
	case PauseManual:
		return "manual"
	default:
		return "none"
	}
}

// ErrInvalidTransition is wrapped by every rejected state change.
var ErrInvalidTransition = errors.New("invalid session transition")

// Transition records a single state change.
type Transition struct {
	From   State
	To     State
	Tick   int
	Reason string
}

const maxHistory = 64

// Session is the state machine gating physics and input. The zero value is
// not usable; create sessions with NewSession.
type Session struct {
	state   State
	end     EndReason
	pause   PauseReason
	history []Transition
	logger  *log.Logger
}

// NewSession returns a session in StateActive. A nil logger discards output.
func NewSession(logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{state: StateActive, logger: logger}
}

func (s *Session) State() State             { return s.state }
func (s *Session) EndReason() EndReason     { return s.end }
func (s *Session) PauseReason() PauseReason { return s.pause }

// Active reports whether physics and input are running.
func (s *Session) Active() bool { return s.state == StateActive }

// History returns the most recent transitions, oldest first.
func (s *Session) History() []Transition {
	out := make([]Transition, len(s.history))
	copy(out, s.history)
	return out
}

// Pause suspends an active session.
func (s *Session) Pause(reason PauseReason, tick int) error {
	if s.state != StateActive {
		return s.reject(StatePaused, tick)
	}
	s.pause = reason
	s.move(StatePaused, tick, reason.String())
	return nil
}

// Resume returns a paused session to StateActive.
func (s *Session) Resume(tick int) error {
	if s.state != StatePaused {
		return s.reject(StateActive, tick)
	}
	s.pause = PauseNone
	s.move(StateActive, tick, "resume")
	return nil
}

// End finishes an active session. EndGoalReached is terminal for the run.
func (s *Session) End(reason EndReason, tick int) error {
	if s.state != StateActive || reason == EndNone {
		return s.reject(StateEnded, tick)
	}
	s.end = reason
	s.move(StateEnded, tick, reason.String())
	return nil
}

// BeginRevival moves a session that ended through life loss to StateReviving.
func (s *Session) BeginRevival(tick int) error {
	if s.state != StateEnded || s.end != EndLivesExhausted {
		return s.reject(StateReviving, tick)
	}
	s.move(StateReviving, tick, "revival")
	return nil
}

// Revive confirms a pending revival and reactivates the session.
func (s *Session) Revive(tick int) error {
	if s.state != StateReviving {
		return s.reject(StateActive, tick)
	}
	s.end = EndNone
	s.move(StateActive, tick, "revived")
	return nil
}

func (s *Session) move(to State, tick int, reason string) {
	from := s.state
	s.state = to

	s.history = append(s.history, Transition{From: from, To: to, Tick: tick, Reason: reason})
	if len(s.history) > maxHistory {
		s.history = s.history[len(s.history)-maxHistory:]
	}

	s.logger.Debug("session transition", "from", from, "to", to, "tick", tick, "reason", reason)
}

func (s *Session) reject(to State, tick int) error {
	return fmt.Errorf("session: %s -> %s at tick %d: %w", s.state, to, tick, ErrInvalidTransition)
}
