package platformer

import "github.com/charmbracelet/log"

// Notifier receives one-way, fire-and-forget notifications from the core.
// Implementations must not call back into the game.
type Notifier interface {
	OnCollectiblePicked(id int)
	OnHazardHit(livesRemaining int)
	OnLivesExhausted()
	OnGoalReached()
	OnRespawn()
	OnJump()
	OnExtraJump()
}

// Event names reported in core.StepResult.Events.
const (
	EventCollectiblePicked = "collectible_picked"
	EventHazardHit         = "hazard_hit"
	EventLivesExhausted    = "lives_exhausted"
	EventGoalReached       = "goal_reached"
	EventRespawn           = "respawn"
	EventJump              = "jump"
	EventExtraJump         = "extra_jump"
)

// NopNotifier ignores every notification.
type NopNotifier struct{}

func (NopNotifier) OnCollectiblePicked(int) {}
func (NopNotifier) OnHazardHit(int)         {}
func (NopNotifier) OnLivesExhausted()       {}
func (NopNotifier) OnGoalReached()          {}
func (NopNotifier) OnRespawn()              {}
func (NopNotifier) OnJump()                 {}
func (NopNotifier) OnExtraJump()            {}

// Notifiers fans every notification out to each element in order.
type Notifiers []Notifier

func (ns Notifiers) OnCollectiblePicked(id int) {
	for _, n := range ns {
		n.OnCollectiblePicked(id)
	}
}

func (ns Notifiers) OnHazardHit(lives int) {
	for _, n := range ns {
		n.OnHazardHit(lives)
	}
}

func (ns Notifiers) OnLivesExhausted() {
	for _, n := range ns {
		n.OnLivesExhausted()
	}
}

func (ns Notifiers) OnGoalReached() {
	for _, n := range ns {
		n.OnGoalReached()
	}
}

func (ns Notifiers) OnRespawn() {
	for _, n := range ns {
		n.OnRespawn()
	}
}

func (ns Notifiers) OnJump() {
	for _, n := range ns {
		n.OnJump()
	}
}

func (ns Notifiers) OnExtraJump() {
	for _, n := range ns {
		n.OnExtraJump()
	}
}

// LogNotifier writes notifications to a structured logger. Jumps are logged
// at debug level, everything else at info.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) OnCollectiblePicked(id int) {
	n.Logger.Info("memory collected", "id", id)
}

func (n LogNotifier) OnHazardHit(lives int) {
	n.Logger.Info("hazard hit", "lives", lives)
}

func (n LogNotifier) OnLivesExhausted() { n.Logger.Info("lives exhausted") }
func (n LogNotifier) OnGoalReached()    { n.Logger.Info("goal reached") }
func (n LogNotifier) OnRespawn()        { n.Logger.Info("respawn") }
func (n LogNotifier) OnJump()           { n.Logger.Debug("jump") }
func (n LogNotifier) OnExtraJump()      { n.Logger.Debug("extra jump") }

// recorder collects event names for the current tick's StepResult.
type recorder struct {
	events *[]string
}

func (r recorder) add(name string) { *r.events = append(*r.events, name) }

func (r recorder) OnCollectiblePicked(int) { r.add(EventCollectiblePicked) }
func (r recorder) OnHazardHit(int)         { r.add(EventHazardHit) }
func (r recorder) OnLivesExhausted()       { r.add(EventLivesExhausted) }
func (r recorder) OnGoalReached()          { r.add(EventGoalReached) }
func (r recorder) OnRespawn()              { r.add(EventRespawn) }
func (r recorder) OnJump()                 { r.add(EventJump) }
func (r recorder) OnExtraJump()            { r.add(EventExtraJump) }
