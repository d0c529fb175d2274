package audio

import (
	"math/rand"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/memory-lane/internal/platformer"
)

// Sink accepts finite streamers for playback.
type Sink interface {
	Play(s beep.Streamer)
}

const squeakDelay = 800 * time.Millisecond

// Notifier turns platformer notifications into cues. Some cues only play
// half of the time; the coin flips come from a seeded source so runs are
// reproducible.
type Notifier struct {
	platformer.NopNotifier

	sink   Sink
	volume float64
	rng    *rand.Rand
}

// NewNotifier plays cues at volume (0..1) on sink.
func NewNotifier(sink Sink, volume float64, seed int64) *Notifier {
	return &Notifier{
		sink:   sink,
		volume: volume,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (n *Notifier) play(c Cue) {
	n.sink.Play(Synth(c, n.volume))
}

func (n *Notifier) chance() bool { return n.rng.Float64() > 0.5 }

func (n *Notifier) OnJump() {
	if n.chance() {
		n.play(CueJump)
	}
}

func (n *Notifier) OnExtraJump() {
	n.play(CuePuff)
	if n.chance() {
		n.sink.Play(beep.Seq(beep.Silence(SampleRate.N(squeakDelay)), Synth(CueSqueak, n.volume)))
	}
}

func (n *Notifier) OnCollectiblePicked(int) { n.play(CuePickup) }
func (n *Notifier) OnGoalReached()          { n.play(CueGoal) }

// OnHazardHit plays only for survivable hits; the last life is silent.
func (n *Notifier) OnHazardHit(lives int) {
	if lives > 0 {
		n.play(CueHit)
	}
}

var _ platformer.Notifier = (*Notifier)(nil)
