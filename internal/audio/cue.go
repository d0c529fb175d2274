package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Cue is a named sound effect.
type Cue int

const (
	CueJump    Cue = iota // Happy chirp, sometimes played on a ground jump
	CuePuff               // Air puff on the extra jump
	CueSqueak             // Delayed follow-up to a puff
	CuePickup             // Memory collected
	CueHit                // Hazard damage
	CueGoal               // Goal reached
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CuePuff:
		return "puff"
	case CueSqueak:
		return "squeak"
	case CuePickup:
		return "pickup"
	case CueHit:
		return "hit"
	case CueGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// Cue volumes relative to the master volume.
var cueGain = [cueCount]float64{
	CueJump:   0.8,
	CuePuff:   0.8,
	CueSqueak: 1.0,
	CuePickup: 1.0,
	CueHit:    1.0,
	CueGoal:   1.0,
}

// Synth renders cue at master volume vol. The returned streamer is finite.
func Synth(c Cue, vol float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueJump:
		s = beep.Seq(
			tone(660, 70*time.Millisecond, WaveSquare),
			tone(990, 90*time.Millisecond, WaveSquare),
		)
	case CuePuff:
		d := 180 * time.Millisecond
		s = beep.Mix(
			newVolume(NewEnvelope(NewOscillator(0, d, WaveNoise, SampleRate), d, 10*time.Millisecond, 120*time.Millisecond, SampleRate), 0.6),
			newVolume(tone(70, d, WaveSaw), 0.4),
		)
	case CueSqueak:
		s = beep.Seq(
			tone(1200, 60*time.Millisecond, WaveSine),
			tone(1500, 120*time.Millisecond, WaveSine),
		)
	case CuePickup:
		d := 400 * time.Millisecond
		s = beep.Mix(
			newVolume(tone(880, d, WaveSine), 0.7),
			newVolume(tone(1760, d, WaveSine), 0.3),
		)
	case CueHit:
		s = tone(100, 150*time.Millisecond, WaveSaw)
	case CueGoal:
		s = beep.Seq(
			tone(1046.5, 120*time.Millisecond, WaveSquare),
			tone(1318.51, 120*time.Millisecond, WaveSquare),
			tone(1567.98, 260*time.Millisecond, WaveSquare),
		)
	default:
		return nil
	}
	return newVolume(s, vol*cueGain[c])
}
