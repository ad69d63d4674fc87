// SPDX-License-Identifier: EPL-2.0

package instrument

import (
	"fmt"
	"math"

	"github.com/ik5/sfzpbx/sample"
)

type LoopMode uint8

const (
	NoLoop LoopMode = iota
	OneShot
	// LoopContinuous and LoopSustain are accepted but play as NoLoop until
	// loop points are supported.
	LoopContinuous
	LoopSustain
)

var loopModeNames = [...]string{
	NoLoop:         "no_loop",
	OneShot:        "one_shot",
	LoopContinuous: "loop_continuous",
	LoopSustain:    "loop_sustain",
}

func (m LoopMode) String() string {
	if int(m) < len(loopModeNames) {
		return loopModeNames[m]
	}
	return fmt.Sprintf("LoopMode(%d)", m)
}

// ParseLoopMode accepts the SFZ loop_mode values.
func ParseLoopMode(s string) (LoopMode, error) {
	for i, name := range loopModeNames {
		if name == s {
			return LoopMode(i), nil
		}
	}
	return NoLoop, fmt.Errorf("%w: %q", ErrUnknownLoopMode, s)
}

// NoteFrequency returns the equal-tempered frequency of a MIDI note, with
// A4 (69) at 440 Hz.
func NoteFrequency(note uint8) float64 {
	return 440 * math.Pow(2, (float64(note)-69)/12)
}

// Region maps a key and velocity zone to a sample. Ranges are inclusive.
// Regions are immutable once handed to an Instrument.
type Region struct {
	Sample Handle
	// PitchFrequency is the frequency the sample was recorded at.
	PitchFrequency float64

	LowKey       uint8
	HighKey      uint8
	LowVelocity  uint8
	HighVelocity uint8

	// Release is the linear fade time after note-off, in seconds.
	Release  float64
	LoopMode LoopMode
}

type Handle = sample.Handle

// NewRegion returns a region covering every key and velocity, pitched at
// middle C.
func NewRegion(h Handle) Region {
	return Region{
		Sample:         h,
		PitchFrequency: NoteFrequency(60),
		HighKey:        127,
		HighVelocity:   127,
	}
}

func (r *Region) Matches(note, velocity uint8) bool {
	return note >= r.LowKey && note <= r.HighKey &&
		velocity >= r.LowVelocity && velocity <= r.HighVelocity
}

// PressParams carries the instrument-wide values a new voice depends on.
type PressParams struct {
	SampleRate int
	Volume     float32
	// VelocityTracking blends between a fixed Volume (0) and a volume
	// proportional to velocity (1).
	VelocityTracking float32
}

// Press starts a voice for note. Pitch shifting is done by the playback
// rate: a note one octave above the key center reads the sample twice as
// fast.
func (r *Region) Press(note, velocity uint8, p PressParams) Voice {
	vt := p.VelocityTracking
	volume := p.Volume * (1 - vt + vt*float32(velocity)/127)

	// a release shorter than one sample is gone after one released sample
	releaseSamples := r.Release * float64(p.SampleRate)
	decrement := -volume
	if releaseSamples > 1 {
		decrement = float32(-float64(volume) / releaseSamples)
	}

	return Voice{
		sample:    r.Sample,
		delta:     NoteFrequency(note) / r.PitchFrequency,
		loopMode:  r.LoopMode,
		state:     Playing,
		volume:    volume,
		decrement: decrement,
	}
}

func (r *Region) validate(bank *sample.Bank) error {
	switch {
	case r.LowKey > r.HighKey || r.HighKey > 127:
		return fmt.Errorf("%w: key range %d-%d", ErrInvalidRegion, r.LowKey, r.HighKey)
	case r.LowVelocity > r.HighVelocity || r.HighVelocity > 127:
		return fmt.Errorf("%w: velocity range %d-%d", ErrInvalidRegion, r.LowVelocity, r.HighVelocity)
	case !(r.PitchFrequency > 0) || math.IsInf(r.PitchFrequency, 0):
		return fmt.Errorf("%w: pitch frequency %v", ErrInvalidRegion, r.PitchFrequency)
	case r.Release < 0 || math.IsNaN(r.Release):
		return fmt.Errorf("%w: release %v", ErrInvalidRegion, r.Release)
	case int(r.LoopMode) >= len(loopModeNames):
		return fmt.Errorf("%w: %v", ErrInvalidRegion, r.LoopMode)
	case bank.Get(r.Sample) == nil:
		return fmt.Errorf("%w: sample handle %d not in bank", ErrInvalidRegion, r.Sample)
	}
	return nil
}
