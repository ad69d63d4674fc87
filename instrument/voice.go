// SPDX-License-Identifier: EPL-2.0

package instrument

import "github.com/ik5/sfzpbx/sample"

type State uint8

const (
	Playing State = iota
	Releasing
	Done
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Releasing:
		return "releasing"
	default:
		return "done"
	}
}

// Voice is one sounding instance of a Region. It holds a sample handle and
// its own cursor and envelope.
type Voice struct {
	sample    Handle
	position  float64
	delta     float64
	loopMode  LoopMode
	state     State
	volume    float32
	decrement float32
}

func (v *Voice) State() State       { return v.state }
func (v *Voice) Volume() float32    { return v.volume }
func (v *Voice) Position() float64  { return v.position }
func (v *Voice) Delta() float64     { return v.delta }
func (v *Voice) LoopMode() LoopMode { return v.loopMode }
func (v *Voice) Sample() Handle     { return v.sample }

// Release handles a note-off. One-shot voices ignore it and play to the
// end of their sample; every other mode starts the release fade.
func (v *Voice) Release() {
	if v.loopMode == OneShot || v.state != Playing {
		return
	}
	v.state = Releasing
}

// Render produces the voice's next stereo frame and advances it. A Done
// voice, or one whose cursor has run past the sample, renders silence.
func (v *Voice) Render(bank *sample.Bank) (left, right float32) {
	if v.state == Done {
		return 0, 0
	}

	smp := bank.Get(v.sample)
	idx := int(v.position)
	if smp == nil || idx >= smp.Len() {
		v.state = Done
		return 0, 0
	}

	l, r := smp.Interpolate(idx, float32(v.position-float64(idx)))
	left, right = l*v.volume, r*v.volume

	// the frame above was produced at the pre-decrement volume
	if v.state == Releasing {
		v.volume += v.decrement
		if v.volume <= 0 {
			v.volume = 0
			v.state = Done
		}
	}

	v.position += v.delta
	return left, right
}
