// SPDX-License-Identifier: EPL-2.0

package instrument

import (
	"fmt"

	"github.com/ik5/sfzpbx/event"
	"github.com/ik5/sfzpbx/sample"
)

const numNotes = 128

// noteVoices holds the live voices of one note, oldest first. Its backing
// array is allocated once with the per-note limit as capacity.
type noteVoices struct {
	voices []Voice
}

// Instrument owns a set of regions and the voices they spawn. After New it
// must only be used from the goroutine that renders it.
type Instrument struct {
	regions  []Region
	bank     *sample.Bank
	press    PressParams
	max      int
	overflow OverflowPolicy

	notes [numNotes]noteVoices
	// notes that currently hold at least one voice, in strike order
	active []uint8
}

// New validates regions against bank and preallocates every voice slot, so
// Render never allocates.
func New(regions []Region, bank *sample.Bank, opts ...Option) (*Instrument, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	for i := range regions {
		if err := regions[i].validate(bank); err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
	}

	in := &Instrument{
		regions: append([]Region(nil), regions...),
		bank:    bank,
		press: PressParams{
			SampleRate:       o.sampleRate,
			Volume:           o.volume,
			VelocityTracking: o.velocityTracking,
		},
		max:      o.maxVoices,
		overflow: o.overflow,
		active:   make([]uint8, 0, numNotes),
	}

	slots := make([]Voice, numNotes*o.maxVoices)
	for n := range in.notes {
		in.notes[n].voices = slots[n*o.maxVoices : n*o.maxVoices : (n+1)*o.maxVoices]
	}

	return in, nil
}

// Regions returns the instrument's regions in load order.
func (in *Instrument) Regions() []Region { return in.regions }

func (in *Instrument) SampleRate() int { return in.press.SampleRate }

// Bank returns the samples the regions refer to.
func (in *Instrument) Bank() *sample.Bank { return in.bank }

// Render fills left and right with the next block. Events must be sorted by
// Offset; an event takes effect at the first frame whose index reaches its
// offset, so earlier frames reflect the voices as they were before it.
// Events past the end of the block are applied after its last frame.
// Malformed events are skipped. Output is summed without clipping.
func (in *Instrument) Render(events []event.Event, left, right []float32) {
	n := min(len(left), len(right))
	next := 0

	for i := range n {
		for next < len(events) && events[next].Offset <= i {
			in.handle(events[next].Data)
			next++
		}

		var l, r float32
		for _, note := range in.active {
			voices := in.notes[note].voices
			for j := range voices {
				vl, vr := voices[j].Render(in.bank)
				l += vl
				r += vr
			}
		}
		left[i], right[i] = l, r
	}

	for ; next < len(events); next++ {
		in.handle(events[next].Data)
	}

	in.collect()
}

func (in *Instrument) handle(data []byte) {
	msg, err := event.Decode(data)
	if err != nil {
		return
	}

	switch msg.Kind {
	case event.NoteOn:
		in.noteOn(msg.Note, msg.Velocity)
	case event.NoteOff:
		in.noteOff(msg.Note)
	}
}

// noteOn starts a voice for every region that matches; overlapping regions
// layer.
func (in *Instrument) noteOn(note, velocity uint8) {
	for i := range in.regions {
		if in.regions[i].Matches(note, velocity) {
			in.push(note, in.regions[i].Press(note, velocity, in.press))
		}
	}
}

func (in *Instrument) push(note uint8, v Voice) {
	nv := &in.notes[note]

	if len(nv.voices) < in.max {
		if len(nv.voices) == 0 {
			in.active = append(in.active, note)
		}
		nv.voices = append(nv.voices, v)
		return
	}

	// Done voices wait for collect but no longer count against the cap.
	victim := finished(nv.voices)
	if victim < 0 {
		if in.overflow == DropNew {
			return
		}
		victim = oldest(nv.voices)
	}

	copy(nv.voices[victim:], nv.voices[victim+1:])
	nv.voices[len(nv.voices)-1] = v
}

// finished returns the index of the first Done voice, or -1.
func finished(voices []Voice) int {
	for i := range voices {
		if voices[i].state == Done {
			return i
		}
	}
	return -1
}

// oldest picks the live voice to steal: the first Playing one, else the
// first overall.
func oldest(voices []Voice) int {
	for i := range voices {
		if voices[i].state == Playing {
			return i
		}
	}
	return 0
}

func (in *Instrument) noteOff(note uint8) {
	voices := in.notes[note].voices
	for i := range voices {
		voices[i].Release()
	}
}

// AllNotesOff releases every live voice as if each note received a
// note-off.
func (in *Instrument) AllNotesOff() {
	for _, note := range in.active {
		in.noteOff(note)
	}
}

// collect drops Done voices and notes left without voices. It runs once
// per block, after mixing.
func (in *Instrument) collect() {
	kept := 0
	for _, note := range in.active {
		nv := &in.notes[note]

		live := 0
		for _, v := range nv.voices {
			if v.state != Done {
				nv.voices[live] = v
				live++
			}
		}
		nv.voices = nv.voices[:live]

		if live > 0 {
			in.active[kept] = note
			kept++
		}
	}
	in.active = in.active[:kept]
}

// ActiveVoices counts voices that have not finished. It reads render state
// and must be called from the rendering goroutine.
func (in *Instrument) ActiveVoices() int {
	count := 0
	for _, note := range in.active {
		for _, v := range in.notes[note].voices {
			if v.state != Done {
				count++
			}
		}
	}
	return count
}
