// SPDX-License-Identifier: EPL-2.0

package instrument_test

import (
	"fmt"

	"github.com/ik5/sfzpbx/event"
	"github.com/ik5/sfzpbx/instrument"
	"github.com/ik5/sfzpbx/sample"
	"gitlab.com/gomidi/midi/v2"
)

func Example() {
	ramp := &sample.Sample{
		Identity: "ramp",
		Left:     []float32{0, 0.25, 0.5, 0.75, 1},
		Right:    []float32{0, 0.25, 0.5, 0.75, 1},
	}
	bank := sample.NewBank(ramp)

	region := instrument.NewRegion(0)
	inst, err := instrument.New([]instrument.Region{region}, bank, instrument.WithVolume(1))
	if err != nil {
		fmt.Println(err)
		return
	}

	left := make([]float32, 4)
	right := make([]float32, 4)

	// an octave below the key center reads the sample at half speed
	inst.Render([]event.Event{{Offset: 1, Data: midi.NoteOn(0, 48, 100)}}, left, right)
	fmt.Printf("%.3f\n", left)
	fmt.Println("voices:", inst.ActiveVoices())

	// Output:
	// [0.000 0.000 0.125 0.250]
	// voices: 1
}

func ExampleRegion_Matches() {
	r := instrument.Region{LowKey: 60, HighKey: 64, LowVelocity: 1, HighVelocity: 127}

	fmt.Println(r.Matches(60, 100), r.Matches(64, 127), r.Matches(65, 100), r.Matches(62, 0))
	// Output: true true false false
}

func ExampleNoteFrequency() {
	fmt.Printf("%.2f %.2f\n", instrument.NoteFrequency(69), instrument.NoteFrequency(60))
	// Output: 440.00 261.63
}
