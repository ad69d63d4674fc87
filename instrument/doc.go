// SPDX-License-Identifier: EPL-2.0

// Package instrument is the sampler engine: regions, voices and the block
// renderer that mixes them.
//
// # Regions and Voices
//
// A Region binds a key and velocity zone to a sample. When a note-on
// matches a region, Press creates a Voice that plays the sample at a rate
// of NoteFrequency(note) / PitchFrequency, using linear interpolation
// between frames. Overlapping regions all sound.
//
// Voices move through three states:
//
//	Playing   -> Releasing   on note-off (no_loop)
//	Playing   -> Done        at the end of the sample
//	Releasing -> Done        once the linear fade reaches zero
//
// one_shot voices ignore note-off. loop_continuous and loop_sustain are
// parsed but play as no_loop; loop points are not supported.
//
// # Rendering
//
// Render takes a block of output and the MIDI events that fall inside it,
// each with a frame offset. Events take effect on their frame exactly:
//
//	left := make([]float32, 512)
//	right := make([]float32, 512)
//	inst.Render([]event.Event{
//	    {Offset: 0, Data: midi.NoteOn(0, 60, 100)},
//	    {Offset: 300, Data: midi.NoteOff(0, 60)},
//	}, left, right)
//
// Render does not allocate, lock or log. Each note holds at most
// WithMaxVoicesPerNote voices; a further strike follows the
// OverflowPolicy. Voices that finished are dropped after the block.
// Output is not clipped.
//
// # Loading
//
// Load reads an SFZ file and decodes its samples in parallel:
//
//	inst, err := instrument.Load(ctx, "piano.sfz",
//	    instrument.WithSampleRate(48000),
//	    instrument.WithVelocityTracking(1),
//	)
//
// The recognized opcodes are sample, loop_mode, lokey, hikey, key, lovel,
// hivel, pitch_keycenter and ampeg_release. Others are logged once per
// name and ignored. Samples whose rate differs from the render rate are
// logged as warnings; they are not resampled.
package instrument
