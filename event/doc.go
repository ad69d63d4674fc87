// SPDX-License-Identifier: EPL-2.0

// Package event carries MIDI input to the instrument.
//
// An Event is a raw MIDI message tagged with a sample offset inside one
// render block. Decode turns the raw bytes into a Message the instrument
// understands, classifying them as note-on, note-off or other:
//
//	msg, err := event.Decode(ev.Data)
//	if errors.Is(err, event.ErrMalformed) {
//	    // skip
//	}
//
// Songs come from Standard MIDI Files. FromSMF merges all tracks, follows
// the tempo map and stamps every channel message with an absolute frame.
// A Scheduler then cuts that timeline into per-block event slices:
//
//	tl, _ := event.ReadSMF("song.mid", 44100)
//	sched := event.NewScheduler(tl, 64)
//	for !sched.Done() {
//	    inst.Render(sched.Next(512), left, right)
//	}
package event
