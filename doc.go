// SPDX-License-Identifier: EPL-2.0

// Package sfzpbx is a polyphonic sample player for SFZ instruments.
//
// Given an SFZ instrument and a stream of MIDI note events, sfzpbx renders
// stereo audio with sample-accurate event timing, per-voice pitch shifting
// by playback rate, linear release envelopes and bounded polyphony per
// note.
//
// # Supported Formats
//
// Samples can be stored as:
//   - WAV (PCM 16, 24 and 32-bit) via formats/wav
//   - AIFF (PCM 16 and 24-bit) via formats/aiff
//   - FLAC via formats/flac
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// Mono samples are played on both channels. Sources with more than two
// channels are rejected.
//
// # Quick Start
//
// The simplest way to hear an instrument is RenderSMFToWAV:
//
//	frames, err := sfzpbx.RenderSMFToWAV(ctx, "piano.sfz", "song.mid", "song.wav", nil, nil)
//
// # Building Blocks
//
// For real-time use or custom drivers, work with the subpackages:
//
//	inst, err := instrument.Load(ctx, "piano.sfz", instrument.WithSampleRate(48000))
//
//	left := make([]float32, 256)
//	right := make([]float32, 256)
//	inst.Render([]event.Event{
//	    {Offset: 0, Data: midi.NoteOn(0, 60, 100)},
//	}, left, right)
//
// The packages are layered leaf first:
//   - audio and formats/* decode files into float32 samples
//   - sample deduplicates decoded samples and hands out handles
//   - sfz parses instrument definitions
//   - event decodes MIDI and schedules Standard MIDI Files into blocks
//   - instrument holds regions and voices and renders blocks
//   - driver runs an instrument offline or on the sound card
//   - config loads engine settings from YAML
//
// # Real-Time Rules
//
// Instrument.Render never allocates, locks, logs or returns an error.
// Loading happens before rendering starts; afterwards the instrument
// belongs to the goroutine that renders it. Output is summed without
// clipping; only the WAV encoder clamps when converting to integers.
package sfzpbx
