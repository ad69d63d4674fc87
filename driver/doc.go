// SPDX-License-Identifier: EPL-2.0

// Package driver feeds an Instrument with blocks and events and collects
// its output.
//
// Offline renders a complete timeline into memory, for writing to a file:
//
//	left, right, err := driver.Offline{BlockSize: 512, Tail: 88200}.
//	    Render(ctx, inst, timeline)
//
// Stream adapts an instrument to an io.Reader of float32 little-endian
// stereo PCM. Player plays a Stream on the sound card with oto:
//
//	stream, _ := driver.NewStream(inst, 512, driver.WithTimeline(timeline))
//	player, err := driver.NewPlayer(stream, 44100, 0)
//	player.Play()
//	player.Send(midi.NoteOn(0, 60, 100)) // from any goroutine
//	err = player.Wait(ctx)
//
// Live events sent with Send go through a bounded queue that the audio
// goroutine drains without blocking. A full queue drops the event and
// counts it in Dropped. Stop releases every note and ends the stream once
// the releases have faded.
package driver
