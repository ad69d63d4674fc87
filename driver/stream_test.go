// SPDX-License-Identifier: EPL-2.0

package driver

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/sfzpbx/event"
	"gitlab.com/gomidi/midi/v2"
)

func frameAt(buf []byte, i int) (left, right float32) {
	left = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*bytesPerFrame:]))
	right = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*bytesPerFrame+4:]))
	return left, right
}

func TestStream_LiveEvents(t *testing.T) {
	t.Parallel()

	stream, err := NewStream(testInstrument(t, 0), 16)
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]byte, 16*bytesPerFrame)
	if _, err := io.ReadFull(stream, buf); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if l, r := frameAt(buf, 0); l != 0 || r != 0 {
		t.Errorf("silent stream frame = (%v, %v)", l, r)
	}

	if !stream.Send(midi.NoteOn(0, 60, 100)) {
		t.Fatal("Send() dropped with an empty queue")
	}
	if _, err := io.ReadFull(stream, buf); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if l, r := frameAt(buf, 0); math.Abs(float64(l)-0.4) > 1e-6 || math.Abs(float64(r)-0.4) > 1e-6 {
		t.Errorf("frame after note-on = (%v, %v), want 0.4", l, r)
	}

	if stream.Frames() != 32 || stream.Finished() {
		t.Errorf("Frames() = %d Finished() = %v, want 32 false", stream.Frames(), stream.Finished())
	}
}

func TestStream_PartialReads(t *testing.T) {
	t.Parallel()

	stream, err := NewStream(testInstrument(t, 0), 8)
	if err != nil {
		t.Fatal(err)
	}
	stream.Send(midi.NoteOn(0, 60, 100))

	// odd sizes straddle block boundaries
	got := make([]byte, 0, 20*bytesPerFrame)
	chunk := make([]byte, 13)
	for len(got) < cap(got) {
		n, err := stream.Read(chunk[:min(len(chunk), cap(got)-len(got))])
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		got = append(got, chunk[:n]...)
	}

	for i := range 20 {
		if l, _ := frameAt(got, i); math.Abs(float64(l)-0.4) > 1e-6 {
			t.Fatalf("frame %d = %v, want 0.4", i, l)
		}
	}
}

func TestStream_QueueFullDrops(t *testing.T) {
	t.Parallel()

	stream, err := NewStream(testInstrument(t, 0), 16, WithQueueSize(2))
	if err != nil {
		t.Fatal(err)
	}

	results := []bool{
		stream.Send(midi.NoteOn(0, 60, 100)),
		stream.Send(midi.NoteOn(0, 62, 100)),
		stream.Send(midi.NoteOn(0, 64, 100)),
	}
	if !results[0] || !results[1] || results[2] {
		t.Errorf("Send() results = %v, want [true true false]", results)
	}
	if stream.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", stream.Dropped())
	}

	// draining frees the queue again
	buf := make([]byte, 16*bytesPerFrame)
	if _, err := io.ReadFull(stream, buf); err != nil {
		t.Fatal(err)
	}
	if !stream.Send(midi.NoteOff(0, 60)) {
		t.Error("Send() dropped after the queue was drained")
	}
}

func TestStream_TimelineEnds(t *testing.T) {
	t.Parallel()

	tl := event.Timeline{
		{Frame: 4, Data: midi.NoteOn(0, 60, 100)},
		{Frame: 20, Data: midi.NoteOff(0, 60)},
	}
	stream, err := NewStream(testInstrument(t, 0.001), 16, WithTimeline(tl), WithTail(32))
	if err != nil {
		t.Fatal(err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !stream.Finished() {
		t.Error("Finished() = false after EOF")
	}

	frames := len(data) / bytesPerFrame
	if frames%16 != 0 || frames < 48 {
		t.Errorf("rendered %d frames, want whole blocks covering timeline and tail", frames)
	}
	if l, _ := frameAt(data, 3); l != 0 {
		t.Errorf("frame 3 = %v, want silence before the note-on", l)
	}
	if l, _ := frameAt(data, 4); math.Abs(float64(l)-0.4) > 1e-6 {
		t.Errorf("frame 4 = %v, want 0.4", l)
	}

	if n, err := stream.Read(make([]byte, 8)); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("Read() after end = %d, %v; want 0, EOF", n, err)
	}
}

func TestStream_Stop(t *testing.T) {
	t.Parallel()

	tl := event.Timeline{
		{Frame: 0, Data: midi.NoteOn(0, 60, 100)},
		{Frame: 1 << 20, Data: midi.NoteOff(0, 60)},
	}
	stream, err := NewStream(testInstrument(t, 0.001), 16, WithTimeline(tl))
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]byte, 16*bytesPerFrame)
	if _, err := io.ReadFull(stream, buf); err != nil {
		t.Fatal(err)
	}

	stream.Stop()
	stream.Send(midi.NoteOn(0, 64, 100))

	data, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if !stream.Finished() {
		t.Error("Finished() = false after Stop and EOF")
	}

	// 0.001s at 44.1 kHz releases within 45 frames
	if frames := len(data) / bytesPerFrame; frames > 64 {
		t.Errorf("rendered %d frames after Stop, want the release only", frames)
	}
	if l, _ := frameAt(data, len(data)/bytesPerFrame-1); l != 0 {
		t.Errorf("last frame = %v, want silence", l)
	}
}

func TestNewStream_InvalidBlockSize(t *testing.T) {
	t.Parallel()

	if _, err := NewStream(testInstrument(t, 0), 0); !errors.Is(err, ErrInvalidBlockSize) {
		t.Errorf("NewStream() error = %v, want ErrInvalidBlockSize", err)
	}
}

func TestStream_DenseTimelineKeepsBuffers(t *testing.T) {
	t.Parallel()

	tl := make(event.Timeline, 0, 200)
	for i := range 100 {
		f := int64(i * 16 / 100)
		tl = append(tl, event.Timed{Frame: f, Data: midi.NoteOn(0, uint8(i), 100)})
	}
	for i := range 100 {
		tl = append(tl, event.Timed{Frame: 16, Data: midi.NoteOff(0, uint8(i))})
	}

	stream, err := NewStream(testInstrument(t, 0), 16, WithTimeline(tl), WithQueueSize(4))
	if err != nil {
		t.Fatal(err)
	}
	want := cap(stream.events)
	if want != 4+100 {
		t.Fatalf("event buffer capacity = %d, want 104", want)
	}

	for range 10 {
		stream.Send(midi.NoteOn(0, 60, 100))
	}
	if _, err := io.ReadAll(stream); err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if got := cap(stream.events); got != want {
		t.Errorf("event buffer grew from %d to %d while rendering", want, got)
	}
}
