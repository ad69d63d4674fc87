// SPDX-License-Identifier: EPL-2.0

package event

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestFromSMF_TempoMap(t *testing.T) {
	t.Parallel()

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(960)

	var conductor smf.Track
	conductor.Add(0, smf.MetaTempo(120))
	conductor.Add(960, smf.MetaTempo(60))
	conductor.Close(0)

	var piano smf.Track
	piano.Add(0, midi.NoteOn(0, 60, 100))
	piano.Add(960, midi.NoteOff(0, 60))
	piano.Add(960, midi.NoteOn(0, 62, 90))
	piano.Close(0)

	if err := s.Add(conductor); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(piano); err != nil {
		t.Fatal(err)
	}

	tl, err := FromSMF(s, 44100)
	if err != nil {
		t.Fatalf("FromSMF() error = %v", err)
	}

	// half a second per quarter at 120 bpm, then a full second at 60 bpm
	want := []struct {
		frame int64
		data  []byte
	}{
		{frame: 0, data: midi.NoteOn(0, 60, 100)},
		{frame: 22050, data: midi.NoteOff(0, 60)},
		{frame: 66150, data: midi.NoteOn(0, 62, 90)},
	}

	if len(tl) != len(want) {
		t.Fatalf("got %d events, want %d: %v", len(tl), len(want), tl)
	}
	for i, w := range want {
		if tl[i].Frame != w.frame || !bytes.Equal(tl[i].Data, w.data) {
			t.Errorf("event %d = {%d % X}, want {%d % X}", i, tl[i].Frame, tl[i].Data, w.frame, w.data)
		}
	}
	if tl.Length() != 66151 {
		t.Errorf("Length() = %d, want 66151", tl.Length())
	}
}

func TestFromSMF_DefaultTempo(t *testing.T) {
	t.Parallel()

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)

	var tr smf.Track
	tr.Add(480, midi.NoteOn(1, 40, 64))
	tr.Close(0)
	if err := s.Add(tr); err != nil {
		t.Fatal(err)
	}

	tl, err := FromSMF(s, 48000)
	if err != nil {
		t.Fatalf("FromSMF() error = %v", err)
	}
	if len(tl) != 1 || tl[0].Frame != 24000 {
		t.Errorf("timeline = %v, want one event at frame 24000", tl)
	}
}

func TestFromSMF_SMPTE(t *testing.T) {
	t.Parallel()

	s := smf.New()
	s.TimeFormat = smf.TimeCode{FramesPerSecond: 25, SubFrames: 40}

	if _, err := FromSMF(s, 44100); !errors.Is(err, ErrUnsupportedTimeFormat) {
		t.Errorf("FromSMF() error = %v, want ErrUnsupportedTimeFormat", err)
	}
}

func TestReadSMF(t *testing.T) {
	t.Parallel()

	s := smf.New()
	var tr smf.Track
	tr.Add(0, midi.NoteOn(0, 72, 80))
	tr.Add(960, midi.NoteOff(0, 72))
	tr.Close(0)
	if err := s.Add(tr); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "song.mid")
	if err := s.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	tl, err := ReadSMF(path, 44100)
	if err != nil {
		t.Fatalf("ReadSMF() error = %v", err)
	}
	if len(tl) != 2 {
		t.Fatalf("got %d events, want 2", len(tl))
	}

	if _, err := ReadSMF(filepath.Join(t.TempDir(), "nope.mid"), 44100); err == nil {
		t.Error("ReadSMF() on a missing file error = nil")
	}
}
