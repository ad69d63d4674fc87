// SPDX-License-Identifier: EPL-2.0

package event

import (
	"errors"
	"testing"

	"gitlab.com/gomidi/midi/v2"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want Message
	}{
		{name: "note on", data: midi.NoteOn(0, 60, 100), want: Message{Kind: NoteOn, Note: 60, Velocity: 100}},
		{name: "note on channel 9", data: midi.NoteOn(9, 36, 127), want: Message{Kind: NoteOn, Channel: 9, Note: 36, Velocity: 127}},
		{name: "note off", data: midi.NoteOffVelocity(2, 61, 40), want: Message{Kind: NoteOff, Channel: 2, Note: 61, Velocity: 40}},
		{name: "note on zero velocity", data: []byte{0x90, 64, 0}, want: Message{Kind: NoteOff, Note: 64}},
		{name: "control change", data: midi.ControlChange(0, 64, 127), want: Message{Kind: Other}},
		{name: "program change", data: midi.ProgramChange(0, 5), want: Message{Kind: Other}},
		{name: "timing clock", data: []byte{0xF8}, want: Message{Kind: Other}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode(tt.data)
			if err != nil {
				t.Fatalf("Decode(% X) error = %v", tt.data, err)
			}
			if got != tt.want {
				t.Errorf("Decode(% X) = %+v, want %+v", tt.data, got, tt.want)
			}
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	for name, data := range map[string][]byte{
		"empty":           nil,
		"running status":  {60, 100},
		"truncated":       {0x90, 60},
		"too long":        {0x90, 60, 100, 1},
		"data byte high":  {0x90, 0x80, 100},
		"short program":   {0xC0},
		"long aftertouch": {0xD0, 1, 2},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := Decode(data); !errors.Is(err, ErrMalformed) {
				t.Errorf("Decode(% X) error = %v, want ErrMalformed", data, err)
			}
		})
	}
}

func TestDecode_NoAllocs(t *testing.T) {
	on := []byte(midi.NoteOn(0, 60, 100))
	bad := []byte{0x90}

	allocs := testing.AllocsPerRun(100, func() {
		_, _ = Decode(on)
		_, _ = Decode(bad)
	})
	if allocs != 0 {
		t.Errorf("Decode allocated %v times per run, want 0", allocs)
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	for k, want := range map[Kind]string{NoteOn: "note-on", NoteOff: "note-off", Other: "other"} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
