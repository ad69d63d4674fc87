// SPDX-License-Identifier: EPL-2.0

package event

import (
	"gitlab.com/gomidi/midi/v2"
)

// Event is a raw MIDI message scheduled at a sample offset inside one
// render block.
type Event struct {
	Offset int
	Data   []byte
}

type Kind uint8

const (
	Other Kind = iota
	NoteOn
	NoteOff
)

func (k Kind) String() string {
	switch k {
	case NoteOn:
		return "note-on"
	case NoteOff:
		return "note-off"
	default:
		return "other"
	}
}

// Message is the decoded form of an Event the instrument acts on.
type Message struct {
	Kind     Kind
	Channel  uint8
	Note     uint8
	Velocity uint8
}

// Decode classifies raw MIDI bytes. A note-on with velocity 0 decodes as a
// note-off. System messages decode as Other. Running status is not
// accepted, every message must carry its status byte.
//
// Decode does not allocate.
func Decode(data []byte) (Message, error) {
	if !wellFormed(data) {
		return Message{}, ErrMalformed
	}

	msg := midi.Message(data)
	var m Message

	switch {
	case msg.GetNoteStart(&m.Channel, &m.Note, &m.Velocity):
		m.Kind = NoteOn
	case msg.GetNoteOff(&m.Channel, &m.Note, &m.Velocity):
		m.Kind = NoteOff
	case msg.GetNoteEnd(&m.Channel, &m.Note):
		// note-on with velocity 0
		m.Kind = NoteOff
		m.Velocity = 0
	default:
		return Message{}, nil
	}
	return m, nil
}

// wellFormed checks the status byte and the data byte count of channel
// voice messages.
func wellFormed(data []byte) bool {
	if len(data) == 0 || data[0] < 0x80 {
		return false
	}

	var want int
	switch data[0] & 0xF0 {
	case 0x80, 0x90, 0xA0, 0xB0, 0xE0:
		want = 3
	case 0xC0, 0xD0:
		want = 2
	default:
		// system messages are passed through as Other
		return true
	}

	if len(data) != want {
		return false
	}
	for _, b := range data[1:] {
		if b >= 0x80 {
			return false
		}
	}
	return true
}
