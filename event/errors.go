package event

import "errors"

var (
	// ErrMalformed is returned by Decode for bytes that are not a complete
	// MIDI message. It is never wrapped so the render path can compare it
	// without allocating.
	ErrMalformed = errors.New("malformed MIDI message")

	// ErrUnsupportedTimeFormat is returned for SMPTE-timed MIDI files
	ErrUnsupportedTimeFormat = errors.New("only metric (ticks per quarter) MIDI files are supported")
)
