// SPDX-License-Identifier: EPL-2.0

package sfz

import (
	"fmt"
	"strconv"
	"strings"
)

// Opcode is a single name=value pair as written in the file, after #define
// substitution. Line is where it was defined, which for inherited opcodes is
// the line inside the enclosing <group>, <master> or <global>.
type Opcode struct {
	Name  string
	Value string
	Line  int
}

func (o Opcode) String() string { return o.Name + "=" + o.Value }

func (o Opcode) Int() (int, error) {
	n, err := strconv.Atoi(o.Value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s at line %d", ErrInvalidValue, o, o.Line)
	}
	return n, nil
}

func (o Opcode) Float() (float64, error) {
	f, err := strconv.ParseFloat(o.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s at line %d", ErrInvalidValue, o, o.Line)
	}
	return f, nil
}

// Note accepts a MIDI note number or a note name such as c4, f#3 or eb-1.
func (o Opcode) Note() (uint8, error) {
	n, err := ParseNote(o.Value)
	if err != nil {
		return 0, fmt.Errorf("%w at line %d", err, o.Line)
	}
	return n, nil
}

// semitones from C for each note letter
var noteOffsets = map[byte]int{'c': 0, 'd': 2, 'e': 4, 'f': 5, 'g': 7, 'a': 9, 'b': 11}

// ParseNote converts a note number or name to a MIDI note. Names follow the
// SFZ convention where c4 is 60.
func ParseNote(s string) (uint8, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 127 {
			return 0, fmt.Errorf("%w: note %d out of range", ErrInvalidValue, n)
		}
		return uint8(n), nil
	}

	if len(s) < 2 {
		return 0, fmt.Errorf("%w: note %q", ErrInvalidValue, s)
	}
	base, ok := noteOffsets[s[0]]
	if !ok {
		return 0, fmt.Errorf("%w: note %q", ErrInvalidValue, s)
	}

	rest := s[1:]
	switch {
	case rest[0] == '#':
		base++
		rest = rest[1:]
	case rest[0] == 'b' && len(rest) > 1:
		base--
		rest = rest[1:]
	}

	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: note %q", ErrInvalidValue, s)
	}

	n := (octave+1)*12 + base
	if n < 0 || n > 127 {
		return 0, fmt.Errorf("%w: note %q out of range", ErrInvalidValue, s)
	}
	return uint8(n), nil
}

var noteNames = [12]string{"c", "c#", "d", "d#", "e", "f", "f#", "g", "g#", "a", "a#", "b"}

// NoteName is the inverse of ParseNote, using sharps.
func NoteName(n uint8) string {
	return noteNames[n%12] + strconv.Itoa(int(n)/12-1)
}

// setOpcode replaces an opcode of the same name in place, keeping the
// original ordering, or appends it.
func setOpcode(list []Opcode, op Opcode) []Opcode {
	for i := range list {
		if list[i].Name == op.Name {
			list[i] = op
			return list
		}
	}
	return append(list, op)
}
