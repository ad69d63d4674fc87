// SPDX-License-Identifier: EPL-2.0

package sfz

import (
	"path/filepath"
	"strings"
)

// Descriptor is one <region> with every inherited opcode already applied.
type Descriptor struct {
	Opcodes []Opcode
	// Line of the <region> header.
	Line int
}

// Get returns the effective opcode called name.
func (d Descriptor) Get(name string) (Opcode, bool) {
	for _, op := range d.Opcodes {
		if op.Name == name {
			return op, true
		}
	}
	return Opcode{}, false
}

// Definition is a parsed SFZ file.
type Definition struct {
	// Dir is the directory sample paths are relative to, normally the
	// directory holding the .sfz file.
	Dir string
	// DefaultPath comes from the <control> header.
	DefaultPath string
	Control     []Opcode
	Regions     []Descriptor
	// SkippedHeaders lists headers that were parsed but not interpreted,
	// such as <curve> or <effect>.
	SkippedHeaders []string
}

// SamplePath resolves the sample opcode of d against Dir and DefaultPath.
// Windows separators are accepted since most SFZ libraries are authored
// with them.
func (def *Definition) SamplePath(d Descriptor) (string, bool) {
	op, ok := d.Get("sample")
	if !ok || op.Value == "" {
		return "", false
	}

	p := filepath.FromSlash(toSlash(op.Value))
	if filepath.IsAbs(p) {
		return p, true
	}
	return filepath.Join(def.Dir, filepath.FromSlash(toSlash(def.DefaultPath)), p), true
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
