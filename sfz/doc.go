// SPDX-License-Identifier: EPL-2.0

// Package sfz parses SFZ instrument definitions.
//
// The parser understands the <control>, <global>, <master>, <group> and
// <region> headers, // and /* */ comments, #define variables and #include
// directives. Opcodes set on <global>, <master> and <group> are inherited
// by the regions that follow them; a region overrides any inherited value.
//
//	def, err := sfz.ParseFile("piano.sfz")
//	for _, region := range def.Regions {
//	    path, _ := def.SamplePath(region)
//	    key, _ := region.Get("pitch_keycenter")
//	    n, err := key.Note() // "c4" and "60" both give 60
//	}
//
// Opcode values are kept as text. Interpreting them, and deciding which
// opcodes matter, is left to the caller. Headers other than the five above
// are skipped and listed in Definition.SkippedHeaders.
package sfz
