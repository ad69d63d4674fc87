// SPDX-License-Identifier: EPL-2.0

package sfz

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mustParse(t *testing.T, src string) *Definition {
	t.Helper()

	def, err := Parse(strings.NewReader(src), "/lib/piano")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return def
}

func opcodeValues(d Descriptor) map[string]string {
	m := make(map[string]string, len(d.Opcodes))
	for _, op := range d.Opcodes {
		m[op.Name] = op.Value
	}
	return m
}

func TestParse_Regions(t *testing.T) {
	t.Parallel()

	def := mustParse(t, `
// Upright piano, two zones
<region> sample=C4.wav lokey=c4 hikey=e4 pitch_keycenter=60
<region>
sample=G4.wav
lokey=65 hikey=72 /* inline */ pitch_keycenter=g4
ampeg_release=0.5
`)

	if len(def.Regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(def.Regions))
	}

	first := opcodeValues(def.Regions[0])
	if first["sample"] != "C4.wav" || first["lokey"] != "c4" || first["hikey"] != "e4" {
		t.Errorf("first region = %v", first)
	}

	second := def.Regions[1]
	if second.Line != 4 {
		t.Errorf("second region line = %d, want 4", second.Line)
	}
	op, ok := second.Get("ampeg_release")
	if !ok || op.Value != "0.5" || op.Line != 7 {
		t.Errorf("ampeg_release = %+v, %v; want 0.5 on line 7", op, ok)
	}
	if _, ok := second.Get("sustain"); ok {
		t.Error("Get() found an opcode that was never set")
	}
}

func TestParse_Inheritance(t *testing.T) {
	t.Parallel()

	def := mustParse(t, `
<global> ampeg_release=1 volume=-3
<master> loop_mode=one_shot
<group> lovel=0 hivel=63 ampeg_release=0.2
<region> sample=soft.wav
<region> sample=soft_alt.wav ampeg_release=0.05
<group> lovel=64 hivel=127
<region> sample=loud.wav
<master>
<region> sample=bare.wav
<global>
<region> sample=none.wav
`)

	want := []map[string]string{
		{"ampeg_release": "0.2", "volume": "-3", "loop_mode": "one_shot", "lovel": "0", "hivel": "63", "sample": "soft.wav"},
		{"ampeg_release": "0.05", "volume": "-3", "loop_mode": "one_shot", "lovel": "0", "hivel": "63", "sample": "soft_alt.wav"},
		{"ampeg_release": "1", "volume": "-3", "loop_mode": "one_shot", "lovel": "64", "hivel": "127", "sample": "loud.wav"},
		{"ampeg_release": "1", "volume": "-3", "sample": "bare.wav"},
		{"sample": "none.wav"},
	}

	if len(def.Regions) != len(want) {
		t.Fatalf("got %d regions, want %d", len(def.Regions), len(want))
	}
	for i, w := range want {
		got := opcodeValues(def.Regions[i])
		if len(got) != len(w) {
			t.Errorf("region %d = %v, want %v", i, got, w)
			continue
		}
		for k, v := range w {
			if got[k] != v {
				t.Errorf("region %d %s = %q, want %q", i, k, got[k], v)
			}
		}
	}

	// overriding keeps the inherited position
	if def.Regions[1].Opcodes[0].Name != "ampeg_release" {
		t.Errorf("override moved opcode: %v", def.Regions[1].Opcodes)
	}
}

func TestParse_ControlAndSamplePath(t *testing.T) {
	t.Parallel()

	def := mustParse(t, `
<control> default_path=samples\upright\
<region> sample=Soft Hammer C4.wav lokey=60
<region> sample=/abs/kick.wav
<region> lokey=1
`)

	if def.DefaultPath != `samples\upright\` {
		t.Errorf("DefaultPath = %q", def.DefaultPath)
	}

	path, ok := def.SamplePath(def.Regions[0])
	want := filepath.Join("/lib/piano", "samples", "upright", "Soft Hammer C4.wav")
	if !ok || path != want {
		t.Errorf("SamplePath() = %q, %v; want %q", path, ok, want)
	}

	if path, _ := def.SamplePath(def.Regions[1]); path != filepath.FromSlash("/abs/kick.wav") {
		t.Errorf("absolute SamplePath() = %q", path)
	}

	if _, ok := def.SamplePath(def.Regions[2]); ok {
		t.Error("SamplePath() on a region without sample reported ok")
	}
}

func TestParse_DefineAndSkippedHeaders(t *testing.T) {
	t.Parallel()

	def := mustParse(t, `
#define $KEY 62
#define $KEYHI 64
<curve> curve_index=1 v000=0
<effect> type=reverb
<region> sample=d.wav key=$KEY hikey=$KEYHI
`)

	if len(def.Regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(def.Regions))
	}
	got := opcodeValues(def.Regions[0])
	if got["key"] != "62" || got["hikey"] != "64" {
		t.Errorf("defines not expanded: %v", got)
	}
	if len(def.SkippedHeaders) != 2 || def.SkippedHeaders[0] != "curve" || def.SkippedHeaders[1] != "effect" {
		t.Errorf("SkippedHeaders = %v", def.SkippedHeaders)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "opcode before header", src: "sample=a.wav"},
		{name: "unterminated header", src: "<region sample=a.wav"},
		{name: "header with space", src: "<re gion>"},
		{name: "missing equals", src: "<region> sample a.wav"},
		{name: "unterminated comment", src: "<region> /* sample=a.wav"},
		{name: "bad define", src: "#define KEY 60"},
		{name: "unknown directive", src: "#pragma once"},
		{name: "bad include", src: "#include piano.sfz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(strings.NewReader(tt.src), ".")
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("Parse(%q) error = %v, want ErrSyntax", tt.src, err)
			}
		})
	}
}

func TestParseFile_Include(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	write("common.sfz", "<group> ampeg_release=0.3\n")
	write("main.sfz", "#include \"common.sfz\"\n<region> sample=x.wav\n")
	write("loop.sfz", "#include \"loop.sfz\"\n")

	def, err := ParseFile(filepath.Join(dir, "main.sfz"))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if def.Dir != dir {
		t.Errorf("Dir = %q, want %q", def.Dir, dir)
	}
	if len(def.Regions) != 1 || opcodeValues(def.Regions[0])["ampeg_release"] != "0.3" {
		t.Errorf("included group not applied: %+v", def.Regions)
	}

	if _, err := ParseFile(filepath.Join(dir, "loop.sfz")); !errors.Is(err, ErrIncludeDepth) {
		t.Errorf("recursive include error = %v, want ErrIncludeDepth", err)
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.sfz")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
}
