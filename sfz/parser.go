// SPDX-License-Identifier: EPL-2.0

package sfz

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

const maxIncludeDepth = 8

// ParseFile parses the SFZ file at path. Sample paths resolve relative to
// the file's directory.
func ParseFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return parse(data, filepath.Dir(path), filepath.Base(path))
}

// Parse reads SFZ text from r. dir is the base directory for sample paths
// and #include directives.
func Parse(r io.Reader, dir string) (*Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return parse(data, dir, "<input>")
}

func parse(data []byte, dir, name string) (*Definition, error) {
	p := &parser{
		dir:     dir,
		def:     &Definition{Dir: dir},
		defines: make(map[string]string),
	}
	if err := p.parse(data, name); err != nil {
		return nil, err
	}
	p.flushRegion()
	return p.def, nil
}

type parser struct {
	dir     string
	def     *Definition
	defines map[string]string
	depth   int

	header string
	file   string

	global []Opcode
	master []Opcode
	group  []Opcode
	region *Descriptor
}

func (p *parser) errorf(line int, format string, args ...any) error {
	return fmt.Errorf("%s:%d: %w: %s", p.file, line, ErrSyntax, fmt.Sprintf(format, args...))
}

func (p *parser) parse(data []byte, file string) error {
	prevFile := p.file
	p.file = file
	defer func() { p.file = prevFile }()

	text, err := stripComments(data)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	line := 1
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '\n':
			line++
			i++

		case isSpace(c):
			i++

		case c == '<':
			end := bytes.IndexAny(text[i:], ">\n")
			if end < 0 || text[i+end] != '>' {
				return p.errorf(line, "unterminated header")
			}
			name := strings.TrimSpace(string(text[i+1 : i+end]))
			if name == "" || strings.ContainsAny(name, " \t") {
				return p.errorf(line, "invalid header <%s>", name)
			}
			p.openHeader(name, line)
			i += end + 1

		case c == '#':
			end := lineEnd(text, i)
			if err := p.directive(string(text[i:end]), line); err != nil {
				return err
			}
			i = end

		default:
			eq := i
			for eq < len(text) && isNameByte(text[eq]) {
				eq++
			}
			if eq == i || eq >= len(text) || text[eq] != '=' {
				return p.errorf(line, "expected opcode, found %q", text[i:lineEnd(text, i)])
			}

			end := valueEnd(text, eq+1)
			name := p.expand(string(text[i:eq]))
			value := p.expand(strings.TrimSpace(string(text[eq+1 : end])))
			if err := p.opcode(Opcode{Name: name, Value: value, Line: line}); err != nil {
				return err
			}
			i = end
		}
	}
	return nil
}

func (p *parser) openHeader(name string, line int) {
	p.flushRegion()
	p.header = name

	switch name {
	case "control":
	case "global":
		p.global, p.master, p.group = nil, nil, nil
	case "master":
		p.master, p.group = nil, nil
	case "group":
		p.group = nil
	case "region":
		inherited := slices.Clone(p.global)
		for _, op := range p.master {
			inherited = setOpcode(inherited, op)
		}
		for _, op := range p.group {
			inherited = setOpcode(inherited, op)
		}
		p.region = &Descriptor{Opcodes: inherited, Line: line}
	default:
		if !slices.Contains(p.def.SkippedHeaders, name) {
			p.def.SkippedHeaders = append(p.def.SkippedHeaders, name)
		}
	}
}

func (p *parser) flushRegion() {
	if p.region != nil {
		p.def.Regions = append(p.def.Regions, *p.region)
		p.region = nil
	}
}

func (p *parser) opcode(op Opcode) error {
	switch p.header {
	case "":
		return p.errorf(op.Line, "opcode %s outside of a header", op.Name)
	case "control":
		if op.Name == "default_path" {
			p.def.DefaultPath = op.Value
		}
		p.def.Control = setOpcode(p.def.Control, op)
	case "global":
		p.global = setOpcode(p.global, op)
	case "master":
		p.master = setOpcode(p.master, op)
	case "group":
		p.group = setOpcode(p.group, op)
	case "region":
		p.region.Opcodes = setOpcode(p.region.Opcodes, op)
	}
	return nil
}

func (p *parser) directive(s string, line int) error {
	fields := strings.Fields(s)
	switch fields[0] {
	case "#define":
		if len(fields) < 3 || !strings.HasPrefix(fields[1], "$") {
			return p.errorf(line, "malformed #define")
		}
		p.defines[fields[1]] = strings.Join(fields[2:], " ")
		return nil

	case "#include":
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "#include"))
		if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
			return p.errorf(line, "malformed #include")
		}
		return p.include(p.expand(rest[1:len(rest)-1]), line)

	default:
		return p.errorf(line, "unknown directive %s", fields[0])
	}
}

func (p *parser) include(name string, line int) error {
	if p.depth >= maxIncludeDepth {
		return fmt.Errorf("%s:%d: %w", p.file, line, ErrIncludeDepth)
	}

	data, err := os.ReadFile(filepath.Join(p.dir, filepath.FromSlash(toSlash(name))))
	if err != nil {
		return fmt.Errorf("%s:%d: %w", p.file, line, err)
	}

	p.depth++
	defer func() { p.depth-- }()
	return p.parse(data, name)
}

// expand substitutes #define variables, longest name first so $KEY2 is not
// eaten by $KEY.
func (p *parser) expand(s string) string {
	if len(p.defines) == 0 || !strings.Contains(s, "$") {
		return s
	}

	names := make([]string, 0, len(p.defines))
	for name := range p.defines {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	for _, name := range names {
		s = strings.ReplaceAll(s, name, p.defines[name])
	}
	return s
}

// stripComments blanks out // and /* */ comments, keeping newlines so line
// numbers stay accurate.
func stripComments(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	copy(out, data)

	for i := 0; i < len(out); i++ {
		if out[i] != '/' || i+1 >= len(out) {
			continue
		}
		switch out[i+1] {
		case '/':
			end := lineEnd(out, i)
			blank(out[i:end])
			i = end
		case '*':
			end := bytes.Index(out[i+2:], []byte("*/"))
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated block comment", ErrSyntax)
			}
			end += i + 4
			blank(out[i:end])
			i = end - 1
		}
	}
	return out, nil
}

func blank(b []byte) {
	for i := range b {
		if b[i] != '\n' {
			b[i] = ' '
		}
	}
}

// valueEnd finds where an opcode value starting at i stops: at the end of
// the line, at a header, or where the next name= begins. Values may contain
// spaces, which sample paths often do.
func valueEnd(text []byte, i int) int {
	for j := i; j < len(text); j++ {
		switch c := text[j]; {
		case c == '\n', c == '\r', c == '<':
			return j
		case isSpace(c):
			k := j
			for k < len(text) && isSpace(text[k]) {
				k++
			}
			if opcodeStartsAt(text, k) {
				return j
			}
		}
	}
	return len(text)
}

func opcodeStartsAt(text []byte, i int) bool {
	j := i
	for j < len(text) && isNameByte(text[j]) {
		j++
	}
	return j > i && j < len(text) && text[j] == '='
}

func lineEnd(text []byte, i int) int {
	if n := bytes.IndexByte(text[i:], '\n'); n >= 0 {
		return i + n
	}
	return len(text)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func isNameByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
