package sfz

import "errors"

var (
	// ErrSyntax reports malformed SFZ text
	ErrSyntax = errors.New("sfz: syntax error")

	// ErrInvalidValue is returned by the typed opcode accessors
	ErrInvalidValue = errors.New("sfz: invalid opcode value")

	// ErrIncludeDepth stops runaway #include chains
	ErrIncludeDepth = errors.New("sfz: #include nested too deeply")
)
