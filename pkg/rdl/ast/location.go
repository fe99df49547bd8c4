package ast

import "fmt"

// Location identifies where an AST node was defined in a source file.
// It is carried through parsing so validation errors can point at the
// offending line.
type Location struct {
	File   string // Source file path
	Line   int    // 1-based line number
	Column int    // 1-based column number
}

// String returns the location in file:line:column form.
func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsValid returns true if the location carries position information.
func (l Location) IsValid() bool {
	return l.Line > 0
}
