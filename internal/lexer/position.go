// Package lexer turns Yalle source text into a stream of tokens for the parser.
package lexer

import "fmt"

// Position is a location in the source text.
//
// Line and Column are 1-based and count runes, so an identifier like
// コンパイラ occupies five columns. Offset is the 0-based byte offset and is
// what positions are ordered by.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders the position the way every diagnostic prefixes it.
// Example: "Line 3, col 15"
func (p Position) String() string {
	return fmt.Sprintf("Line %d, col %d", p.Line, p.Column)
}

// IsValid reports whether the position points at a real line.
// The zero Position is invalid.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// After reports whether p comes strictly after other.
func (p Position) After(other Position) bool {
	return p.Offset > other.Offset
}

// Error is a lexical error anchored at a source position.
type Error struct {
	Pos     Position
	Message string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Message
}
