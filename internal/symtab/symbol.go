// Package symtab implements the scopes the semantic analyzer resolves names
// in.
//
// Yalle has a single namespace: a ranch, a task and a variable cannot share a
// name anywhere they are both visible. It also forbids shadowing, so a name
// declared in an outer scope (including the built-ins) cannot be declared
// again in an inner one.
package symtab

import (
	"github.com/hassan/yalle/internal/ir"
	"github.com/hassan/yalle/internal/lexer"
	"github.com/hassan/yalle/internal/semantic/types"
)

// SymbolKind says what a name denotes.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolType
)

func (sk SymbolKind) String() string {
	switch sk {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolType:
		return "type"
	default:
		return "unknown"
	}
}

// Symbol is a named entity visible in some scope.
type Symbol struct {
	Name string
	Kind SymbolKind

	// Type is the variable's type, the function's signature or, for a
	// SymbolType, the type the name denotes.
	Type types.Type

	// Entity is the tree node references resolve to: a *ir.Variable or a
	// *ir.Function. It is nil for types.
	Entity ir.Expr

	// Pos is the declaration site; built-ins have the zero position.
	Pos lexer.Position

	Scope *Scope

	// Constant marks brand variables and every built-in.
	Constant bool

	Used bool
}

// String returns a human-readable form.
// Example: "variable x: int at Line 1, col 5"
func (s *Symbol) String() string {
	result := s.Kind.String() + " " + s.Name + ": " + s.Type.String()
	if s.Pos.IsValid() {
		result += " at " + s.Pos.String()
	}
	return result
}

// MarkUsed records that the symbol was referenced.
func (s *Symbol) MarkUsed() {
	s.Used = true
}

// NewVariable returns a variable symbol whose entity is v.
func NewVariable(v *ir.Variable, pos lexer.Position) *Symbol {
	return &Symbol{
		Name:     v.Name,
		Kind:     SymbolVariable,
		Type:     v.Type,
		Entity:   v,
		Pos:      pos,
		Constant: v.ReadOnly,
	}
}

// NewFunction returns a function symbol whose entity is f.
func NewFunction(f *ir.Function, pos lexer.Position) *Symbol {
	return &Symbol{
		Name:   f.Name,
		Kind:   SymbolFunction,
		Type:   f.Type,
		Entity: f,
		Pos:    pos,
	}
}

// NewType returns a symbol naming t.
func NewType(name string, t types.Type, pos lexer.Position) *Symbol {
	return &Symbol{
		Name:     name,
		Kind:     SymbolType,
		Type:     t,
		Pos:      pos,
		Constant: true,
	}
}
