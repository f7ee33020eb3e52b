package ast

import (
	"strings"

	"github.com/hassan/yalle/internal/lexer"
)

// NamedType is a type referred to by name: int, string, a ranch name.
type NamedType struct {
	Name *IdentifierExpr
}

func (t *NamedType) Pos() lexer.Position { return t.Name.Pos() }
func (t *NamedType) End() lexer.Position { return t.Name.End() }
func (t *NamedType) typeNode()           {}
func (t *NamedType) String() string      { return t.Name.Name }

// ArrayType is [Element].
type ArrayType struct {
	LeftBracket  lexer.Token
	Element      TypeExpr
	RightBracket lexer.Token
}

func (t *ArrayType) Pos() lexer.Position { return t.LeftBracket.Position }
func (t *ArrayType) End() lexer.Position { return t.RightBracket.End() }
func (t *ArrayType) typeNode()           {}
func (t *ArrayType) String() string      { return "[" + TypeString(t.Element) + "]" }

// OptionalType is Base?.
type OptionalType struct {
	Base     TypeExpr
	Question lexer.Token
}

func (t *OptionalType) Pos() lexer.Position { return t.Base.Pos() }

// End is computed from the base since ?? in a type stands for two
// optional markers sharing one token.
func (t *OptionalType) End() lexer.Position {
	end := t.Base.End()
	end.Column++
	end.Offset++
	return end
}
func (t *OptionalType) typeNode()      {}
func (t *OptionalType) String() string { return TypeString(t.Base) + "?" }

// FunctionType is (Params...)->Returns.
type FunctionType struct {
	LeftParen lexer.Token
	Params    []TypeExpr
	Returns   TypeExpr
}

func (t *FunctionType) Pos() lexer.Position { return t.LeftParen.Position }
func (t *FunctionType) End() lexer.Position { return t.Returns.End() }
func (t *FunctionType) typeNode()           {}
func (t *FunctionType) String() string {
	params := make([]string, len(t.Params))
	for i, param := range t.Params {
		params[i] = TypeString(param)
	}
	return "(" + strings.Join(params, ", ") + ")->" + TypeString(t.Returns)
}

// TypeString renders a type expression as it would be written.
func TypeString(t TypeExpr) string {
	if s, ok := t.(interface{ String() string }); ok {
		return s.String()
	}
	return "?"
}
