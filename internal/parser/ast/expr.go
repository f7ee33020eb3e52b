package ast

import (
	"github.com/hassan/yalle/internal/lexer"
)

// BinaryExpr is left op right, for every binary operator including ?? and
// the logical ones.
type BinaryExpr struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (b *BinaryExpr) Pos() lexer.Position { return b.Left.Pos() }
func (b *BinaryExpr) End() lexer.Position { return b.Right.End() }
func (b *BinaryExpr) exprNode()           {}
func (b *BinaryExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitBinaryExpr(b)
}

// UnaryExpr is a prefix operation: -x, !x, #a, random a, someodd x.
type UnaryExpr struct {
	Operator lexer.Token
	Operand  Expr
}

func (u *UnaryExpr) Pos() lexer.Position { return u.Operator.Position }
func (u *UnaryExpr) End() lexer.Position { return u.Operand.End() }
func (u *UnaryExpr) exprNode()           {}
func (u *UnaryExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitUnaryExpr(u)
}

// ConditionalExpr is test ? then : else.
type ConditionalExpr struct {
	Condition Expr
	Question  lexer.Token
	Then      Expr
	Else      Expr
}

func (c *ConditionalExpr) Pos() lexer.Position { return c.Condition.Pos() }
func (c *ConditionalExpr) End() lexer.Position { return c.Else.End() }
func (c *ConditionalExpr) exprNode()           {}
func (c *ConditionalExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitConditionalExpr(c)
}

// LiteralExpr is a number, string or boolean.
//
// Value holds an int64, float64, string (already unescaped) or bool.
type LiteralExpr struct {
	Token lexer.Token
	Value interface{}
}

func (l *LiteralExpr) Pos() lexer.Position { return l.Token.Position }
func (l *LiteralExpr) End() lexer.Position { return l.Token.End() }
func (l *LiteralExpr) exprNode()           {}
func (l *LiteralExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitLiteralExpr(l)
}

// IdentifierExpr is a name.
type IdentifierExpr struct {
	Token lexer.Token
	Name  string
}

func (i *IdentifierExpr) Pos() lexer.Position { return i.Token.Position }
func (i *IdentifierExpr) End() lexer.Position { return i.Token.End() }
func (i *IdentifierExpr) exprNode()           {}
func (i *IdentifierExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitIdentifierExpr(i)
}

// CallExpr is callee(args) or callee\_args_/. The callee may be a task, a
// ranch or any expression of function type.
type CallExpr struct {
	Callee     Expr
	LeftParen  lexer.Token
	Args       []Expr
	RightParen lexer.Token
}

func (c *CallExpr) Pos() lexer.Position { return c.Callee.Pos() }
func (c *CallExpr) End() lexer.Position { return c.RightParen.End() }
func (c *CallExpr) exprNode()           {}
func (c *CallExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitCallExpr(c)
}

// IndexExpr is array[index].
type IndexExpr struct {
	Object       Expr
	LeftBracket  lexer.Token
	Index        Expr
	RightBracket lexer.Token
}

func (i *IndexExpr) Pos() lexer.Position { return i.Object.Pos() }
func (i *IndexExpr) End() lexer.Position { return i.RightBracket.End() }
func (i *IndexExpr) exprNode()           {}
func (i *IndexExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitIndexExpr(i)
}

// MemberExpr is object.member or object?.member.
type MemberExpr struct {
	Object Expr
	Dot    lexer.Token
	Member *IdentifierExpr
}

// IsOptional reports whether the access uses ?.
func (m *MemberExpr) IsOptional() bool {
	return m.Dot.Type == lexer.TokenQuestionDot
}

func (m *MemberExpr) Pos() lexer.Position { return m.Object.Pos() }
func (m *MemberExpr) End() lexer.Position { return m.Member.End() }
func (m *MemberExpr) exprNode()           {}
func (m *MemberExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitMemberExpr(m)
}

// GroupingExpr is a parenthesized expression, with either kind of paren.
type GroupingExpr struct {
	LeftParen  lexer.Token
	Expr       Expr
	RightParen lexer.Token
}

func (g *GroupingExpr) Pos() lexer.Position { return g.LeftParen.Position }
func (g *GroupingExpr) End() lexer.Position { return g.RightParen.End() }
func (g *GroupingExpr) exprNode()           {}
func (g *GroupingExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitGroupingExpr(g)
}

// ArrayLiteralExpr is [e1, e2, ...] with at least one element.
type ArrayLiteralExpr struct {
	LeftBracket  lexer.Token
	Elements     []Expr
	RightBracket lexer.Token
}

func (a *ArrayLiteralExpr) Pos() lexer.Position { return a.LeftBracket.Position }
func (a *ArrayLiteralExpr) End() lexer.Position { return a.RightBracket.End() }
func (a *ArrayLiteralExpr) exprNode()           {}
func (a *ArrayLiteralExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitArrayLiteralExpr(a)
}

// EmptyArrayExpr is [T](), an empty array of element type T.
type EmptyArrayExpr struct {
	Type       *ArrayType
	RightParen lexer.Token
}

func (e *EmptyArrayExpr) Pos() lexer.Position { return e.Type.Pos() }
func (e *EmptyArrayExpr) End() lexer.Position { return e.RightParen.End() }
func (e *EmptyArrayExpr) exprNode()           {}
func (e *EmptyArrayExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitEmptyArrayExpr(e)
}

// EmptyOptionalExpr is no T, an absent value of type T?.
type EmptyOptionalExpr struct {
	No   lexer.Token
	Type TypeExpr
}

func (e *EmptyOptionalExpr) Pos() lexer.Position { return e.No.Position }
func (e *EmptyOptionalExpr) End() lexer.Position { return e.Type.End() }
func (e *EmptyOptionalExpr) exprNode()           {}
func (e *EmptyOptionalExpr) Accept(v Visitor) (interface{}, error) {
	return v.VisitEmptyOptionalExpr(e)
}
