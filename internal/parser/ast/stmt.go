package ast

import (
	"github.com/hassan/yalle/internal/lexer"
)

// VarDecl is tag name -= e; or brand name -= e;, with an optional type
// annotation after the name.
type VarDecl struct {
	Keyword     lexer.Token
	Name        *IdentifierExpr
	Type        TypeExpr // nil when inferred
	Initializer Expr
	Semicolon   lexer.Token
}

// IsReadOnly reports whether the variable was declared with brand.
func (d *VarDecl) IsReadOnly() bool {
	return d.Keyword.Type == lexer.TokenBrand
}

func (d *VarDecl) Pos() lexer.Position { return d.Keyword.Position }
func (d *VarDecl) End() lexer.Position { return d.Semicolon.End() }
func (d *VarDecl) stmtNode()           {}
func (d *VarDecl) Accept(v Visitor) (interface{}, error) {
	return v.VisitVarDecl(d)
}

// Parameter is one name: Type entry of a task's parameter list.
type Parameter struct {
	Name *IdentifierExpr
	Type TypeExpr
}

// FuncDecl is task name(params): ReturnType ~~{ body }.
type FuncDecl struct {
	Task       lexer.Token
	Name       *IdentifierExpr
	Params     []*Parameter
	ReturnType TypeExpr // nil for void
	Body       *BlockStmt
}

func (d *FuncDecl) Pos() lexer.Position { return d.Task.Position }
func (d *FuncDecl) End() lexer.Position { return d.Body.End() }
func (d *FuncDecl) stmtNode()           {}
func (d *FuncDecl) Accept(v Visitor) (interface{}, error) {
	return v.VisitFuncDecl(d)
}

// FieldDecl is one name: Type entry of a ranch.
type FieldDecl struct {
	Name *IdentifierExpr
	Type TypeExpr
}

// TypeDecl is ranch Name -x-x-x-x- fields -x-x-x-x-.
type TypeDecl struct {
	Ranch  lexer.Token
	Name   *IdentifierExpr
	Fields []*FieldDecl
	Close  lexer.Token
}

func (d *TypeDecl) Pos() lexer.Position { return d.Ranch.Position }
func (d *TypeDecl) End() lexer.Position { return d.Close.End() }
func (d *TypeDecl) stmtNode()           {}
func (d *TypeDecl) Accept(v Visitor) (interface{}, error) {
	return v.VisitTypeDecl(d)
}

// IncDecStmt is target++; or target--;.
type IncDecStmt struct {
	Target    Expr
	Operator  lexer.Token
	Semicolon lexer.Token
}

// IsIncrement reports whether the statement is ++.
func (s *IncDecStmt) IsIncrement() bool {
	return s.Operator.Type == lexer.TokenPlusPlus
}

func (s *IncDecStmt) Pos() lexer.Position { return s.Target.Pos() }
func (s *IncDecStmt) End() lexer.Position { return s.Semicolon.End() }
func (s *IncDecStmt) stmtNode()           {}
func (s *IncDecStmt) Accept(v Visitor) (interface{}, error) {
	return v.VisitIncDecStmt(s)
}

// AssignStmt is target -= value;.
type AssignStmt struct {
	Target    Expr
	Operator  lexer.Token
	Value     Expr
	Semicolon lexer.Token
}

func (s *AssignStmt) Pos() lexer.Position { return s.Target.Pos() }
func (s *AssignStmt) End() lexer.Position { return s.Semicolon.End() }
func (s *AssignStmt) stmtNode()           {}
func (s *AssignStmt) Accept(v Visitor) (interface{}, error) {
	return v.VisitAssignStmt(s)
}

// BreakStmt is whoa;.
type BreakStmt struct {
	Keyword   lexer.Token
	Semicolon lexer.Token
}

func (s *BreakStmt) Pos() lexer.Position { return s.Keyword.Position }
func (s *BreakStmt) End() lexer.Position { return s.Semicolon.End() }
func (s *BreakStmt) stmtNode()           {}
func (s *BreakStmt) Accept(v Visitor) (interface{}, error) {
	return v.VisitBreakStmt(s)
}

// ReturnStmt is roundup; or roundup e;.
type ReturnStmt struct {
	Keyword   lexer.Token
	Value     Expr // nil for a short return
	Semicolon lexer.Token
}

func (s *ReturnStmt) Pos() lexer.Position { return s.Keyword.Position }
func (s *ReturnStmt) End() lexer.Position { return s.Semicolon.End() }
func (s *ReturnStmt) stmtNode()           {}
func (s *ReturnStmt) Accept(v Visitor) (interface{}, error) {
	return v.VisitReturnStmt(s)
}

// IfStmt is iffin test ~~{ } with an optional otherwise. Else is nil, a
// *BlockStmt or an *IfStmt.
type IfStmt struct {
	Keyword   lexer.Token
	Condition Expr
	Then      *BlockStmt
	Else      Stmt
}

func (s *IfStmt) Pos() lexer.Position { return s.Keyword.Position }
func (s *IfStmt) End() lexer.Position {
	if s.Else != nil {
		return s.Else.End()
	}
	return s.Then.End()
}
func (s *IfStmt) stmtNode() {}
func (s *IfStmt) Accept(v Visitor) (interface{}, error) {
	return v.VisitIfStmt(s)
}

// WhileStmt is till test ~~{ body }.
type WhileStmt struct {
	Keyword   lexer.Token
	Condition Expr
	Body      *BlockStmt
}

func (s *WhileStmt) Pos() lexer.Position { return s.Keyword.Position }
func (s *WhileStmt) End() lexer.Position { return s.Body.End() }
func (s *WhileStmt) stmtNode()           {}
func (s *WhileStmt) Accept(v Visitor) (interface{}, error) {
	return v.VisitWhileStmt(s)
}

// RepeatStmt is repeat count ~~{ body }.
type RepeatStmt struct {
	Keyword lexer.Token
	Count   Expr
	Body    *BlockStmt
}

func (s *RepeatStmt) Pos() lexer.Position { return s.Keyword.Position }
func (s *RepeatStmt) End() lexer.Position { return s.Body.End() }
func (s *RepeatStmt) stmtNode()           {}
func (s *RepeatStmt) Accept(v Visitor) (interface{}, error) {
	return v.VisitRepeatStmt(s)
}

// ForStmt is for x in collection ~~{ body }.
type ForStmt struct {
	Keyword    lexer.Token
	Iterator   *IdentifierExpr
	Collection Expr
	Body       *BlockStmt
}

func (s *ForStmt) Pos() lexer.Position { return s.Keyword.Position }
func (s *ForStmt) End() lexer.Position { return s.Body.End() }
func (s *ForStmt) stmtNode()           {}
func (s *ForStmt) Accept(v Visitor) (interface{}, error) {
	return v.VisitForStmt(s)
}

// ForRangeStmt is for i in low..<high ~~{ } or for i in low...high ~~{ }.
type ForRangeStmt struct {
	Keyword  lexer.Token
	Iterator *IdentifierExpr
	Low      Expr
	Operator lexer.Token
	High     Expr
	Body     *BlockStmt
}

// IsInclusive reports whether the range includes High.
func (s *ForRangeStmt) IsInclusive() bool {
	return s.Operator.Type == lexer.TokenRangeInclusive
}

func (s *ForRangeStmt) Pos() lexer.Position { return s.Keyword.Position }
func (s *ForRangeStmt) End() lexer.Position { return s.Body.End() }
func (s *ForRangeStmt) stmtNode()           {}
func (s *ForRangeStmt) Accept(v Visitor) (interface{}, error) {
	return v.VisitForRangeStmt(s)
}

// PrintStmt is holler e;.
type PrintStmt struct {
	Keyword   lexer.Token
	Value     Expr
	Semicolon lexer.Token
}

func (s *PrintStmt) Pos() lexer.Position { return s.Keyword.Position }
func (s *PrintStmt) End() lexer.Position { return s.Semicolon.End() }
func (s *PrintStmt) stmtNode()           {}
func (s *PrintStmt) Accept(v Visitor) (interface{}, error) {
	return v.VisitPrintStmt(s)
}

// CallStmt is a call used as a statement: f(x);.
type CallStmt struct {
	Call      *CallExpr
	Semicolon lexer.Token
}

func (s *CallStmt) Pos() lexer.Position { return s.Call.Pos() }
func (s *CallStmt) End() lexer.Position { return s.Semicolon.End() }
func (s *CallStmt) stmtNode()           {}
func (s *CallStmt) Accept(v Visitor) (interface{}, error) {
	return v.VisitCallStmt(s)
}

// BlockStmt is ~~{ statements }.
type BlockStmt struct {
	LeftBrace  lexer.Token
	Statements []Stmt
	RightBrace lexer.Token
}

func (s *BlockStmt) Pos() lexer.Position { return s.LeftBrace.Position }
func (s *BlockStmt) End() lexer.Position { return s.RightBrace.End() }
func (s *BlockStmt) stmtNode()           {}
func (s *BlockStmt) Accept(v Visitor) (interface{}, error) {
	return v.VisitBlockStmt(s)
}
