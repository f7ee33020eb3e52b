// Package ast defines the syntax tree the parser builds.
//
// The tree mirrors the source: identifiers are still names, type annotations
// are still type expressions, and every node can report where it starts and
// ends. Resolving names and computing types is the semantic analyzer's job;
// its output is the annotated tree in package ir.
//
// Operations over the tree use the visitor pattern. Type expressions are few
// and only the analyzer reads them, so they are matched with a type switch
// instead.
package ast

import (
	"github.com/hassan/yalle/internal/lexer"
)

// Node is implemented by every syntax tree node.
type Node interface {
	// Pos returns the position of the node's first token.
	Pos() lexer.Position

	// End returns the position just past the node's last token.
	End() lexer.Position
}

// Expr is an expression node.
type Expr interface {
	Node
	Accept(v Visitor) (interface{}, error)
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	Accept(v Visitor) (interface{}, error)
	stmtNode()
}

// TypeExpr is a type annotation: int, [T], T?, (T, U)->R.
type TypeExpr interface {
	Node
	typeNode()
}

// Visitor is implemented by passes over the syntax tree. Each method returns
// whatever the pass produces for that node.
type Visitor interface {
	// Expressions
	VisitBinaryExpr(expr *BinaryExpr) (interface{}, error)
	VisitUnaryExpr(expr *UnaryExpr) (interface{}, error)
	VisitConditionalExpr(expr *ConditionalExpr) (interface{}, error)
	VisitLiteralExpr(expr *LiteralExpr) (interface{}, error)
	VisitIdentifierExpr(expr *IdentifierExpr) (interface{}, error)
	VisitCallExpr(expr *CallExpr) (interface{}, error)
	VisitIndexExpr(expr *IndexExpr) (interface{}, error)
	VisitMemberExpr(expr *MemberExpr) (interface{}, error)
	VisitGroupingExpr(expr *GroupingExpr) (interface{}, error)
	VisitArrayLiteralExpr(expr *ArrayLiteralExpr) (interface{}, error)
	VisitEmptyArrayExpr(expr *EmptyArrayExpr) (interface{}, error)
	VisitEmptyOptionalExpr(expr *EmptyOptionalExpr) (interface{}, error)

	// Statements
	VisitVarDecl(stmt *VarDecl) (interface{}, error)
	VisitFuncDecl(stmt *FuncDecl) (interface{}, error)
	VisitTypeDecl(stmt *TypeDecl) (interface{}, error)
	VisitIncDecStmt(stmt *IncDecStmt) (interface{}, error)
	VisitAssignStmt(stmt *AssignStmt) (interface{}, error)
	VisitBreakStmt(stmt *BreakStmt) (interface{}, error)
	VisitReturnStmt(stmt *ReturnStmt) (interface{}, error)
	VisitIfStmt(stmt *IfStmt) (interface{}, error)
	VisitWhileStmt(stmt *WhileStmt) (interface{}, error)
	VisitRepeatStmt(stmt *RepeatStmt) (interface{}, error)
	VisitForStmt(stmt *ForStmt) (interface{}, error)
	VisitForRangeStmt(stmt *ForRangeStmt) (interface{}, error)
	VisitPrintStmt(stmt *PrintStmt) (interface{}, error)
	VisitCallStmt(stmt *CallStmt) (interface{}, error)
	VisitBlockStmt(stmt *BlockStmt) (interface{}, error)
}

// Program is the root of the syntax tree: the statements of one source text.
type Program struct {
	Statements []Stmt
	EOF        lexer.Token
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return p.EOF.Position
}

func (p *Program) End() lexer.Position { return p.EOF.Position }
