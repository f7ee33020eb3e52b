// Package ir defines the annotated tree the semantic analyzer produces.
//
// The tree is what the optimizer rewrites and the code generator prints.
// Unlike the parser's syntax tree it carries no positions and no names that
// still need resolving: an identifier in the source becomes the *Variable or
// *Function it refers to, and every expression knows its type.
//
// Each node is an immutable record. Passes that change the tree build new
// nodes and share the untouched subtrees; they never write to a node they
// received.
//
// EXAMPLE:
//
//	tag x -= 1 + 2;
//
// becomes
//
//	&VariableDeclaration{
//	    Variable:    &Variable{Name: "x", Type: types.Int},
//	    Initializer: &BinaryExpression{Op: OpAdd, Left: 1, Right: 2, Type: types.Int},
//	}
package ir

import (
	"github.com/hassan/yalle/internal/semantic/types"
)

// NodeKind tags every variant of the tree so consumers can switch on it or
// print it.
type NodeKind int

const (
	KindProgram NodeKind = iota
	KindVariableDeclaration
	KindTypeDeclaration
	KindFunctionDeclaration
	KindVariable
	KindFunction
	KindIncrement
	KindDecrement
	KindAssignment
	KindBreakStatement
	KindReturnStatement
	KindShortReturnStatement
	KindIfStatement
	KindBlock
	KindWhileStatement
	KindRepeatStatement
	KindForStatement
	KindForRangeStatement
	KindPrintStatement
	KindCallStatement
	KindConditional
	KindBinaryExpression
	KindUnaryExpression
	KindEmptyOptional
	KindSubscriptExpression
	KindArrayExpression
	KindEmptyArray
	KindMemberExpression
	KindFunctionCall
	KindConstructorCall
	KindLiteral
)

var nodeKindNames = [...]string{
	KindProgram:              "Program",
	KindVariableDeclaration:  "VariableDeclaration",
	KindTypeDeclaration:      "TypeDeclaration",
	KindFunctionDeclaration:  "FunctionDeclaration",
	KindVariable:             "Variable",
	KindFunction:             "Function",
	KindIncrement:            "Increment",
	KindDecrement:            "Decrement",
	KindAssignment:           "Assignment",
	KindBreakStatement:       "BreakStatement",
	KindReturnStatement:      "ReturnStatement",
	KindShortReturnStatement: "ShortReturnStatement",
	KindIfStatement:          "IfStatement",
	KindBlock:                "Block",
	KindWhileStatement:       "WhileStatement",
	KindRepeatStatement:      "RepeatStatement",
	KindForStatement:         "ForStatement",
	KindForRangeStatement:    "ForRangeStatement",
	KindPrintStatement:       "PrintStatement",
	KindCallStatement:        "CallStatement",
	KindConditional:          "Conditional",
	KindBinaryExpression:     "BinaryExpression",
	KindUnaryExpression:      "UnaryExpression",
	KindEmptyOptional:        "EmptyOptional",
	KindSubscriptExpression:  "SubscriptExpression",
	KindArrayExpression:      "ArrayExpression",
	KindEmptyArray:           "EmptyArray",
	KindMemberExpression:     "MemberExpression",
	KindFunctionCall:         "FunctionCall",
	KindConstructorCall:      "ConstructorCall",
	KindLiteral:              "Literal",
}

func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(nodeKindNames) {
		return "Unknown"
	}
	return nodeKindNames[k]
}

// Node is implemented by every tree node.
type Node interface {
	Kind() NodeKind
}

// Stmt is a node that can appear in a statement list.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is a node that produces a value. ExprType is never nil on a tree the
// analyzer returned.
type Expr interface {
	Node
	ExprType() types.Type
	exprNode()
}

// Program is the root of the tree.
type Program struct {
	Statements []Stmt
}

func (p *Program) Kind() NodeKind { return KindProgram }

// Entities

// Variable is a declared variable or parameter. References to the variable
// point at this same node, so pointer identity is variable identity.
type Variable struct {
	Name     string
	ReadOnly bool
	Type     types.Type
}

func (v *Variable) Kind() NodeKind       { return KindVariable }
func (v *Variable) ExprType() types.Type { return v.Type }
func (v *Variable) exprNode()            {}
func (v *Variable) String() string       { return v.Name }

// Function is a declared task or a built-in function.
type Function struct {
	Name string
	Type *types.FunctionType
}

func (f *Function) Kind() NodeKind       { return KindFunction }
func (f *Function) ExprType() types.Type { return f.Type }
func (f *Function) exprNode()            {}
func (f *Function) String() string       { return f.Name }

// Declarations

// VariableDeclaration is tag x -= e; or brand x -= e;.
type VariableDeclaration struct {
	Variable    *Variable
	Initializer Expr
}

func (d *VariableDeclaration) Kind() NodeKind { return KindVariableDeclaration }
func (d *VariableDeclaration) stmtNode()      {}

// TypeDeclaration is a ranch declaration.
type TypeDeclaration struct {
	Type *types.StructType
}

func (d *TypeDeclaration) Kind() NodeKind { return KindTypeDeclaration }
func (d *TypeDeclaration) stmtNode()      {}

// FunctionDeclaration is a task declaration.
type FunctionDeclaration struct {
	Fun    *Function
	Params []*Variable
	Body   []Stmt
}

func (d *FunctionDeclaration) Kind() NodeKind { return KindFunctionDeclaration }
func (d *FunctionDeclaration) stmtNode()      {}
