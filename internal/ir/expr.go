package ir

import (
	"github.com/hassan/yalle/internal/semantic/types"
)

// Conditional is test ? consequent : alternate.
type Conditional struct {
	Test       Expr
	Consequent Expr
	Alternate  Expr
	Type       types.Type
}

func (e *Conditional) Kind() NodeKind       { return KindConditional }
func (e *Conditional) ExprType() types.Type { return e.Type }
func (e *Conditional) exprNode()            {}

type BinaryExpression struct {
	Op    BinaryOperator
	Left  Expr
	Right Expr
	Type  types.Type
}

func (e *BinaryExpression) Kind() NodeKind       { return KindBinaryExpression }
func (e *BinaryExpression) ExprType() types.Type { return e.Type }
func (e *BinaryExpression) exprNode()            {}

type UnaryExpression struct {
	Op      UnaryOperator
	Operand Expr
	Type    types.Type
}

func (e *UnaryExpression) Kind() NodeKind       { return KindUnaryExpression }
func (e *UnaryExpression) ExprType() types.Type { return e.Type }
func (e *UnaryExpression) exprNode()            {}

// EmptyOptional is no T. Type is the optional type T?.
type EmptyOptional struct {
	Type *types.OptionalType
}

func (e *EmptyOptional) Kind() NodeKind       { return KindEmptyOptional }
func (e *EmptyOptional) ExprType() types.Type { return e.Type }
func (e *EmptyOptional) exprNode()            {}

// SubscriptExpression is array[index]; Type is the element type.
type SubscriptExpression struct {
	Array Expr
	Index Expr
	Type  types.Type
}

func (e *SubscriptExpression) Kind() NodeKind       { return KindSubscriptExpression }
func (e *SubscriptExpression) ExprType() types.Type { return e.Type }
func (e *SubscriptExpression) exprNode()            {}

// ArrayExpression is a non-empty array literal.
type ArrayExpression struct {
	Elements []Expr
	Type     *types.ArrayType
}

func (e *ArrayExpression) Kind() NodeKind       { return KindArrayExpression }
func (e *ArrayExpression) ExprType() types.Type { return e.Type }
func (e *ArrayExpression) exprNode()            {}

// EmptyArray is [T]().
type EmptyArray struct {
	Type *types.ArrayType
}

func (e *EmptyArray) Kind() NodeKind       { return KindEmptyArray }
func (e *EmptyArray) ExprType() types.Type { return e.Type }
func (e *EmptyArray) exprNode()            {}

// MemberExpression is object.field, or object?.field when Optional is set.
type MemberExpression struct {
	Object   Expr
	Optional bool
	Field    *types.Field
	Type     types.Type
}

func (e *MemberExpression) Kind() NodeKind       { return KindMemberExpression }
func (e *MemberExpression) ExprType() types.Type { return e.Type }
func (e *MemberExpression) exprNode()            {}

// FunctionCall calls any expression of function type.
type FunctionCall struct {
	Callee Expr
	Args   []Expr
	Type   types.Type
}

func (e *FunctionCall) Kind() NodeKind       { return KindFunctionCall }
func (e *FunctionCall) ExprType() types.Type { return e.Type }
func (e *FunctionCall) exprNode()            {}

// ConstructorCall builds a struct value from one argument per field.
type ConstructorCall struct {
	Callee *types.StructType
	Args   []Expr
}

func (e *ConstructorCall) Kind() NodeKind       { return KindConstructorCall }
func (e *ConstructorCall) ExprType() types.Type { return e.Callee }
func (e *ConstructorCall) exprNode()            {}

// Literal is a constant. Value holds an int64, float64, string or bool
// matching Type.
type Literal struct {
	Value interface{}
	Type  types.Type
}

func (e *Literal) Kind() NodeKind       { return KindLiteral }
func (e *Literal) ExprType() types.Type { return e.Type }
func (e *Literal) exprNode()            {}

// IntLiteral returns an int literal.
func IntLiteral(v int64) *Literal { return &Literal{Value: v, Type: types.Int} }

// FloatLiteral returns a float literal.
func FloatLiteral(v float64) *Literal { return &Literal{Value: v, Type: types.Float} }

// StringLiteral returns a string literal.
func StringLiteral(v string) *Literal { return &Literal{Value: v, Type: types.String} }

// BoolLiteral returns a boolean literal.
func BoolLiteral(v bool) *Literal { return &Literal{Value: v, Type: types.Bool} }

// IsTrue reports whether e is the literal true.
func IsTrue(e Expr) bool {
	lit, ok := e.(*Literal)
	return ok && lit.Value == true
}

// IsFalse reports whether e is the literal false.
func IsFalse(e Expr) bool {
	lit, ok := e.(*Literal)
	return ok && lit.Value == false
}
