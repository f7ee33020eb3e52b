package semantic

import (
	"github.com/hassan/yalle/internal/ir"
	"github.com/hassan/yalle/internal/parser/ast"
	"github.com/hassan/yalle/internal/semantic/types"
	"github.com/hassan/yalle/internal/stdlib"
)

// Validation helpers. Each returns nil when the rule holds and the error to
// report otherwise; at is the syntax node the error points at.

func mustBeBoolean(e ir.Expr, at ast.Node) error {
	if !types.IsBoolean(e.ExprType()) {
		return newError(ErrExpectedBoolean, at, "Expected a boolean")
	}
	return nil
}

func mustBeInteger(e ir.Expr, at ast.Node) error {
	if !types.IsInteger(e.ExprType()) {
		return newError(ErrExpectedInteger, at, "Expected an integer")
	}
	return nil
}

func mustBeNumeric(e ir.Expr, at ast.Node) error {
	if !types.IsNumeric(e.ExprType()) {
		return newError(ErrExpectedNumber, at, "Expected a number")
	}
	return nil
}

func mustBeNumericOrString(e ir.Expr, at ast.Node) error {
	if !types.IsOrdered(e.ExprType()) {
		return newError(ErrExpectedNumber, at, "Expected a number or string")
	}
	return nil
}

func mustBeArray(e ir.Expr, at ast.Node) (*types.ArrayType, error) {
	array, ok := e.ExprType().(*types.ArrayType)
	if !ok {
		return nil, newError(ErrExpectedArray, at, "Expected an array")
	}
	return array, nil
}

func mustBeOptional(e ir.Expr, at ast.Node) (*types.OptionalType, error) {
	optional, ok := e.ExprType().(*types.OptionalType)
	if !ok {
		return nil, newError(ErrExpectedOptional, at, "Expected an optional")
	}
	return optional, nil
}

func mustBeStruct(t types.Type, at ast.Node) (*types.StructType, error) {
	structType, ok := t.(*types.StructType)
	if !ok {
		return nil, newError(ErrExpectedStruct, at, "Expected a struct")
	}
	return structType, nil
}

func mustHaveSameType(left, right ir.Expr, at ast.Node) error {
	if !left.ExprType().Equals(right.ExprType()) {
		return newError(ErrOperandTypeMismatch, at, "Operands do not have the same type")
	}
	return nil
}

func mustBeAssignable(e ir.Expr, target types.Type, at ast.Node) error {
	if !e.ExprType().AssignableTo(target) {
		return newError(ErrTypeMismatch, at, "Cannot assign a %s to a %s", e.ExprType(), target)
	}
	return nil
}

// mustBeWritable checks that target names a place that can be assigned.
// Elements and fields are writable even when the variable holding the
// array or struct is a brand constant.
func mustBeWritable(target ir.Expr, at ast.Node) error {
	switch t := target.(type) {
	case *ir.Variable:
		if t.ReadOnly {
			return newError(ErrAssignToConstant, at, "Cannot assign to constant %s", t.Name)
		}
		return nil
	case *ir.Function:
		if stdlib.IsBuiltin(t) {
			return newError(ErrAssignToConstant, at, "Cannot assign to constant %s", t.Name)
		}
		return nil
	case *ir.SubscriptExpression:
		return nil
	case *ir.MemberExpression:
		if t.Optional {
			return newError(ErrAssignToConstant, at, "Cannot assign through an optional chain")
		}
		return nil
	default:
		return newError(ErrAssignToConstant, at, "Cannot assign to this expression")
	}
}

// withTargetType gives an untyped empty literal ([any]() or no any) the
// type of the place it is stored in. Every other expression is returned
// unchanged.
func withTargetType(e ir.Expr, target types.Type) ir.Expr {
	switch e := e.(type) {
	case *ir.EmptyArray:
		if array, ok := target.(*types.ArrayType); ok && types.IsAny(e.Type.Element) {
			return &ir.EmptyArray{Type: array}
		}
	case *ir.EmptyOptional:
		if optional, ok := target.(*types.OptionalType); ok && types.IsAny(e.Type.Base) {
			return &ir.EmptyOptional{Type: optional}
		}
	}
	return e
}

// containsStruct reports whether a value of type t holds an s directly or
// through a chain of non-optional struct fields. Arrays and optionals are
// indirections and stop the search.
func containsStruct(t types.Type, s *types.StructType, seen map[*types.StructType]bool) bool {
	structType, ok := t.(*types.StructType)
	if !ok {
		return false
	}
	if structType == s {
		return true
	}
	if seen[structType] {
		return false
	}
	seen[structType] = true
	for _, field := range structType.Fields {
		if containsStruct(field.Type, s, seen) {
			return true
		}
	}
	return false
}
