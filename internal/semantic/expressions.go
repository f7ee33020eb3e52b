package semantic

import (
	"github.com/hassan/yalle/internal/ir"
	"github.com/hassan/yalle/internal/lexer"
	"github.com/hassan/yalle/internal/parser/ast"
	"github.com/hassan/yalle/internal/semantic/types"
	"github.com/hassan/yalle/internal/symtab"
)

// Expression visitors. Each returns the annotated ir.Expr.

func (a *Analyzer) VisitBinaryExpr(expr *ast.BinaryExpr) (interface{}, error) {
	if expr.Operator.Type == lexer.TokenCoalesce {
		return a.coalesce(expr)
	}

	op, ok := ir.LookupBinaryOperator(expr.Operator.Lexeme)
	if !ok {
		return nil, newError(ErrTypeMismatch, expr, "Unknown operator %s", expr.Operator.Lexeme)
	}

	left, err := a.expr(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := a.expr(expr.Right)
	if err != nil {
		return nil, err
	}

	var resultType types.Type
	switch {
	case op == ir.OpAnd || op == ir.OpOr:
		if err := mustBeBoolean(left, expr.Left); err != nil {
			return nil, err
		}
		if err := mustBeBoolean(right, expr.Right); err != nil {
			return nil, err
		}
		resultType = types.Bool

	case op == ir.OpEq || op == ir.OpNeq:
		if err := mustHaveSameType(left, right, expr); err != nil {
			return nil, err
		}
		resultType = types.Bool

	case op.IsComparison():
		if err := mustBeNumericOrString(left, expr.Left); err != nil {
			return nil, err
		}
		if err := mustHaveSameType(left, right, expr); err != nil {
			return nil, err
		}
		resultType = types.Bool

	case op.IsBitwise():
		if err := mustBeInteger(left, expr.Left); err != nil {
			return nil, err
		}
		if err := mustBeInteger(right, expr.Right); err != nil {
			return nil, err
		}
		resultType = types.Int

	case op == ir.OpAdd:
		if err := mustBeNumericOrString(left, expr.Left); err != nil {
			return nil, err
		}
		if err := mustHaveSameType(left, right, expr); err != nil {
			return nil, err
		}
		resultType = left.ExprType()

	default: // - * / % **
		if err := mustBeNumeric(left, expr.Left); err != nil {
			return nil, err
		}
		if err := mustHaveSameType(left, right, expr); err != nil {
			return nil, err
		}
		resultType = left.ExprType()
	}

	return &ir.BinaryExpression{Op: op, Left: left, Right: right, Type: resultType}, nil
}

// coalesce types an unparenthesized chain a ?? b ?? c as one unit. The first
// operand must be an optional T?. Every later operand is either assignable
// to T, which makes the result a plain T, or is itself a T?, which leaves the
// result as it was.
func (a *Analyzer) coalesce(expr *ast.BinaryExpr) (interface{}, error) {
	operands := []ast.Expr{expr.Right}
	first := expr.Left
	for {
		inner, ok := first.(*ast.BinaryExpr)
		if !ok || inner.Operator.Type != lexer.TokenCoalesce {
			break
		}
		operands = append(operands, inner.Right)
		first = inner.Left
	}

	result, err := a.expr(first)
	if err != nil {
		return nil, err
	}
	optional, err := mustBeOptional(result, first)
	if err != nil {
		return nil, err
	}
	base := optional.Base
	resultType := types.Type(optional)

	// operands holds the right-hand sides innermost last.
	for i := len(operands) - 1; i >= 0; i-- {
		right, err := a.expr(operands[i])
		if err != nil {
			return nil, err
		}
		right = withTargetType(withTargetType(right, base), optional)

		switch {
		case right.ExprType().AssignableTo(base):
			resultType = base
		case right.ExprType().Equals(optional):
		default:
			if err := mustBeAssignable(right, base, operands[i]); err != nil {
				return nil, err
			}
		}
		result = &ir.BinaryExpression{Op: ir.OpCoalesce, Left: result, Right: right, Type: resultType}
	}

	return result, nil
}

func (a *Analyzer) VisitUnaryExpr(expr *ast.UnaryExpr) (interface{}, error) {
	operand, err := a.expr(expr.Operand)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case lexer.TokenMinus:
		if err := mustBeNumeric(operand, expr.Operand); err != nil {
			return nil, err
		}
		return &ir.UnaryExpression{Op: ir.OpNeg, Operand: operand, Type: operand.ExprType()}, nil

	case lexer.TokenNot:
		if err := mustBeBoolean(operand, expr.Operand); err != nil {
			return nil, err
		}
		return &ir.UnaryExpression{Op: ir.OpNot, Operand: operand, Type: types.Bool}, nil

	case lexer.TokenHash:
		if _, err := mustBeArray(operand, expr.Operand); err != nil {
			return nil, err
		}
		return &ir.UnaryExpression{Op: ir.OpLength, Operand: operand, Type: types.Int}, nil

	case lexer.TokenRandom:
		array, err := mustBeArray(operand, expr.Operand)
		if err != nil {
			return nil, err
		}
		return &ir.UnaryExpression{Op: ir.OpRandom, Operand: operand, Type: array.Element}, nil

	case lexer.TokenSomeodd:
		return &ir.UnaryExpression{
			Op:      ir.OpSome,
			Operand: operand,
			Type:    types.NewOptional(operand.ExprType()),
		}, nil

	default:
		return nil, newError(ErrTypeMismatch, expr, "Unknown operator %s", expr.Operator.Lexeme)
	}
}

func (a *Analyzer) VisitConditionalExpr(expr *ast.ConditionalExpr) (interface{}, error) {
	test, err := a.expr(expr.Condition)
	if err != nil {
		return nil, err
	}
	if err := mustBeBoolean(test, expr.Condition); err != nil {
		return nil, err
	}

	consequent, err := a.expr(expr.Then)
	if err != nil {
		return nil, err
	}
	alternate, err := a.expr(expr.Else)
	if err != nil {
		return nil, err
	}
	if !consequent.ExprType().Equals(alternate.ExprType()) {
		return nil, newError(ErrTypeMismatch, expr.Else, "Operands do not have the same type")
	}

	return &ir.Conditional{
		Test:       test,
		Consequent: consequent,
		Alternate:  alternate,
		Type:       consequent.ExprType(),
	}, nil
}

func (a *Analyzer) VisitLiteralExpr(expr *ast.LiteralExpr) (interface{}, error) {
	switch v := expr.Value.(type) {
	case int64:
		return ir.IntLiteral(v), nil
	case float64:
		return ir.FloatLiteral(v), nil
	case string:
		return ir.StringLiteral(v), nil
	case bool:
		return ir.BoolLiteral(v), nil
	default:
		return nil, newError(ErrTypeMismatch, expr, "Unsupported literal %s", expr.Token.Lexeme)
	}
}

func (a *Analyzer) VisitIdentifierExpr(expr *ast.IdentifierExpr) (interface{}, error) {
	symbol := a.scope.Lookup(expr.Name)
	if symbol == nil {
		return nil, newError(ErrUndeclaredIdentifier, expr, "Identifier %s not declared", expr.Name)
	}
	if symbol.Kind == symtab.SymbolType {
		return nil, newError(ErrTypeMismatch, expr, "Type %s cannot be used as a value", expr.Name)
	}
	return symbol.Entity, nil
}

func (a *Analyzer) VisitCallExpr(expr *ast.CallExpr) (interface{}, error) {
	// A ranch name in callee position is a constructor.
	if name, ok := expr.Callee.(*ast.IdentifierExpr); ok {
		symbol := a.scope.Lookup(name.Name)
		if symbol != nil && symbol.Kind == symtab.SymbolType {
			structType, ok := symbol.Type.(*types.StructType)
			if !ok {
				return nil, newError(ErrUncallableTarget, name, "Call of non-task or non-ranch")
			}
			args, err := a.arguments(expr, structType.Constructor())
			if err != nil {
				return nil, err
			}
			return &ir.ConstructorCall{Callee: structType, Args: args}, nil
		}
	}

	callee, err := a.expr(expr.Callee)
	if err != nil {
		return nil, err
	}
	funType, ok := callee.ExprType().(*types.FunctionType)
	if !ok {
		return nil, newError(ErrUncallableTarget, expr.Callee, "Call of non-task or non-ranch")
	}
	args, err := a.arguments(expr, funType)
	if err != nil {
		return nil, err
	}

	return &ir.FunctionCall{Callee: callee, Args: args, Type: funType.Returns}, nil
}

// arguments checks the arguments of call against signature.
func (a *Analyzer) arguments(call *ast.CallExpr, signature *types.FunctionType) ([]ir.Expr, error) {
	if len(call.Args) != len(signature.Params) {
		return nil, newError(ErrArityMismatch, call, "%d argument(s) required but %d passed",
			len(signature.Params), len(call.Args))
	}

	args := make([]ir.Expr, len(call.Args))
	for i, arg := range call.Args {
		analyzed, err := a.expr(arg)
		if err != nil {
			return nil, err
		}
		analyzed = withTargetType(analyzed, signature.Params[i])
		if err := mustBeAssignable(analyzed, signature.Params[i], arg); err != nil {
			return nil, err
		}
		args[i] = analyzed
	}
	return args, nil
}

func (a *Analyzer) VisitIndexExpr(expr *ast.IndexExpr) (interface{}, error) {
	array, err := a.expr(expr.Object)
	if err != nil {
		return nil, err
	}
	arrayType, err := mustBeArray(array, expr.Object)
	if err != nil {
		return nil, err
	}
	index, err := a.expr(expr.Index)
	if err != nil {
		return nil, err
	}
	if err := mustBeInteger(index, expr.Index); err != nil {
		return nil, err
	}

	return &ir.SubscriptExpression{Array: array, Index: index, Type: arrayType.Element}, nil
}

func (a *Analyzer) VisitMemberExpr(expr *ast.MemberExpr) (interface{}, error) {
	object, err := a.expr(expr.Object)
	if err != nil {
		return nil, err
	}

	objectType := object.ExprType()
	if expr.IsOptional() {
		optional, err := mustBeOptional(object, expr.Object)
		if err != nil {
			return nil, err
		}
		objectType = optional.Base
	}
	structType, err := mustBeStruct(objectType, expr.Object)
	if err != nil {
		return nil, err
	}

	field := structType.LookupField(expr.Member.Name)
	if field == nil {
		return nil, newError(ErrNoSuchField, expr.Member, "No such field %s", expr.Member.Name)
	}

	fieldType := field.Type
	if expr.IsOptional() {
		if _, already := fieldType.(*types.OptionalType); !already {
			fieldType = types.NewOptional(fieldType)
		}
	}

	return &ir.MemberExpression{
		Object:   object,
		Optional: expr.IsOptional(),
		Field:    field,
		Type:     fieldType,
	}, nil
}

// VisitGroupingExpr returns the inner expression: parentheses only matter
// to the parser.
func (a *Analyzer) VisitGroupingExpr(expr *ast.GroupingExpr) (interface{}, error) {
	return a.expr(expr.Expr)
}

func (a *Analyzer) VisitArrayLiteralExpr(expr *ast.ArrayLiteralExpr) (interface{}, error) {
	elements := make([]ir.Expr, len(expr.Elements))
	for i, element := range expr.Elements {
		analyzed, err := a.expr(element)
		if err != nil {
			return nil, err
		}
		if i > 0 && !analyzed.ExprType().Equals(elements[0].ExprType()) {
			return nil, newError(ErrTypeMismatch, element, "Not all elements have the same type")
		}
		elements[i] = analyzed
	}

	return &ir.ArrayExpression{
		Elements: elements,
		Type:     types.NewArray(elements[0].ExprType()),
	}, nil
}

func (a *Analyzer) VisitEmptyArrayExpr(expr *ast.EmptyArrayExpr) (interface{}, error) {
	t, err := a.resolveType(expr.Type)
	if err != nil {
		return nil, err
	}
	return &ir.EmptyArray{Type: t.(*types.ArrayType)}, nil
}

func (a *Analyzer) VisitEmptyOptionalExpr(expr *ast.EmptyOptionalExpr) (interface{}, error) {
	base, err := a.resolveType(expr.Type)
	if err != nil {
		return nil, err
	}
	return &ir.EmptyOptional{Type: types.NewOptional(base)}, nil
}
