package optimizer

import (
	"github.com/hassan/yalle/internal/ir"
)

// rewriter walks a tree bottom-up and rebuilds it, giving each rebuilt
// expression and statement to a hook once its children are done. Either
// hook may be nil.
//
// Leaves (variables, functions, literals, empty arrays and optionals) are
// shared with the input; every other node is rebuilt, so the input tree is
// never written.
type rewriter struct {
	// expr returns the replacement for e and whether it differs.
	expr func(e ir.Expr) (ir.Expr, bool)

	// stmt returns the statements that replace s, which may be none or
	// several, and whether anything changed.
	stmt func(s ir.Stmt) ([]ir.Stmt, bool)

	changes int
}

func (r *rewriter) program(p *ir.Program) *ir.Program {
	return &ir.Program{Statements: r.statements(p.Statements)}
}

func (r *rewriter) statements(list []ir.Stmt) []ir.Stmt {
	result := make([]ir.Stmt, 0, len(list))
	for _, s := range list {
		result = append(result, r.statement(s)...)
	}
	return result
}

func (r *rewriter) statement(s ir.Stmt) []ir.Stmt {
	var rebuilt ir.Stmt

	switch s := s.(type) {
	case *ir.VariableDeclaration:
		rebuilt = &ir.VariableDeclaration{Variable: s.Variable, Initializer: r.expression(s.Initializer)}
	case *ir.FunctionDeclaration:
		rebuilt = &ir.FunctionDeclaration{Fun: s.Fun, Params: s.Params, Body: r.statements(s.Body)}
	case *ir.Increment:
		rebuilt = &ir.Increment{Target: r.expression(s.Target)}
	case *ir.Decrement:
		rebuilt = &ir.Decrement{Target: r.expression(s.Target)}
	case *ir.Assignment:
		rebuilt = &ir.Assignment{Target: r.expression(s.Target), Source: r.expression(s.Source)}
	case *ir.ReturnStatement:
		rebuilt = &ir.ReturnStatement{Expression: r.expression(s.Expression)}
	case *ir.IfStatement:
		rebuilt = &ir.IfStatement{
			Test:       r.expression(s.Test),
			Consequent: r.statements(s.Consequent),
			Alternate:  r.alternate(s.Alternate),
		}
	case *ir.Block:
		rebuilt = &ir.Block{Statements: r.statements(s.Statements)}
	case *ir.WhileStatement:
		rebuilt = &ir.WhileStatement{Test: r.expression(s.Test), Body: r.statements(s.Body)}
	case *ir.RepeatStatement:
		rebuilt = &ir.RepeatStatement{Count: r.expression(s.Count), Body: r.statements(s.Body)}
	case *ir.ForStatement:
		rebuilt = &ir.ForStatement{
			Iterator:   s.Iterator,
			Collection: r.expression(s.Collection),
			Body:       r.statements(s.Body),
		}
	case *ir.ForRangeStatement:
		rebuilt = &ir.ForRangeStatement{
			Iterator: s.Iterator,
			Low:      r.expression(s.Low),
			Op:       s.Op,
			High:     r.expression(s.High),
			Body:     r.statements(s.Body),
		}
	case *ir.PrintStatement:
		rebuilt = &ir.PrintStatement{Argument: r.expression(s.Argument)}
	case *ir.CallStatement:
		rebuilt = &ir.CallStatement{Call: r.expression(s.Call)}
	default:
		// TypeDeclaration, BreakStatement, ShortReturnStatement
		rebuilt = s
	}

	if r.stmt == nil {
		return []ir.Stmt{rebuilt}
	}
	result, changed := r.stmt(rebuilt)
	if changed {
		r.changes++
	}
	return result
}

// alternate rewrites the otherwise part of an iffin. A rewrite that yields
// several plain statements is wrapped back into a block.
func (r *rewriter) alternate(s ir.Stmt) ir.Stmt {
	if s == nil {
		return nil
	}

	result := r.statement(s)
	switch len(result) {
	case 0:
		return nil
	case 1:
		switch result[0].(type) {
		case *ir.IfStatement, *ir.Block:
			return result[0]
		}
	}
	return &ir.Block{Statements: result}
}

func (r *rewriter) expressions(list []ir.Expr) []ir.Expr {
	result := make([]ir.Expr, len(list))
	for i, e := range list {
		result[i] = r.expression(e)
	}
	return result
}

func (r *rewriter) expression(e ir.Expr) ir.Expr {
	var rebuilt ir.Expr

	switch e := e.(type) {
	case *ir.Conditional:
		rebuilt = &ir.Conditional{
			Test:       r.expression(e.Test),
			Consequent: r.expression(e.Consequent),
			Alternate:  r.expression(e.Alternate),
			Type:       e.Type,
		}
	case *ir.BinaryExpression:
		rebuilt = &ir.BinaryExpression{
			Op:    e.Op,
			Left:  r.expression(e.Left),
			Right: r.expression(e.Right),
			Type:  e.Type,
		}
	case *ir.UnaryExpression:
		rebuilt = &ir.UnaryExpression{Op: e.Op, Operand: r.expression(e.Operand), Type: e.Type}
	case *ir.SubscriptExpression:
		rebuilt = &ir.SubscriptExpression{
			Array: r.expression(e.Array),
			Index: r.expression(e.Index),
			Type:  e.Type,
		}
	case *ir.ArrayExpression:
		rebuilt = &ir.ArrayExpression{Elements: r.expressions(e.Elements), Type: e.Type}
	case *ir.MemberExpression:
		rebuilt = &ir.MemberExpression{
			Object:   r.expression(e.Object),
			Optional: e.Optional,
			Field:    e.Field,
			Type:     e.Type,
		}
	case *ir.FunctionCall:
		rebuilt = &ir.FunctionCall{Callee: r.expression(e.Callee), Args: r.expressions(e.Args), Type: e.Type}
	case *ir.ConstructorCall:
		rebuilt = &ir.ConstructorCall{Callee: e.Callee, Args: r.expressions(e.Args)}
	default:
		return e
	}

	if r.expr == nil {
		return rebuilt
	}
	result, changed := r.expr(rebuilt)
	if changed {
		r.changes++
	}
	return result
}
