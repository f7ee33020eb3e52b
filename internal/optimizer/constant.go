package optimizer

import (
	"math"
	"unicode/utf16"

	"github.com/hassan/yalle/internal/ir"
	"github.com/hassan/yalle/internal/semantic/types"
)

// ConstantFoldingPass evaluates operators whose operands are literals and
// applies algebraic identities.
//
// EXAMPLE:
//
//	tag x -= 3 * 7;          tag x -= 21;
//	holler(y || false);  =>  holler(y);
//	holler(true ? a : b);    holler(a);
//
// Arithmetic follows the generated JavaScript: integer division truncates,
// bitwise operators and shifts work on 32-bit integers. Nothing is folded
// whose value JavaScript would compute differently, so division or modulo
// by zero, negative integer powers and non-finite float results are left
// alone.
type ConstantFoldingPass struct{}

// Name returns the name of this optimization pass.
func (c *ConstantFoldingPass) Name() string {
	return "ConstantFolding"
}

// Run folds every expression of program.
func (c *ConstantFoldingPass) Run(program *ir.Program) (*ir.Program, int) {
	r := &rewriter{expr: c.fold}
	return r.program(program), r.changes
}

func (c *ConstantFoldingPass) fold(e ir.Expr) (ir.Expr, bool) {
	switch e := e.(type) {
	case *ir.BinaryExpression:
		return c.foldBinary(e)
	case *ir.UnaryExpression:
		return c.foldUnary(e)
	case *ir.Conditional:
		if ir.IsTrue(e.Test) {
			return e.Consequent, true
		}
		if ir.IsFalse(e.Test) {
			return e.Alternate, true
		}
	}
	return e, false
}

func (c *ConstantFoldingPass) foldBinary(e *ir.BinaryExpression) (ir.Expr, bool) {
	left, leftOk := e.Left.(*ir.Literal)
	right, rightOk := e.Right.(*ir.Literal)
	if leftOk && rightOk {
		if value, ok := evalBinary(e.Op, left.Value, right.Value); ok {
			return literal(value), true
		}
		return e, false
	}
	return simplify(e)
}

func (c *ConstantFoldingPass) foldUnary(e *ir.UnaryExpression) (ir.Expr, bool) {
	operand, ok := e.Operand.(*ir.Literal)
	if !ok {
		return e, false
	}

	switch v := operand.Value.(type) {
	case int64:
		if e.Op == ir.OpNeg {
			return ir.IntLiteral(-v), true
		}
	case float64:
		if e.Op == ir.OpNeg {
			return ir.FloatLiteral(-v), true
		}
	case bool:
		if e.Op == ir.OpNot {
			return ir.BoolLiteral(!v), true
		}
	}
	return e, false
}

// simplify applies identities that hold whatever the non-literal operand
// evaluates to. An operand is only dropped when it is a literal, so no
// side effect is ever lost.
func simplify(e *ir.BinaryExpression) (ir.Expr, bool) {
	switch e.Op {
	case ir.OpAnd:
		switch {
		case ir.IsTrue(e.Left):
			return e.Right, true
		case ir.IsTrue(e.Right):
			return e.Left, true
		case ir.IsFalse(e.Left):
			return e.Left, true
		}

	case ir.OpOr:
		switch {
		case ir.IsFalse(e.Left):
			return e.Right, true
		case ir.IsFalse(e.Right):
			return e.Left, true
		case ir.IsTrue(e.Left):
			return e.Left, true
		}

	case ir.OpAdd:
		if types.IsInteger(e.Type) {
			if isInt(e.Right, 0) {
				return e.Left, true
			}
			if isInt(e.Left, 0) {
				return e.Right, true
			}
		}

	case ir.OpSub:
		if types.IsInteger(e.Type) && isInt(e.Right, 0) {
			return e.Left, true
		}

	case ir.OpMul:
		if types.IsInteger(e.Type) {
			if isInt(e.Right, 1) {
				return e.Left, true
			}
			if isInt(e.Left, 1) {
				return e.Right, true
			}
		}

	case ir.OpDiv:
		if types.IsInteger(e.Type) && isInt(e.Right, 1) {
			return e.Left, true
		}

	case ir.OpCoalesce:
		if _, empty := e.Left.(*ir.EmptyOptional); empty && e.Right.ExprType().Equals(e.Type) {
			return e.Right, true
		}
	}
	return e, false
}

func isInt(e ir.Expr, want int64) bool {
	lit, ok := e.(*ir.Literal)
	return ok && lit.Value == want
}

func literal(value interface{}) *ir.Literal {
	switch v := value.(type) {
	case int64:
		return ir.IntLiteral(v)
	case float64:
		return ir.FloatLiteral(v)
	case string:
		return ir.StringLiteral(v)
	default:
		return ir.BoolLiteral(v.(bool))
	}
}

// evalBinary computes op over two literal values of the same type. ok is
// false when the operation must be left to run time.
func evalBinary(op ir.BinaryOperator, left, right interface{}) (interface{}, bool) {
	switch l := left.(type) {
	case int64:
		if r, ok := right.(int64); ok {
			return foldInt(op, l, r)
		}
	case float64:
		if r, ok := right.(float64); ok {
			return foldFloat(op, l, r)
		}
	case string:
		if r, ok := right.(string); ok {
			return foldString(op, l, r)
		}
	case bool:
		if r, ok := right.(bool); ok {
			return foldBool(op, l, r)
		}
	}
	return nil, false
}

func foldInt(op ir.BinaryOperator, l, r int64) (interface{}, bool) {
	switch op {
	case ir.OpAdd:
		return exactInt(l+r, float64(l)+float64(r))
	case ir.OpSub:
		return exactInt(l-r, float64(l)-float64(r))
	case ir.OpMul:
		return exactInt(l*r, float64(l)*float64(r))
	case ir.OpDiv:
		if r == 0 {
			return nil, false
		}
		return l / r, true
	case ir.OpMod:
		if r == 0 {
			return nil, false
		}
		return l % r, true
	case ir.OpPow:
		if r < 0 {
			return nil, false
		}
		return exactInt(intPow(l, r), math.Pow(float64(l), float64(r)))
	case ir.OpBitAnd:
		return int64(int32(l) & int32(r)), true
	case ir.OpBitOr:
		return int64(int32(l) | int32(r)), true
	case ir.OpBitXor:
		return int64(int32(l) ^ int32(r)), true
	case ir.OpShl:
		return int64(int32(l) << (uint32(r) & 31)), true
	case ir.OpShr:
		return int64(int32(l) >> (uint32(r) & 31)), true
	}
	return compare(op, cmpInt(l, r))
}

func foldFloat(op ir.BinaryOperator, l, r float64) (interface{}, bool) {
	var result float64
	switch op {
	case ir.OpAdd:
		result = l + r
	case ir.OpSub:
		result = l - r
	case ir.OpMul:
		result = l * r
	case ir.OpDiv:
		result = l / r
	case ir.OpMod:
		result = math.Mod(l, r)
	case ir.OpPow:
		result = math.Pow(l, r)
	default:
		if math.IsNaN(l) || math.IsNaN(r) {
			return nil, false
		}
		return compare(op, cmpFloat(l, r))
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		return nil, false
	}
	return result, true
}

func foldString(op ir.BinaryOperator, l, r string) (interface{}, bool) {
	if op == ir.OpAdd {
		return l + r, true
	}
	return compare(op, cmpUTF16(l, r))
}

func foldBool(op ir.BinaryOperator, l, r bool) (interface{}, bool) {
	switch op {
	case ir.OpAnd:
		return l && r, true
	case ir.OpOr:
		return l || r, true
	case ir.OpEq:
		return l == r, true
	case ir.OpNeq:
		return l != r, true
	}
	return nil, false
}

// compare turns a three-way comparison into the result of a comparison
// operator.
func compare(op ir.BinaryOperator, c int) (interface{}, bool) {
	switch op {
	case ir.OpEq:
		return c == 0, true
	case ir.OpNeq:
		return c != 0, true
	case ir.OpLt:
		return c < 0, true
	case ir.OpLe:
		return c <= 0, true
	case ir.OpGt:
		return c > 0, true
	case ir.OpGe:
		return c >= 0, true
	}
	return nil, false
}

// maxSafeInt is the largest integer a JavaScript number holds exactly.
const maxSafeInt = 1 << 53

// exactInt accepts an integer result only while JavaScript would compute
// the same value; approx is the result in float arithmetic.
func exactInt(result int64, approx float64) (interface{}, bool) {
	if math.Abs(approx) > maxSafeInt {
		return nil, false
	}
	return result, true
}

func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func cmpInt(l, r int64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func cmpFloat(l, r float64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

// cmpUTF16 orders strings by UTF-16 code units, as JavaScript does.
func cmpUTF16(l, r string) int {
	a := utf16.Encode([]rune(l))
	b := utf16.Encode([]rune(r))
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return cmpInt(int64(len(a)), int64(len(b)))
}
