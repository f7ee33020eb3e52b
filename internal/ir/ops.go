package ir

// BinaryOperator is the operator of a BinaryExpression.
type BinaryOperator int

const (
	// Arithmetic
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow

	// Comparison
	OpEq  // ==
	OpNeq // !=
	OpLt  // <
	OpLe  // <=
	OpGt  // >
	OpGe  // >=

	// Logical
	OpAnd // &&
	OpOr  // ||

	// Bitwise
	OpBitAnd // &
	OpBitOr  // |
	OpBitXor // ^
	OpShl    // <<
	OpShr    // >>

	OpCoalesce // ??
)

var binaryOperatorNames = [...]string{
	OpAdd:      "+",
	OpSub:      "-",
	OpMul:      "*",
	OpDiv:      "/",
	OpMod:      "%",
	OpPow:      "**",
	OpEq:       "==",
	OpNeq:      "!=",
	OpLt:       "<",
	OpLe:       "<=",
	OpGt:       ">",
	OpGe:       ">=",
	OpAnd:      "&&",
	OpOr:       "||",
	OpBitAnd:   "&",
	OpBitOr:    "|",
	OpBitXor:   "^",
	OpShl:      "<<",
	OpShr:      ">>",
	OpCoalesce: "??",
}

func (op BinaryOperator) String() string {
	if op < 0 || int(op) >= len(binaryOperatorNames) {
		return "?"
	}
	return binaryOperatorNames[op]
}

// LookupBinaryOperator maps source spelling to an operator.
func LookupBinaryOperator(s string) (BinaryOperator, bool) {
	for op, name := range binaryOperatorNames {
		if name == s {
			return BinaryOperator(op), true
		}
	}
	return 0, false
}

// IsComparison reports whether op yields a boolean from two comparable operands.
func (op BinaryOperator) IsComparison() bool {
	return op >= OpEq && op <= OpGe
}

// IsBitwise reports whether op works on the bits of two ints.
func (op BinaryOperator) IsBitwise() bool {
	return op >= OpBitAnd && op <= OpShr
}

// UnaryOperator is the operator of a UnaryExpression.
type UnaryOperator int

const (
	OpNeg    UnaryOperator = iota // -x
	OpNot                         // !x
	OpLength                      // #a
	OpRandom                      // random a
	OpSome                        // someodd x
)

func (op UnaryOperator) String() string {
	switch op {
	case OpNeg:
		return "-"
	case OpNot:
		return "!"
	case OpLength:
		return "#"
	case OpRandom:
		return "random"
	case OpSome:
		return "some"
	default:
		return "?"
	}
}

// RangeOperator distinguishes 1..<5 from 1...5.
type RangeOperator int

const (
	RangeExclusive RangeOperator = iota // ..<
	RangeInclusive                      // ...
)

func (op RangeOperator) String() string {
	if op == RangeInclusive {
		return "..."
	}
	return "..<"
}
