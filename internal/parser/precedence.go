package parser

import (
	"github.com/hassan/yalle/internal/lexer"
)

// Precedence represents operator precedence levels.
//
// Higher numbers bind tighter. The Pratt loop in parsePrecedence keeps
// consuming infix operators while their level is at least the one it was
// asked for.
//
// PRECEDENCE RULES (from lowest to highest):
// 1. Conditional (? :)
// 2. Unwrap-else (??)
// 3. Logical OR (||)
// 4. Logical AND (&&)
// 5. Equality (==, !=)
// 6. Comparison (<, <=, >, >=)
// 7. Bitwise OR (|)
// 8. Bitwise XOR (^)
// 9. Bitwise AND (&)
// 10. Shift (<<, >>)
// 11. Addition/Subtraction (+, -)
// 12. Multiplication/Division (*, /, %)
// 13. Exponentiation (**)
// 14. Prefix (-, !, #, random, someodd)
// 15. Postfix (call, [], ., ?.)
type Precedence int

const (
	PrecNone        Precedence = iota
	PrecConditional            // ? :
	PrecCoalesce               // ??
	PrecOr                     // ||
	PrecAnd                    // &&
	PrecEquality               // ==, !=
	PrecComparison             // <, <=, >, >=
	PrecBitOr                  // |
	PrecBitXor                 // ^
	PrecBitAnd                 // &
	PrecShift                  // <<, >>
	PrecTerm                   // +, -
	PrecFactor                 // *, /, %
	PrecExponent               // **
	PrecUnary                  // -, !, #, random, someodd
	PrecCall                   // (), \_ _/, [], ., ?.
	PrecPrimary                // literals, identifiers, grouping
)

// getPrecedence returns the precedence level of a token used as an infix or
// postfix operator. Tokens that cannot continue an expression get PrecNone,
// which ends the Pratt loop.
func getPrecedence(tokenType lexer.TokenType) Precedence {
	switch tokenType {
	case lexer.TokenQuestion:
		return PrecConditional

	case lexer.TokenCoalesce:
		return PrecCoalesce

	case lexer.TokenOr:
		return PrecOr

	case lexer.TokenAnd:
		return PrecAnd

	case lexer.TokenEqual, lexer.TokenNotEqual:
		return PrecEquality

	case lexer.TokenLess,
		lexer.TokenLessEqual,
		lexer.TokenGreater,
		lexer.TokenGreaterEqual:
		return PrecComparison

	case lexer.TokenBitOr:
		return PrecBitOr

	case lexer.TokenBitXor:
		return PrecBitXor

	case lexer.TokenBitAnd:
		return PrecBitAnd

	case lexer.TokenShl, lexer.TokenShr:
		return PrecShift

	case lexer.TokenPlus, lexer.TokenMinus:
		return PrecTerm

	case lexer.TokenStar, lexer.TokenSlash, lexer.TokenPercent:
		return PrecFactor

	case lexer.TokenStarStar:
		return PrecExponent

	case lexer.TokenLeftParen,
		lexer.TokenLassoOpen,
		lexer.TokenLeftBracket,
		lexer.TokenDot,
		lexer.TokenQuestionDot:
		return PrecCall

	default:
		return PrecNone
	}
}

// isRightAssociative returns true if the operator is right-associative.
//
// Only ** is: 2 ** 3 ** 2 is 2 ** (3 ** 2). The conditional also nests to the
// right, but parseConditional handles that itself.
func isRightAssociative(tokenType lexer.TokenType) bool {
	return tokenType == lexer.TokenStarStar
}

// isPrefixOperator reports whether the token starts a prefix operation.
func isPrefixOperator(tokenType lexer.TokenType) bool {
	switch tokenType {
	case lexer.TokenMinus,
		lexer.TokenNot,
		lexer.TokenHash,
		lexer.TokenRandom,
		lexer.TokenSomeodd:
		return true
	default:
		return false
	}
}
