package lexer

// TokenType identifies the lexical class of a token.
type TokenType int

// Token kinds, grouped as special, literal, keyword, operator and delimiter.
// The grouping matters: IsKeyword, IsOperator and IsLiteral compare ranges.
const (
	TokenEOF TokenType = iota
	TokenInvalid

	// Literals
	TokenInt
	TokenFloat
	TokenString
	TokenIdentifier

	// Keywords
	TokenTag       // tag: mutable variable
	TokenBrand     // brand: read-only variable
	TokenTask      // task: function
	TokenRanch     // ranch: struct
	TokenRoundup   // roundup: return
	TokenWhoa      // whoa: break
	TokenIffin     // iffin: if
	TokenOtherwise // otherwise: else
	TokenTill      // till: while
	TokenRepeat
	TokenFor
	TokenIn
	TokenHoller  // holler: print
	TokenSomeodd // someodd: wrap in an optional
	TokenNo      // no: empty optional
	TokenRandom
	TokenTrue
	TokenFalse

	// Operators
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenStarStar
	TokenEqual
	TokenNotEqual
	TokenLess
	TokenLessEqual
	TokenGreater
	TokenGreaterEqual
	TokenAnd
	TokenOr
	TokenNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenShl
	TokenShr
	TokenCoalesce    // ??
	TokenQuestion    // ?
	TokenQuestionDot // ?.
	TokenColon
	TokenDot
	TokenHash  // #: length
	TokenArrow // ->
	TokenAssign
	TokenPlusPlus
	TokenMinusMinus
	TokenRangeExclusive // ..<
	TokenRangeInclusive // ...

	// Delimiters
	TokenLeftParen
	TokenRightParen
	TokenLeftBracket
	TokenRightBracket
	TokenBlockOpen // ~~{
	TokenRightBrace
	TokenSemicolon
	TokenComma
	TokenLassoOpen  // \_
	TokenLassoClose // _/
	TokenCorral     // -x-x-x-x-
)

// Token is a single lexical unit.
type Token struct {
	Type TokenType

	// Lexeme is the exact source text of the token. String literals keep
	// their quotes; the parser unescapes them.
	Lexeme string

	Position Position
}

// String returns a debugging form of the token.
// Example: "IDENTIFIER(dog) at Line 1, col 5"
func (t Token) String() string {
	return t.Type.String() + "(" + t.Lexeme + ") at " + t.Position.String()
}

// End returns the position just past the token.
func (t Token) End() Position {
	return Position{
		Line:   t.Position.Line,
		Column: t.Position.Column + runeCount(t.Lexeme),
		Offset: t.Position.Offset + len(t.Lexeme),
	}
}

func runeCount(s string) int {
	count := 0
	for range s {
		count++
	}
	return count
}

var tokenNames = map[TokenType]string{
	TokenEOF:            "EOF",
	TokenInvalid:        "INVALID",
	TokenInt:            "INT",
	TokenFloat:          "FLOAT",
	TokenString:         "STRING",
	TokenIdentifier:     "IDENTIFIER",
	TokenTag:            "TAG",
	TokenBrand:          "BRAND",
	TokenTask:           "TASK",
	TokenRanch:          "RANCH",
	TokenRoundup:        "ROUNDUP",
	TokenWhoa:           "WHOA",
	TokenIffin:          "IFFIN",
	TokenOtherwise:      "OTHERWISE",
	TokenTill:           "TILL",
	TokenRepeat:         "REPEAT",
	TokenFor:            "FOR",
	TokenIn:             "IN",
	TokenHoller:         "HOLLER",
	TokenSomeodd:        "SOMEODD",
	TokenNo:             "NO",
	TokenRandom:         "RANDOM",
	TokenTrue:           "TRUE",
	TokenFalse:          "FALSE",
	TokenPlus:           "PLUS",
	TokenMinus:          "MINUS",
	TokenStar:           "STAR",
	TokenSlash:          "SLASH",
	TokenPercent:        "PERCENT",
	TokenStarStar:       "STARSTAR",
	TokenEqual:          "EQUAL",
	TokenNotEqual:       "NOTEQUAL",
	TokenLess:           "LESS",
	TokenLessEqual:      "LESSEQUAL",
	TokenGreater:        "GREATER",
	TokenGreaterEqual:   "GREATEREQUAL",
	TokenAnd:            "AND",
	TokenOr:             "OR",
	TokenNot:            "NOT",
	TokenBitAnd:         "BITAND",
	TokenBitOr:          "BITOR",
	TokenBitXor:         "BITXOR",
	TokenShl:            "SHL",
	TokenShr:            "SHR",
	TokenCoalesce:       "COALESCE",
	TokenQuestion:       "QUESTION",
	TokenQuestionDot:    "QUESTIONDOT",
	TokenColon:          "COLON",
	TokenDot:            "DOT",
	TokenHash:           "HASH",
	TokenArrow:          "ARROW",
	TokenAssign:         "ASSIGN",
	TokenPlusPlus:       "PLUSPLUS",
	TokenMinusMinus:     "MINUSMINUS",
	TokenRangeExclusive: "RANGEEXCLUSIVE",
	TokenRangeInclusive: "RANGEINCLUSIVE",
	TokenLeftParen:      "LPAREN",
	TokenRightParen:     "RPAREN",
	TokenLeftBracket:    "LBRACKET",
	TokenRightBracket:   "RBRACKET",
	TokenBlockOpen:      "BLOCKOPEN",
	TokenRightBrace:     "RBRACE",
	TokenSemicolon:      "SEMICOLON",
	TokenComma:          "COMMA",
	TokenLassoOpen:      "LASSOOPEN",
	TokenLassoClose:     "LASSOCLOSE",
	TokenCorral:         "CORRAL",
}

// String returns the upper-case name of a token type.
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return "UNKNOWN"
}

// keywords maps reserved words to their token types. It is never modified.
var keywords = map[string]TokenType{
	"tag":       TokenTag,
	"brand":     TokenBrand,
	"task":      TokenTask,
	"ranch":     TokenRanch,
	"roundup":   TokenRoundup,
	"whoa":      TokenWhoa,
	"iffin":     TokenIffin,
	"otherwise": TokenOtherwise,
	"till":      TokenTill,
	"repeat":    TokenRepeat,
	"for":       TokenFor,
	"in":        TokenIn,
	"holler":    TokenHoller,
	"someodd":   TokenSomeodd,
	"no":        TokenNo,
	"random":    TokenRandom,
	"true":      TokenTrue,
	"false":     TokenFalse,
}

// LookupKeyword returns the keyword token type for identifier, or
// TokenIdentifier when it is not reserved.
func LookupKeyword(identifier string) TokenType {
	if tokenType, ok := keywords[identifier]; ok {
		return tokenType
	}
	return TokenIdentifier
}

// IsKeyword reports whether the token type is a reserved word.
func (tt TokenType) IsKeyword() bool {
	return tt >= TokenTag && tt <= TokenFalse
}

// IsOperator reports whether the token type is an operator.
func (tt TokenType) IsOperator() bool {
	return tt >= TokenPlus && tt <= TokenRangeInclusive
}

// IsLiteral reports whether the token type is a literal value.
func (tt TokenType) IsLiteral() bool {
	return (tt >= TokenInt && tt <= TokenString) || tt == TokenTrue || tt == TokenFalse
}
