package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// corral delimits the field list of a ranch declaration.
const corral = "-x-x-x-x-"

// Lexer scans Yalle source text into tokens.
//
// The lexer keeps the whole source in memory and tracks the start of the
// current token and the start of the current line; columns are derived from
// those on demand when a token is made.
//
// Whitespace and // comments are skipped. Lexing stops at the first error.
type Lexer struct {
	source string

	// start is the byte offset of the token being scanned.
	start int

	// current is the byte offset being examined.
	current int

	line      int
	lineStart int
}

// New creates a Lexer for source.
func New(source string) *Lexer {
	return &Lexer{
		source: source,
		line:   1,
	}
}

// Tokenize scans the whole source and returns every token up to and
// including TokenEOF.
func Tokenize(source string) ([]Token, error) {
	l := New(source)
	tokens := make([]Token, 0, len(source)/3+1)
	for {
		token, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		if token.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// NextToken returns the next token. After the input is exhausted it keeps
// returning TokenEOF.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()
	l.start = l.current

	if l.isAtEnd() {
		return l.makeToken(TokenEOF), nil
	}

	// Multi-character delimiters that would otherwise lex as operators or
	// identifiers are recognized first.
	switch {
	case l.hasPrefix(corral):
		l.current += len(corral)
		return l.makeToken(TokenCorral), nil
	case l.hasPrefix("~~{"):
		l.current += 3
		return l.makeToken(TokenBlockOpen), nil
	case l.hasPrefix(`\_`):
		l.current += 2
		return l.makeToken(TokenLassoOpen), nil
	case l.hasPrefix("_/"):
		l.current += 2
		return l.makeToken(TokenLassoClose), nil
	}

	ch := l.advance()

	if isLetter(ch) {
		return l.scanIdentifier(), nil
	}
	if isDigit(ch) {
		return l.scanNumber(), nil
	}

	switch ch {
	case '(':
		return l.makeToken(TokenLeftParen), nil
	case ')':
		return l.makeToken(TokenRightParen), nil
	case '[':
		return l.makeToken(TokenLeftBracket), nil
	case ']':
		return l.makeToken(TokenRightBracket), nil
	case '}':
		return l.makeToken(TokenRightBrace), nil
	case ';':
		return l.makeToken(TokenSemicolon), nil
	case ',':
		return l.makeToken(TokenComma), nil
	case '#':
		return l.makeToken(TokenHash), nil
	case ':':
		return l.makeToken(TokenColon), nil
	case '%':
		return l.makeToken(TokenPercent), nil
	case '/':
		return l.makeToken(TokenSlash), nil
	case '^':
		return l.makeToken(TokenBitXor), nil

	case '+':
		if l.match('+') {
			return l.makeToken(TokenPlusPlus), nil
		}
		return l.makeToken(TokenPlus), nil

	case '-':
		if l.match('=') {
			return l.makeToken(TokenAssign), nil
		} else if l.match('-') {
			return l.makeToken(TokenMinusMinus), nil
		} else if l.match('>') {
			return l.makeToken(TokenArrow), nil
		}
		return l.makeToken(TokenMinus), nil

	case '*':
		if l.match('*') {
			return l.makeToken(TokenStarStar), nil
		}
		return l.makeToken(TokenStar), nil

	case '&':
		if l.match('&') {
			return l.makeToken(TokenAnd), nil
		}
		return l.makeToken(TokenBitAnd), nil

	case '|':
		if l.match('|') {
			return l.makeToken(TokenOr), nil
		}
		return l.makeToken(TokenBitOr), nil

	case '=':
		if l.match('=') {
			return l.makeToken(TokenEqual), nil
		}
		return l.makeToken(TokenInvalid), l.error("Unexpected character '='")

	case '!':
		if l.match('=') {
			return l.makeToken(TokenNotEqual), nil
		}
		return l.makeToken(TokenNot), nil

	case '<':
		if l.match('<') {
			return l.makeToken(TokenShl), nil
		} else if l.match('=') {
			return l.makeToken(TokenLessEqual), nil
		}
		return l.makeToken(TokenLess), nil

	case '>':
		if l.match('>') {
			return l.makeToken(TokenShr), nil
		} else if l.match('=') {
			return l.makeToken(TokenGreaterEqual), nil
		}
		return l.makeToken(TokenGreater), nil

	case '?':
		if l.match('?') {
			return l.makeToken(TokenCoalesce), nil
		} else if l.match('.') {
			return l.makeToken(TokenQuestionDot), nil
		}
		return l.makeToken(TokenQuestion), nil

	case '.':
		if l.hasPrefix(".<") {
			l.current += 2
			return l.makeToken(TokenRangeExclusive), nil
		} else if l.hasPrefix("..") {
			l.current += 2
			return l.makeToken(TokenRangeInclusive), nil
		}
		return l.makeToken(TokenDot), nil

	case '"':
		return l.scanString()

	default:
		return l.makeToken(TokenInvalid), l.error(fmt.Sprintf("Unexpected character %q", ch))
	}
}

func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, size := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += size
	return ch
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current:])
	return ch
}

func (l *Lexer) peekNext() rune {
	if l.isAtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+size >= len(l.source) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.source[l.current+size:])
	return ch
}

// match consumes the next character if it is expected.
func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() || l.peek() != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) hasPrefix(prefix string) bool {
	return strings.HasPrefix(l.source[l.current:], prefix)
}

func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// skipWhitespace skips blanks, newlines and // comments, keeping line
// tracking current.
func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\r', '\t':
			l.advance()
		case '\n':
			l.advance()
			l.line++
			l.lineStart = l.current
		case '/':
			if l.peekNext() != '/' {
				return
			}
			for !l.isAtEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

// scanIdentifier scans an identifier or keyword. An underscore followed by
// a slash closes a lasso, so it ends the identifier: in f\_a_/ the argument
// is "a".
func (l *Lexer) scanIdentifier() Token {
	for !l.isAtEnd() {
		ch := l.peek()
		if ch == '_' && l.peekNext() == '/' {
			break
		}
		if !isLetter(ch) && !isDigit(ch) {
			break
		}
		l.advance()
	}
	token := l.makeToken(TokenIdentifier)
	token.Type = LookupKeyword(token.Lexeme)
	return token
}

// scanNumber scans an int or float literal.
//
// FORMATS:
//
//	42        int
//	3.14      float
//	1e10      float
//	2.5E-3    float
//
// A dot only starts a fraction when a digit follows, so 1..<5 and 1...5
// scan as ranges.
func (l *Lexer) scanNumber() Token {
	tokenType := TokenInt
	for isDigit(l.peek()) {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekNext()) {
		tokenType = TokenFloat
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	if ch := l.peek(); ch == 'e' || ch == 'E' {
		saved := l.current
		l.advance()
		if ch := l.peek(); ch == '+' || ch == '-' {
			l.advance()
		}
		if !isDigit(l.peek()) {
			l.current = saved
		} else {
			tokenType = TokenFloat
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}

	return l.makeToken(tokenType)
}

// scanString scans a double-quoted string. Escapes are kept verbatim in the
// lexeme; a raw newline before the closing quote is an error.
func (l *Lexer) scanString() (Token, error) {
	for !l.isAtEnd() {
		switch l.peek() {
		case '"':
			l.advance()
			return l.makeToken(TokenString), nil
		case '\n':
			return l.makeToken(TokenInvalid), l.error("Unterminated string literal")
		case '\\':
			l.advance()
			if !l.isAtEnd() {
				l.advance()
			}
		default:
			l.advance()
		}
	}
	return l.makeToken(TokenInvalid), l.error("Unterminated string literal")
}

func (l *Lexer) makeToken(tokenType TokenType) Token {
	return Token{
		Type:     tokenType,
		Lexeme:   l.source[l.start:l.current],
		Position: l.currentPosition(),
	}
}

// currentPosition returns the position of the token being scanned.
func (l *Lexer) currentPosition() Position {
	return Position{
		Line:   l.line,
		Column: utf8.RuneCountInString(l.source[l.lineStart:l.start]) + 1,
		Offset: l.start,
	}
}

func (l *Lexer) error(message string) error {
	return &Error{Pos: l.currentPosition(), Message: message}
}

// isLetter accepts Unicode letters and the underscore, so π and コンパイラ
// are identifiers.
func isLetter(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
