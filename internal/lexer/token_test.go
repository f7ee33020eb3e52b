package lexer

import (
	"testing"
)

func TestToken_String(t *testing.T) {
	tests := []struct {
		name     string
		token    Token
		expected string
	}{
		{
			name: "identifier token",
			token: Token{
				Type:     TokenIdentifier,
				Lexeme:   "dog",
				Position: Position{Line: 1, Column: 1},
			},
			expected: "IDENTIFIER(dog) at Line 1, col 1",
		},
		{
			name: "int token",
			token: Token{
				Type:     TokenInt,
				Lexeme:   "42",
				Position: Position{Line: 5, Column: 10},
			},
			expected: "INT(42) at Line 5, col 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.token.String()
			if result != tt.expected {
				t.Errorf("Token.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestToken_End(t *testing.T) {
	token := Token{
		Type:     TokenIdentifier,
		Lexeme:   "コンパイラ",
		Position: Position{Line: 1, Column: 5, Offset: 4},
	}

	end := token.End()
	if end.Column != 10 {
		t.Errorf("End().Column = %d, want 10", end.Column)
	}
	if end.Offset != 4+len("コンパイラ") {
		t.Errorf("End().Offset = %d, want %d", end.Offset, 4+len("コンパイラ"))
	}
}

func TestTokenType_String(t *testing.T) {
	tests := []struct {
		tokenType TokenType
		expected  string
	}{
		{TokenEOF, "EOF"},
		{TokenTag, "TAG"},
		{TokenCoalesce, "COALESCE"},
		{TokenCorral, "CORRAL"},
		{TokenType(9999), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.tokenType.String(); got != tt.expected {
				t.Errorf("TokenType.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		word     string
		expected TokenType
	}{
		{"tag", TokenTag},
		{"brand", TokenBrand},
		{"iffin", TokenIffin},
		{"otherwise", TokenOtherwise},
		{"someodd", TokenSomeodd},
		{"holler", TokenHoller},
		{"print", TokenIdentifier},
		{"Tag", TokenIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := LookupKeyword(tt.word); got != tt.expected {
				t.Errorf("LookupKeyword(%q) = %v, want %v", tt.word, got, tt.expected)
			}
		})
	}
}

func TestTokenType_Categories(t *testing.T) {
	tests := []struct {
		tokenType  TokenType
		isKeyword  bool
		isOperator bool
		isLiteral  bool
	}{
		{TokenTag, true, false, false},
		{TokenTrue, true, false, true},
		{TokenInt, false, false, true},
		{TokenString, false, false, true},
		{TokenIdentifier, false, false, false},
		{TokenPlus, false, true, false},
		{TokenRangeInclusive, false, true, false},
		{TokenCorral, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.tokenType.String(), func(t *testing.T) {
			if got := tt.tokenType.IsKeyword(); got != tt.isKeyword {
				t.Errorf("IsKeyword() = %v, want %v", got, tt.isKeyword)
			}
			if got := tt.tokenType.IsOperator(); got != tt.isOperator {
				t.Errorf("IsOperator() = %v, want %v", got, tt.isOperator)
			}
			if got := tt.tokenType.IsLiteral(); got != tt.isLiteral {
				t.Errorf("IsLiteral() = %v, want %v", got, tt.isLiteral)
			}
		})
	}
}
