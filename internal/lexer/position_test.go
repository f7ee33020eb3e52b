package lexer

import (
	"testing"
)

func TestPosition_String(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected string
	}{
		{
			name:     "valid position",
			pos:      Position{Line: 42, Column: 15, Offset: 100},
			expected: "Line 42, col 15",
		},
		{
			name:     "zero position",
			pos:      Position{},
			expected: "Line 0, col 0",
		},
		{
			name:     "line 1 column 1",
			pos:      Position{Line: 1, Column: 1},
			expected: "Line 1, col 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.pos.String()
			if result != tt.expected {
				t.Errorf("Position.String() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestPosition_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected bool
	}{
		{"zero value", Position{}, false},
		{"first line", Position{Line: 1, Column: 1}, true},
		{"column only", Position{Column: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.expected {
				t.Errorf("Position.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPosition_Ordering(t *testing.T) {
	a := Position{Line: 1, Column: 1, Offset: 0}
	b := Position{Line: 2, Column: 4, Offset: 12}

	if !a.Before(b) {
		t.Error("expected a.Before(b)")
	}
	if a.After(b) {
		t.Error("did not expect a.After(b)")
	}
	if !b.After(a) {
		t.Error("expected b.After(a)")
	}
	if a.Before(a) || a.After(a) {
		t.Error("a position is neither before nor after itself")
	}
}

func TestError_Error(t *testing.T) {
	err := &Error{Pos: Position{Line: 3, Column: 7}, Message: "Unterminated string literal"}
	want := "Line 3, col 7: Unterminated string literal"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
