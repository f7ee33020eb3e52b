package semantic

import (
	"fmt"

	"github.com/hassan/yalle/internal/lexer"
	"github.com/hassan/yalle/internal/parser/ast"
)

// ErrorCode classifies a semantic error. Codes are errors themselves so
// callers can write errors.Is(err, semantic.ErrTypeMismatch).
type ErrorCode int

const (
	ErrDuplicateDeclaration ErrorCode = iota + 1
	ErrUndeclaredIdentifier
	ErrDuplicateField
	ErrSelfContainingType
	ErrAssignToConstant
	ErrTypeMismatch
	ErrOperandTypeMismatch
	ErrExpectedBoolean
	ErrExpectedInteger
	ErrExpectedNumber
	ErrExpectedArray
	ErrExpectedOptional
	ErrExpectedStruct
	ErrIllegalBreak
	ErrIllegalReturn
	ErrMissingReturn
	ErrUnexpectedReturnValue
	ErrArityMismatch
	ErrUncallableTarget
	ErrNoSuchField
	ErrTypeExpected
)

var codeNames = map[ErrorCode]string{
	ErrDuplicateDeclaration:  "DuplicateDeclaration",
	ErrUndeclaredIdentifier:  "UndeclaredIdentifier",
	ErrDuplicateField:        "DuplicateField",
	ErrSelfContainingType:    "SelfContainingType",
	ErrAssignToConstant:      "AssignToConstant",
	ErrTypeMismatch:          "TypeMismatch",
	ErrOperandTypeMismatch:   "OperandTypeMismatch",
	ErrExpectedBoolean:       "ExpectedBoolean",
	ErrExpectedInteger:       "ExpectedInteger",
	ErrExpectedNumber:        "ExpectedNumber",
	ErrExpectedArray:         "ExpectedArray",
	ErrExpectedOptional:      "ExpectedOptional",
	ErrExpectedStruct:        "ExpectedStruct",
	ErrIllegalBreak:          "IllegalBreak",
	ErrIllegalReturn:         "IllegalReturn",
	ErrMissingReturn:         "MissingReturn",
	ErrUnexpectedReturnValue: "UnexpectedReturnValue",
	ErrArityMismatch:         "ArityMismatch",
	ErrUncallableTarget:      "UncallableTarget",
	ErrNoSuchField:           "NoSuchField",
	ErrTypeExpected:          "TypeExpected",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

func (c ErrorCode) Error() string { return c.String() }

// Error is a semantic error: the first rule a program violates.
type Error struct {
	Code    ErrorCode
	Pos     lexer.Position
	Message string
}

// Error renders the error as "Line L, col C: message".
func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Message
}

// Is matches the error against its code.
func (e *Error) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && code == e.Code
}

func newError(code ErrorCode, at ast.Node, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Pos:     at.Pos(),
		Message: fmt.Sprintf(format, args...),
	}
}
