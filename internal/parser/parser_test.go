package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hassan/yalle/internal/parser/ast"
)

func TestParse_SyntaxOK(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty program", ""},
		{"simplest print", "holler 0;"},
		{"variable declarations", "tag x -= 1;\nbrand y -= \"hello\";"},
		{"annotated declaration", "tag x: int? -= no int;"},
		{"task with return type", "task f(x: int, y: boolean): int ~~{ roundup x; }"},
		{"task with lasso params", `task f\_x: int_/ ~~{ holler x; }`},
		{"task with several lasso params", `task f\_x: float, y: boolean_/ ~~{ holler x; }`},
		{"void return", "task f() ~~{ roundup; }"},
		{"ranch", "ranch S -x-x-x-x- x: int y: [string?] -x-x-x-x-"},
		{"empty ranch", "ranch S-x-x-x-x- -x-x-x-x-"},
		{"if chain", "iffin x > 5 ~~{ whoa; } otherwise iffin x < 0 ~~{ holler 1; } otherwise ~~{ holler 2; }"},
		{"till with inc and dec", "till true ~~{ x++; y--; }"},
		{"repeat", "repeat 3 ~~{ }"},
		{"exclusive range", "for i in 1..<10 ~~{ }"},
		{"inclusive range", "for i in 1...10 ~~{}"},
		{"for over array", "for c in [1, 2, 3] ~~{ holler c; }"},
		{"empty array", "tag a -= [int]();"},
		{"element assignment", "a[1] -= 100;"},
		{"field assignment", "p.x.y -= 2;"},
		{"optional chaining", "holler y?.x;"},
		{"curried call statement", "f(1)(2);"},
		{"nested calls", "print(sin(π));"},
		{"negative exponent", "holler 2 ** -3;"},
		{"function type", "tag g: (int, boolean)->string? -= f;"},
		{"optional optional", "tag s: string?? -= no string?;"},
		{"nested unwrap", "holler someodd 5 ?? 8 ?? 0;"},
		{"length and random", "holler #a + random b;"},
		{"parenthesized print", "holler (!false);"},
		{"whoa with space", "till true ~~{ whoa ; }"},
		{"non-latin identifier", "コンパイラ -= 100;"},
		{"comments", "// comment\nholler 1; // trailing"},
		{"lasso grouping", `holler \_1 + 2_/ * 3;`},
		{"nested blocks", "task f() ~~{ till true ~~{ iffin false ~~{ whoa; } } }"},
		{"function valued field call", "holler h[0]();"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := Parse(tt.source)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if program == nil {
				t.Fatal("Parse() returned a nil program")
			}
		})
	}
}

func TestParse_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{"missing semicolon", "x -= 3 y -= 1", "Line 1, col 8: Expected ';'"},
		{"whoa with value", "whoa 5;", "Line 1, col 6: Expected ';'"},
		{"single equals", "brand x = 5;", "Line 1, col 9: Unexpected character '='"},
		{"unterminated block statement", "iffin x > 5 ~~{ holler(x)}", "Line 1, col 26: Expected ';'"},
		{"semicolon before block", "iffin x > 5; ~~{ holler(x);", "Line 1, col 12: Expected '~~{'"},
		{"unclosed block", "iffin x > 5 ~~{ holler(x);", "Line 1, col 27: Expected '}'"},
		{"stray character", "x -= 5 $ 3;", "Line 1, col 8: Unexpected character '$'"},
		{"missing initializer", "x -= );", "Line 1, col 6: Expected expression"},
		{"expression statement", "x * 5;", "Line 1, col 3: Expected '-=', '++' or '--'"},
		{"statement starting with paren", "holler(5);\n) * 5", "Line 2, col 1: Expected expression"},
		{"incomplete binary", "print(5 -", "Line 1, col 10: Expected expression"},
		{"unbalanced parens", "holler(7 * ((2 _ 3)", "Line 1, col 16: Expected ')'"},
		{"iffin as expression", "iffin iffin x == 2", "Line 1, col 7: Expected expression"},
		{"single tilde", "~{x};", "Line 1, col 1: Unexpected character '~'"},
		{"field without colon", "ranch S -x-x-x-x- x int -x-x-x-x-", "Line 1, col 21: Expected ':'"},
		{"missing type", "tag x: -= 1;", "Line 1, col 8: Expected a type"},
		{"unclosed params", "task f(x: int ~~{}", "Line 1, col 15: Expected ')'"},
		{"mismatched lasso", `task f\_x: int) ~~{}`, "Line 1, col 15: Expected '_/'"},
		{"unclosed call", "f(1;", "Line 1, col 4: Expected ')'"},
		{"trailing dot", "x-= 2.", "Line 1, col 7: Expected an identifier"},
		{"huge integer", "holler 99999999999999999999;", "Line 1, col 8: Integer literal 99999999999999999999 is out of range"},
		{"integer above 2^53", "holler 9007199254740993;", "Line 1, col 8: Integer literal 9007199254740993 is out of range"},
		{"lasso param without colon", `task f\_x_ float_/ ~~{ }`, "Line 1, col 12: Expected ':'"},
		{"integer 2^53", "holler 9007199254740992;", "Line 1, col 8: Integer literal 9007199254740992 is out of range"},
		{"unterminated string", `holler "abc`, "Line 1, col 8: Unterminated string literal"},
		{"missing in", "for i 1..<3 ~~{}", "Line 1, col 7: Expected 'in'"},
		{"empty array literal", "holler [];", "Line 1, col 9: Expected expression"},
		{"missing identifier", "tag -= 1;", "Line 1, col 5: Expected an identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.source)
			if err == nil {
				t.Fatalf("Parse() succeeded, want %q", tt.expected)
			}
			if _, ok := err.(*SyntaxError); !ok {
				t.Errorf("Parse() error type = %T, want *SyntaxError", err)
			}
			if err.Error() != tt.expected {
				t.Errorf("Parse() error = %q, want %q", err.Error(), tt.expected)
			}
		})
	}
}

func TestParse_ExpressionShape(t *testing.T) {
	tests := []struct {
		source   string
		expected string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{`\_1 + 2_/ * 3`, "(* (+ 1 2) 3)"},
		{"2 ** 3 ** 2", "(** 2 (** 3 2))"},
		{"2 ** -3", "(** 2 (- 3))"},
		{"-x ** 2", "(** (- x) 2)"},
		{"1 << 3 >> 2", "(>> (<< 1 3) 2)"},
		{"a ?? b ?? c", "(?? (?? a b) c)"},
		{"a || b && c", "(|| a (&& b c))"},
		{"x == 1 | 2", "(== x (| 1 2))"},
		{"a < b == c", "(== (< a b) c)"},
		{"t ? 1 : f ? 2 : 3", "(? t 1 (? f 2 3))"},
		{"1 < 2 ? 8.0 : -5.22", "(? (< 1 2) 8.0 (- 5.22))"},
		{"someodd 5 ?? 0", "(?? (someodd 5) 0)"},
		{"#a + 1", "(+ (# a) 1)"},
		{"!!true", "(! (! true))"},
		{"random [1, 2]", "(random [1 2])"},
		{"f(1, 2)[0].x?.y", "(?. (. (index (call f 1 2) 0) x) y)"},
		{`f\_1_/`, "(call f 1)"},
		{"h[0]()", "(call (index h 0))"},
		{"[int]()", "(emptyarray [int])"},
		{"[[string?]]()", "(emptyarray [[string?]])"},
		{"[x, y]", "[x y]"},
		{"[f](1)", "(call [f] 1)"},
		{"no int? ?? 3", "(?? (no int?) 3)"},
		{"no [string]", "(no [string])"},
		{"no (int)->boolean", "(no (int)->boolean)"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			expr := parseExpr(t, tt.source)
			if got := sexpr(expr); got != tt.expected {
				t.Errorf("parse(%q) = %s, want %s", tt.source, got, tt.expected)
			}
		})
	}
}

func TestParse_Statements(t *testing.T) {
	tests := []struct {
		source   string
		expected string
	}{
		{"tag x -= 1;", "*ast.VarDecl"},
		{"task f() ~~{}", "*ast.FuncDecl"},
		{"ranch S -x-x-x-x- -x-x-x-x-", "*ast.TypeDecl"},
		{"x++;", "*ast.IncDecStmt"},
		{"x--;", "*ast.IncDecStmt"},
		{"x -= 2;", "*ast.AssignStmt"},
		{"whoa;", "*ast.BreakStmt"},
		{"roundup;", "*ast.ReturnStmt"},
		{"iffin true ~~{}", "*ast.IfStmt"},
		{"till true ~~{}", "*ast.WhileStmt"},
		{"repeat 2 ~~{}", "*ast.RepeatStmt"},
		{"for x in a ~~{}", "*ast.ForStmt"},
		{"for x in 1...2 ~~{}", "*ast.ForRangeStmt"},
		{"holler 1;", "*ast.PrintStmt"},
		{"f();", "*ast.CallStmt"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			program, err := Parse(tt.source)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(program.Statements) != 1 {
				t.Fatalf("got %d statements, want 1", len(program.Statements))
			}
			if got := fmt.Sprintf("%T", program.Statements[0]); got != tt.expected {
				t.Errorf("statement type = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestParse_Declarations(t *testing.T) {
	program, err := Parse("brand x: [int] -= [int]();\ntask f(a: int, b: S?): (int)->void ~~{ roundup g; }\nranch S -x-x-x-x- s: string?? -x-x-x-x-")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	decl := program.Statements[0].(*ast.VarDecl)
	if !decl.IsReadOnly() || decl.Name.Name != "x" || ast.TypeString(decl.Type) != "[int]" {
		t.Errorf("unexpected variable declaration %+v", decl)
	}

	fn := program.Statements[1].(*ast.FuncDecl)
	if fn.Name.Name != "f" || len(fn.Params) != 2 {
		t.Fatalf("unexpected task %+v", fn)
	}
	if got := ast.TypeString(fn.Params[1].Type); got != "S?" {
		t.Errorf("param type = %s, want S?", got)
	}
	if got := ast.TypeString(fn.ReturnType); got != "(int)->void" {
		t.Errorf("return type = %s, want (int)->void", got)
	}
	if ret := fn.Body.Statements[0].(*ast.ReturnStmt); ret.Value == nil {
		t.Error("expected a return value")
	}

	ranch := program.Statements[2].(*ast.TypeDecl)
	if got := ast.TypeString(ranch.Fields[0].Type); got != "string??" {
		t.Errorf("field type = %s, want string??", got)
	}
}

func TestParse_IfElseChain(t *testing.T) {
	program, err := Parse("iffin a ~~{} otherwise iffin b ~~{} otherwise ~~{ holler 1; }")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	outer := program.Statements[0].(*ast.IfStmt)
	inner, ok := outer.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("else branch = %T, want *ast.IfStmt", outer.Else)
	}
	final, ok := inner.Else.(*ast.BlockStmt)
	if !ok || len(final.Statements) != 1 {
		t.Fatalf("final else = %T, want a block with one statement", inner.Else)
	}
}

func TestParse_Positions(t *testing.T) {
	program, err := Parse("tag x -= 1;\n  holler x + 22;")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	stmt := program.Statements[1].(*ast.PrintStmt)
	if got := stmt.Pos().String(); got != "Line 2, col 3" {
		t.Errorf("Pos() = %s, want Line 2, col 3", got)
	}

	sum := stmt.Value.(*ast.BinaryExpr)
	if got := sum.Pos().String(); got != "Line 2, col 10" {
		t.Errorf("BinaryExpr.Pos() = %s, want Line 2, col 10", got)
	}
	if got := sum.End().String(); got != "Line 2, col 16" {
		t.Errorf("BinaryExpr.End() = %s, want Line 2, col 16", got)
	}
	if got := program.End().String(); got != "Line 2, col 17" {
		t.Errorf("Program.End() = %s, want Line 2, col 17", got)
	}
}

func TestParse_Literals(t *testing.T) {
	tests := []struct {
		source   string
		expected interface{}
	}{
		{"42", int64(42)},
		{"3.25", 3.25},
		{"1e3", 1000.0},
		{"true", true},
		{"false", false},
		{`"plain"`, "plain"},
		{`"tab\there"`, "tab\there"},
		{`"quote \" and \\"`, `quote " and \`},
		{`"\u{1F600}"`, "\U0001F600"},
		{`"\q"`, "q"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			literal, ok := parseExpr(t, tt.source).(*ast.LiteralExpr)
			if !ok {
				t.Fatalf("expected a literal")
			}
			if literal.Value != tt.expected {
				t.Errorf("Value = %#v, want %#v", literal.Value, tt.expected)
			}
		})
	}
}

func parseExpr(t *testing.T, source string) ast.Expr {
	t.Helper()
	program, err := Parse("holler " + source + ";")
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", source, err)
	}
	return program.Statements[0].(*ast.PrintStmt).Value
}

// sexpr renders an expression as a fully parenthesized prefix form.
func sexpr(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.BinaryExpr:
		return "(" + e.Operator.Lexeme + " " + sexpr(e.Left) + " " + sexpr(e.Right) + ")"
	case *ast.UnaryExpr:
		return "(" + e.Operator.Lexeme + " " + sexpr(e.Operand) + ")"
	case *ast.ConditionalExpr:
		return "(? " + sexpr(e.Condition) + " " + sexpr(e.Then) + " " + sexpr(e.Else) + ")"
	case *ast.LiteralExpr:
		return e.Token.Lexeme
	case *ast.IdentifierExpr:
		return e.Name
	case *ast.GroupingExpr:
		return sexpr(e.Expr)
	case *ast.CallExpr:
		parts := []string{"call", sexpr(e.Callee)}
		for _, arg := range e.Args {
			parts = append(parts, sexpr(arg))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case *ast.IndexExpr:
		return "(index " + sexpr(e.Object) + " " + sexpr(e.Index) + ")"
	case *ast.MemberExpr:
		return "(" + e.Dot.Lexeme + " " + sexpr(e.Object) + " " + e.Member.Name + ")"
	case *ast.ArrayLiteralExpr:
		parts := make([]string, len(e.Elements))
		for i, element := range e.Elements {
			parts[i] = sexpr(element)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case *ast.EmptyArrayExpr:
		return "(emptyarray " + ast.TypeString(e.Type) + ")"
	case *ast.EmptyOptionalExpr:
		return "(no " + ast.TypeString(e.Type) + ")"
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func TestParse_LargestSafeInteger(t *testing.T) {
	program, err := Parse("holler 9007199254740991;")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	stmt := program.Statements[0].(*ast.PrintStmt)
	if got := stmt.Value.(*ast.LiteralExpr).Value; got != int64(9007199254740991) {
		t.Errorf("Value = %v, want 9007199254740991", got)
	}
}
