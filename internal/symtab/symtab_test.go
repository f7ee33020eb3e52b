package symtab

import (
	"errors"
	"strings"
	"testing"

	"github.com/hassan/yalle/internal/ir"
	"github.com/hassan/yalle/internal/lexer"
	"github.com/hassan/yalle/internal/semantic/types"
)

// Test Symbol

func TestSymbol_String(t *testing.T) {
	symbol := &Symbol{
		Name: "x",
		Kind: SymbolVariable,
		Type: types.Int,
		Pos:  lexer.Position{Line: 1, Column: 5},
	}

	expected := "variable x: int at Line 1, col 5"
	result := symbol.String()
	if result != expected {
		t.Errorf("Symbol.String() = %q, want %q", result, expected)
	}

	builtin := &Symbol{Name: "sin", Kind: SymbolFunction, Type: types.NewFunction([]types.Type{types.Float}, types.Float)}
	if got := builtin.String(); got != "function sin: (float)->float" {
		t.Errorf("Symbol.String() = %q", got)
	}
}

func TestSymbol_Constructors(t *testing.T) {
	mutable := &ir.Variable{Name: "x", Type: types.Int}
	readOnly := &ir.Variable{Name: "y", ReadOnly: true, Type: types.Float}
	task := &ir.Function{Name: "f", Type: types.NewFunction(nil, types.Void)}
	ranch := types.NewStruct("S")

	tests := []struct {
		name     string
		symbol   *Symbol
		kind     SymbolKind
		entity   ir.Expr
		constant bool
	}{
		{"tag variable", NewVariable(mutable, lexer.Position{Line: 1, Column: 5}), SymbolVariable, mutable, false},
		{"brand variable", NewVariable(readOnly, lexer.Position{Line: 2, Column: 7}), SymbolVariable, readOnly, true},
		{"task", NewFunction(task, lexer.Position{Line: 3, Column: 6}), SymbolFunction, task, false},
		{"ranch", NewType("S", ranch, lexer.Position{Line: 4, Column: 7}), SymbolType, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.symbol.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.symbol.Kind, tt.kind)
			}
			if tt.symbol.Entity != tt.entity {
				t.Errorf("Entity = %v, want %v", tt.symbol.Entity, tt.entity)
			}
			if tt.symbol.Constant != tt.constant {
				t.Errorf("Constant = %v, want %v", tt.symbol.Constant, tt.constant)
			}
			if !tt.symbol.Pos.IsValid() {
				t.Errorf("Pos = %v, want a valid position", tt.symbol.Pos)
			}
		})
	}
}

// Test Scope

func TestNewScope(t *testing.T) {
	parent := NewScope(ScopeGlobal, nil)
	child := NewScope(ScopeBlock, parent)

	if child.Parent != parent {
		t.Error("Expected child scope to have correct parent")
	}

	if child.Depth != 1 {
		t.Errorf("Expected child depth = 1, got %d", child.Depth)
	}

	if len(parent.Children) != 1 || parent.Children[0] != child {
		t.Error("Expected parent to contain child in Children slice")
	}
}

func TestScope_Define(t *testing.T) {
	scope := NewScope(ScopeGlobal, nil)
	symbol := &Symbol{Name: "x", Type: types.Int}

	if err := scope.Define(symbol); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if symbol.Scope != scope {
		t.Error("Expected symbol scope to be set")
	}

	err := scope.Define(&Symbol{Name: "x", Type: types.Float})
	if err == nil {
		t.Fatal("Expected error for duplicate definition")
	}
	if err.Error() != "Identifier x already declared" {
		t.Errorf("unexpected message %q", err.Error())
	}

	var redeclared *RedeclarationError
	if !errors.As(err, &redeclared) || redeclared.Previous != symbol {
		t.Error("Expected a RedeclarationError pointing at the first declaration")
	}
}

func TestScope_DefineRejectsShadowing(t *testing.T) {
	global := NewScope(ScopeGlobal, nil)
	fn := NewScope(ScopeFunction, global)
	block := NewScope(ScopeBlock, fn)

	if err := global.Define(&Symbol{Name: "x", Type: types.Int}); err != nil {
		t.Fatal(err)
	}
	if err := block.Define(&Symbol{Name: "x", Type: types.Int}); err == nil {
		t.Error("Expected an inner declaration of x to be rejected")
	}

	// Siblings do not see each other.
	left := NewScope(ScopeBlock, fn)
	right := NewScope(ScopeBlock, fn)
	if err := left.Define(&Symbol{Name: "y", Type: types.Int}); err != nil {
		t.Fatal(err)
	}
	if err := right.Define(&Symbol{Name: "y", Type: types.Int}); err != nil {
		t.Errorf("sibling scopes may reuse a name: %v", err)
	}
}

func TestScope_Lookup(t *testing.T) {
	global := NewScope(ScopeGlobal, nil)
	local := NewScope(ScopeBlock, global)

	globalSymbol := &Symbol{Name: "x", Type: types.Int}
	localSymbol := &Symbol{Name: "y", Type: types.Float}

	if err := global.Define(globalSymbol); err != nil {
		t.Fatal(err)
	}
	if err := local.Define(localSymbol); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		scope    *Scope
		lookup   string
		expected *Symbol
	}{
		{"local in local", local, "y", localSymbol},
		{"global from local", local, "x", globalSymbol},
		{"local from global", global, "y", nil},
		{"missing", local, "z", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scope.Lookup(tt.lookup); got != tt.expected {
				t.Errorf("Lookup(%q) = %v, want %v", tt.lookup, got, tt.expected)
			}
		})
	}

	if !globalSymbol.Used {
		t.Error("Expected Lookup to mark the symbol used")
	}
}

func TestScope_FindEnclosingLoop(t *testing.T) {
	global := NewScope(ScopeGlobal, nil)
	loop := NewScope(ScopeLoop, global)
	branch := NewScope(ScopeBlock, loop)
	task := NewScope(ScopeFunction, branch)
	inner := NewScope(ScopeBlock, task)

	tests := []struct {
		name     string
		scope    *Scope
		expected *Scope
	}{
		{"top level", global, nil},
		{"loop body", loop, loop},
		{"branch in loop", branch, loop},
		{"task inside loop", task, nil},
		{"block inside task inside loop", inner, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scope.FindEnclosingLoop(); got != tt.expected {
				t.Errorf("FindEnclosingLoop() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestScope_FunctionInheritance(t *testing.T) {
	global := NewScope(ScopeGlobal, nil)
	fn := NewScope(ScopeFunction, global)
	fn.Function = &Symbol{Name: "f", Kind: SymbolFunction}
	loop := NewScope(ScopeLoop, fn)

	if loop.Function != fn.Function {
		t.Error("nested scopes should inherit the enclosing task")
	}
	if NewScope(ScopeFunction, loop).Function != nil {
		t.Error("a new function scope starts without a task")
	}
}

func TestNewUniverse(t *testing.T) {
	universe := NewUniverse()

	tests := []struct {
		name string
		kind SymbolKind
		typ  string
	}{
		{"int", SymbolType, "int"},
		{"boolean", SymbolType, "boolean"},
		{"any", SymbolType, "any"},
		{"π", SymbolVariable, "float"},
		{"print", SymbolFunction, "(any)->void"},
		{"hypot", SymbolFunction, "(float, float)->float"},
		{"codepoints", SymbolFunction, "(string)->[int]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			symbol := universe.Symbols[tt.name]
			if symbol == nil {
				t.Fatalf("universe is missing %s", tt.name)
			}
			if symbol.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", symbol.Kind, tt.kind)
			}
			if symbol.Type.String() != tt.typ {
				t.Errorf("Type = %s, want %s", symbol.Type, tt.typ)
			}
			if symbol.Scope != universe {
				t.Error("built-in should live in the universe scope")
			}
			if !symbol.Constant {
				t.Error("built-ins must be constant")
			}
		})
	}

	global := NewScope(ScopeGlobal, universe)
	if err := global.Define(&Symbol{Name: "sin", Kind: SymbolFunction, Type: types.Int}); err == nil {
		t.Error("redeclaring a built-in must fail")
	}

	universe.Lookup("sin")
	if NewUniverse().Symbols["sin"].Used {
		t.Error("universes must not share symbols")
	}
}

func TestScope_UnusedSymbols(t *testing.T) {
	scope := NewScope(ScopeGlobal, nil)
	for _, name := range []string{"a", "b", "c"} {
		if err := scope.Define(&Symbol{Name: name, Type: types.Int}); err != nil {
			t.Fatal(err)
		}
	}
	scope.Lookup("b")

	unused := scope.UnusedSymbols()
	if len(unused) != 2 || unused[0].Name != "a" || unused[1].Name != "c" {
		t.Errorf("UnusedSymbols() = %v, want [a c]", unused)
	}
}

func TestScope_DebugString(t *testing.T) {
	global := NewScope(ScopeGlobal, nil)
	if err := global.Define(&Symbol{Name: "x", Kind: SymbolVariable, Type: types.Int}); err != nil {
		t.Fatal(err)
	}
	loop := NewScope(ScopeLoop, global)
	if err := loop.Define(&Symbol{Name: "i", Kind: SymbolVariable, Type: types.Int}); err != nil {
		t.Fatal(err)
	}

	want := strings.Join([]string{
		"global scope (depth 0, 1 symbols)",
		"  variable x: int",
		"  loop scope (depth 1, 1 symbols)",
		"    variable i: int",
		"",
	}, "\n")

	if got := global.DebugString(); got != want {
		t.Errorf("DebugString() =\n%s\nwant\n%s", got, want)
	}
}
