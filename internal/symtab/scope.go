package symtab

import (
	"fmt"
	"strings"

	"github.com/hassan/yalle/internal/ir"
	"github.com/hassan/yalle/internal/lexer"
	"github.com/hassan/yalle/internal/stdlib"
)

// ScopeKind is the kind of construct that opened a scope.
type ScopeKind int

const (
	// ScopeUniverse holds the built-ins and encloses the program.
	ScopeUniverse ScopeKind = iota

	// ScopeGlobal is the top level of the program.
	ScopeGlobal

	// ScopeFunction holds a task's parameters and body.
	ScopeFunction

	// ScopeBlock is one branch of an iffin.
	ScopeBlock

	// ScopeLoop is the body of till, repeat or for. The iterator of a for
	// loop lives here too.
	ScopeLoop
)

func (sk ScopeKind) String() string {
	switch sk {
	case ScopeUniverse:
		return "universe"
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeLoop:
		return "loop"
	default:
		return "unknown"
	}
}

// Scope is one lexical environment. Scopes form a tree through Parent;
// lookups walk from a scope towards the universe.
//
// EXAMPLE:
//
//	tag x -= 1;                 // global
//	task f(n: int) ~~{          // function: n
//	    till n > 0 ~~{          // loop
//	        iffin n == 2 ~~{    // block
//	        }
//	    }
//	}
type Scope struct {
	Kind   ScopeKind
	Parent *Scope

	Symbols map[string]*Symbol

	// order keeps declaration order for deterministic dumps.
	order []string

	Children []*Scope

	// Function is the task whose body encloses this scope, nil at top level.
	Function *Symbol

	Depth int
}

// NewScope creates a scope nested in parent (nil for a root).
func NewScope(kind ScopeKind, parent *Scope) *Scope {
	scope := &Scope{
		Kind:    kind,
		Parent:  parent,
		Symbols: make(map[string]*Symbol),
	}

	if parent != nil {
		scope.Depth = parent.Depth + 1
		parent.Children = append(parent.Children, scope)
		if kind != ScopeFunction {
			scope.Function = parent.Function
		}
	}

	return scope
}

// NewUniverse returns a fresh universe scope holding the built-in types,
// constants and functions. Each compilation gets its own, so symbol usage
// marks never leak between compilations.
func NewUniverse() *Scope {
	universe := NewScope(ScopeUniverse, nil)
	for _, name := range stdlib.TypeNames {
		universe.mustDefine(NewType(name, stdlib.Types[name], lexer.Position{}))
	}
	for _, entity := range stdlib.Entities {
		switch e := entity.(type) {
		case *ir.Variable:
			universe.mustDefine(NewVariable(e, lexer.Position{}))
		case *ir.Function:
			symbol := NewFunction(e, lexer.Position{})
			symbol.Constant = true
			universe.mustDefine(symbol)
		}
	}
	return universe
}

func (s *Scope) mustDefine(symbol *Symbol) {
	if err := s.Define(symbol); err != nil {
		panic(err)
	}
}

// RedeclarationError is returned by Define when the name is already visible.
type RedeclarationError struct {
	Name     string
	Previous *Symbol
}

func (e *RedeclarationError) Error() string {
	return fmt.Sprintf("Identifier %s already declared", e.Name)
}

// Define declares symbol in this scope. It fails with a *RedeclarationError
// when the name is visible here, whether declared in this scope or any
// enclosing one.
func (s *Scope) Define(symbol *Symbol) error {
	if existing := s.resolve(symbol.Name); existing != nil {
		return &RedeclarationError{Name: symbol.Name, Previous: existing}
	}

	s.Symbols[symbol.Name] = symbol
	s.order = append(s.order, symbol.Name)
	symbol.Scope = s
	return nil
}

// Lookup finds name in this scope or the nearest enclosing scope that has
// it and marks the symbol used. It returns nil when the name is undeclared.
func (s *Scope) Lookup(name string) *Symbol {
	symbol := s.resolve(name)
	if symbol != nil {
		symbol.MarkUsed()
	}
	return symbol
}

func (s *Scope) resolve(name string) *Symbol {
	for scope := s; scope != nil; scope = scope.Parent {
		if symbol, ok := scope.Symbols[name]; ok {
			return symbol
		}
	}
	return nil
}

// FindEnclosingLoop returns the nearest loop scope. The search stops at a
// function boundary: a whoa inside a task that is itself declared inside a
// loop does not belong to that loop.
func (s *Scope) FindEnclosingLoop() *Scope {
	for scope := s; scope != nil; scope = scope.Parent {
		switch scope.Kind {
		case ScopeLoop:
			return scope
		case ScopeFunction:
			return nil
		}
	}
	return nil
}

// LocalSymbols returns this scope's symbols in declaration order.
func (s *Scope) LocalSymbols() []*Symbol {
	symbols := make([]*Symbol, 0, len(s.order))
	for _, name := range s.order {
		symbols = append(symbols, s.Symbols[name])
	}
	return symbols
}

// UnusedSymbols returns this scope's symbols that were never referenced,
// in declaration order.
func (s *Scope) UnusedSymbols() []*Symbol {
	unused := make([]*Symbol, 0)
	for _, symbol := range s.LocalSymbols() {
		if !symbol.Used {
			unused = append(unused, symbol)
		}
	}
	return unused
}

func (s *Scope) String() string {
	return fmt.Sprintf("%s scope (depth %d, %d symbols)",
		s.Kind.String(), s.Depth, len(s.Symbols))
}

// DebugString renders the scope tree below s, one scope or symbol per line,
// indented by depth.
func (s *Scope) DebugString() string {
	var sb strings.Builder
	s.writeTree(&sb, 0)
	return sb.String()
}

func (s *Scope) writeTree(sb *strings.Builder, indent int) {
	prefix := strings.Repeat("  ", indent)
	sb.WriteString(prefix + s.String() + "\n")
	for _, symbol := range s.LocalSymbols() {
		sb.WriteString(prefix + "  " + symbol.String() + "\n")
	}
	for _, child := range s.Children {
		child.writeTree(sb, indent+1)
	}
}
