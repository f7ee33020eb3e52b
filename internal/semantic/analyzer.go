// Package semantic checks a parsed Yalle program and turns it into the
// annotated tree of package ir.
//
// The analyzer walks the syntax tree once, in source order, resolving every
// name against a chain of scopes and computing the type of every expression.
// Names must be declared before they are used, except that a task may call
// itself and a ranch may name itself in an optional or array field.
//
// Analysis stops at the first violated rule. The error is a *Error carrying
// an ErrorCode, so callers can test it with errors.Is:
//
//	_, err := semantic.Analyze(program)
//	if errors.Is(err, semantic.ErrUndeclaredIdentifier) { ... }
package semantic

import (
	"github.com/hassan/yalle/internal/ir"
	"github.com/hassan/yalle/internal/logger"
	"github.com/hassan/yalle/internal/parser/ast"
	"github.com/hassan/yalle/internal/semantic/types"
	"github.com/hassan/yalle/internal/symtab"
)

// Analyzer implements ast.Visitor. Statement visits return an ir.Stmt and
// expression visits an ir.Expr.
type Analyzer struct {
	universe *symtab.Scope
	global   *symtab.Scope

	// scope is the innermost scope of the node being visited.
	scope *symtab.Scope
}

// New creates an analyzer with a fresh universe and an empty global scope.
func New() *Analyzer {
	universe := symtab.NewUniverse()
	global := symtab.NewScope(symtab.ScopeGlobal, universe)
	return &Analyzer{
		universe: universe,
		global:   global,
		scope:    global,
	}
}

// Analyze checks program with a new analyzer.
func Analyze(program *ast.Program) (*ir.Program, error) {
	return New().Analyze(program)
}

// Analyze checks program and returns its annotated tree.
func (a *Analyzer) Analyze(program *ast.Program) (*ir.Program, error) {
	logger.LogPhase("analyze")

	statements, err := a.stmts(program.Statements)
	if err != nil {
		if semErr, ok := err.(*Error); ok {
			logger.LogError("analyze", semErr.Pos.Line, semErr.Message)
		}
		return nil, err
	}
	a.reportUnused(a.global)

	logger.LogPhaseComplete("analyze", "statements", len(statements))
	return &ir.Program{Statements: statements}, nil
}

// GlobalScope returns the top-level scope. After Analyze it holds every
// top-level declaration, and its children the nested scopes.
func (a *Analyzer) GlobalScope() *symtab.Scope {
	return a.global
}

// Traversal helpers

func (a *Analyzer) expr(e ast.Expr) (ir.Expr, error) {
	result, err := e.Accept(a)
	if err != nil {
		return nil, err
	}
	return result.(ir.Expr), nil
}

func (a *Analyzer) stmt(s ast.Stmt) (ir.Stmt, error) {
	result, err := s.Accept(a)
	if err != nil {
		return nil, err
	}
	return result.(ir.Stmt), nil
}

func (a *Analyzer) stmts(list []ast.Stmt) ([]ir.Stmt, error) {
	result := make([]ir.Stmt, 0, len(list))
	for _, s := range list {
		analyzed, err := a.stmt(s)
		if err != nil {
			return nil, err
		}
		result = append(result, analyzed)
	}
	return result, nil
}

// block analyzes the statements of body in a new scope of the given kind.
// setup, when non-nil, runs inside the new scope before the statements; for
// loops use it to declare their iterator.
func (a *Analyzer) block(kind symtab.ScopeKind, body *ast.BlockStmt, setup func() error) ([]ir.Stmt, error) {
	a.enterScope(kind)
	defer a.exitScope()

	if setup != nil {
		if err := setup(); err != nil {
			return nil, err
		}
	}
	return a.stmts(body.Statements)
}

func (a *Analyzer) enterScope(kind symtab.ScopeKind) {
	a.scope = symtab.NewScope(kind, a.scope)
}

func (a *Analyzer) exitScope() {
	a.reportUnused(a.scope)
	a.scope = a.scope.Parent
}

func (a *Analyzer) reportUnused(scope *symtab.Scope) {
	for _, symbol := range scope.UnusedSymbols() {
		logger.LogUnused(symbol.Kind.String(), symbol.Name, symbol.Pos.Line)
	}
}

// define declares symbol in the current scope, turning a clash into a
// DuplicateDeclaration error at name.
func (a *Analyzer) define(symbol *symtab.Symbol, name *ast.IdentifierExpr) error {
	if err := a.scope.Define(symbol); err != nil {
		return newError(ErrDuplicateDeclaration, name, "%s", err.Error())
	}
	return nil
}

// resolveType turns a type annotation into a type.
func (a *Analyzer) resolveType(t ast.TypeExpr) (types.Type, error) {
	switch t := t.(type) {
	case *ast.NamedType:
		symbol := a.scope.Lookup(t.Name.Name)
		if symbol == nil {
			return nil, newError(ErrUndeclaredIdentifier, t, "Identifier %s not declared", t.Name.Name)
		}
		if symbol.Kind != symtab.SymbolType {
			return nil, newError(ErrTypeExpected, t, "Type expected")
		}
		return symbol.Type, nil

	case *ast.ArrayType:
		element, err := a.resolveType(t.Element)
		if err != nil {
			return nil, err
		}
		return types.NewArray(element), nil

	case *ast.OptionalType:
		base, err := a.resolveType(t.Base)
		if err != nil {
			return nil, err
		}
		return types.NewOptional(base), nil

	case *ast.FunctionType:
		params := make([]types.Type, len(t.Params))
		for i, param := range t.Params {
			resolved, err := a.resolveType(param)
			if err != nil {
				return nil, err
			}
			params[i] = resolved
		}
		returns, err := a.resolveType(t.Returns)
		if err != nil {
			return nil, err
		}
		return types.NewFunction(params, returns), nil

	default:
		return nil, newError(ErrTypeExpected, t, "Type expected")
	}
}

// Declarations

func (a *Analyzer) VisitVarDecl(decl *ast.VarDecl) (interface{}, error) {
	// The initializer is analyzed first so it cannot see the variable.
	initializer, err := a.expr(decl.Initializer)
	if err != nil {
		return nil, err
	}

	varType := initializer.ExprType()
	if decl.Type != nil {
		declared, err := a.resolveType(decl.Type)
		if err != nil {
			return nil, err
		}
		initializer = withTargetType(initializer, declared)
		if err := mustBeAssignable(initializer, declared, decl.Initializer); err != nil {
			return nil, err
		}
		varType = declared
	}
	if types.IsVoid(varType) {
		return nil, newError(ErrTypeMismatch, decl.Initializer, "Cannot assign a void to a variable")
	}

	variable := &ir.Variable{
		Name:     decl.Name.Name,
		ReadOnly: decl.IsReadOnly(),
		Type:     varType,
	}
	if err := a.define(symtab.NewVariable(variable, decl.Name.Pos()), decl.Name); err != nil {
		return nil, err
	}

	return &ir.VariableDeclaration{Variable: variable, Initializer: initializer}, nil
}

func (a *Analyzer) VisitFuncDecl(decl *ast.FuncDecl) (interface{}, error) {
	paramTypes := make([]types.Type, len(decl.Params))
	for i, param := range decl.Params {
		resolved, err := a.resolveType(param.Type)
		if err != nil {
			return nil, err
		}
		paramTypes[i] = resolved
	}

	returnType := types.Type(types.Void)
	if decl.ReturnType != nil {
		resolved, err := a.resolveType(decl.ReturnType)
		if err != nil {
			return nil, err
		}
		returnType = resolved
	}

	// The task is declared before its body so it can call itself.
	fun := &ir.Function{Name: decl.Name.Name, Type: types.NewFunction(paramTypes, returnType)}
	symbol := symtab.NewFunction(fun, decl.Name.Pos())
	if err := a.define(symbol, decl.Name); err != nil {
		return nil, err
	}

	a.enterScope(symtab.ScopeFunction)
	defer a.exitScope()
	a.scope.Function = symbol

	params := make([]*ir.Variable, len(decl.Params))
	for i, param := range decl.Params {
		params[i] = &ir.Variable{Name: param.Name.Name, Type: paramTypes[i]}
		if err := a.define(symtab.NewVariable(params[i], param.Name.Pos()), param.Name); err != nil {
			return nil, err
		}
	}

	body, err := a.stmts(decl.Body.Statements)
	if err != nil {
		return nil, err
	}

	return &ir.FunctionDeclaration{Fun: fun, Params: params, Body: body}, nil
}

func (a *Analyzer) VisitTypeDecl(decl *ast.TypeDecl) (interface{}, error) {
	seen := make(map[string]bool, len(decl.Fields))
	for _, field := range decl.Fields {
		if seen[field.Name.Name] {
			return nil, newError(ErrDuplicateField, field.Name, "Fields must be distinct")
		}
		seen[field.Name.Name] = true
	}

	// Declared first so fields can refer to the struct itself.
	structType := types.NewStruct(decl.Name.Name)
	if err := a.define(symtab.NewType(structType.Name, structType, decl.Name.Pos()), decl.Name); err != nil {
		return nil, err
	}

	fields := make([]*types.Field, len(decl.Fields))
	for i, field := range decl.Fields {
		fieldType, err := a.resolveType(field.Type)
		if err != nil {
			return nil, err
		}
		fields[i] = &types.Field{Name: field.Name.Name, Type: fieldType}
	}
	structType.Fields = fields

	for _, field := range fields {
		if containsStruct(field.Type, structType, map[*types.StructType]bool{}) {
			return nil, newError(ErrSelfContainingType, decl.Name, "Type %s must not be self-containing", structType.Name)
		}
	}

	return &ir.TypeDeclaration{Type: structType}, nil
}

// Statements

func (a *Analyzer) VisitIncDecStmt(stmt *ast.IncDecStmt) (interface{}, error) {
	target, err := a.expr(stmt.Target)
	if err != nil {
		return nil, err
	}
	if err := mustBeInteger(target, stmt.Target); err != nil {
		return nil, err
	}
	if err := mustBeWritable(target, stmt.Target); err != nil {
		return nil, err
	}

	if stmt.IsIncrement() {
		return &ir.Increment{Target: target}, nil
	}
	return &ir.Decrement{Target: target}, nil
}

func (a *Analyzer) VisitAssignStmt(stmt *ast.AssignStmt) (interface{}, error) {
	source, err := a.expr(stmt.Value)
	if err != nil {
		return nil, err
	}
	target, err := a.expr(stmt.Target)
	if err != nil {
		return nil, err
	}

	source = withTargetType(source, target.ExprType())
	if err := mustBeAssignable(source, target.ExprType(), stmt.Value); err != nil {
		return nil, err
	}
	if err := mustBeWritable(target, stmt.Target); err != nil {
		return nil, err
	}

	return &ir.Assignment{Target: target, Source: source}, nil
}

func (a *Analyzer) VisitBreakStmt(stmt *ast.BreakStmt) (interface{}, error) {
	if a.scope.FindEnclosingLoop() == nil {
		return nil, newError(ErrIllegalBreak, stmt, "Break can only appear in a loop")
	}
	return &ir.BreakStatement{}, nil
}

func (a *Analyzer) VisitReturnStmt(stmt *ast.ReturnStmt) (interface{}, error) {
	function := a.scope.Function
	if function == nil {
		return nil, newError(ErrIllegalReturn, stmt, "Return can only appear in a task")
	}
	returnType := function.Type.(*types.FunctionType).Returns

	if stmt.Value == nil {
		if !types.IsVoid(returnType) {
			return nil, newError(ErrMissingReturn, stmt, "Something should be returned")
		}
		return &ir.ShortReturnStatement{}, nil
	}

	if types.IsVoid(returnType) {
		return nil, newError(ErrUnexpectedReturnValue, stmt, "Cannot return a value from this task")
	}
	value, err := a.expr(stmt.Value)
	if err != nil {
		return nil, err
	}
	value = withTargetType(value, returnType)
	if err := mustBeAssignable(value, returnType, stmt.Value); err != nil {
		return nil, err
	}

	return &ir.ReturnStatement{Expression: value}, nil
}

func (a *Analyzer) VisitIfStmt(stmt *ast.IfStmt) (interface{}, error) {
	test, err := a.expr(stmt.Condition)
	if err != nil {
		return nil, err
	}
	if err := mustBeBoolean(test, stmt.Condition); err != nil {
		return nil, err
	}

	consequent, err := a.block(symtab.ScopeBlock, stmt.Then, nil)
	if err != nil {
		return nil, err
	}

	result := &ir.IfStatement{Test: test, Consequent: consequent}
	switch alternate := stmt.Else.(type) {
	case nil:
	case *ast.BlockStmt:
		statements, err := a.block(symtab.ScopeBlock, alternate, nil)
		if err != nil {
			return nil, err
		}
		result.Alternate = &ir.Block{Statements: statements}
	default:
		analyzed, err := a.stmt(alternate)
		if err != nil {
			return nil, err
		}
		result.Alternate = analyzed
	}

	return result, nil
}

func (a *Analyzer) VisitWhileStmt(stmt *ast.WhileStmt) (interface{}, error) {
	test, err := a.expr(stmt.Condition)
	if err != nil {
		return nil, err
	}
	if err := mustBeBoolean(test, stmt.Condition); err != nil {
		return nil, err
	}

	body, err := a.block(symtab.ScopeLoop, stmt.Body, nil)
	if err != nil {
		return nil, err
	}
	return &ir.WhileStatement{Test: test, Body: body}, nil
}

func (a *Analyzer) VisitRepeatStmt(stmt *ast.RepeatStmt) (interface{}, error) {
	count, err := a.expr(stmt.Count)
	if err != nil {
		return nil, err
	}
	if err := mustBeInteger(count, stmt.Count); err != nil {
		return nil, err
	}

	body, err := a.block(symtab.ScopeLoop, stmt.Body, nil)
	if err != nil {
		return nil, err
	}
	return &ir.RepeatStatement{Count: count, Body: body}, nil
}

func (a *Analyzer) VisitForStmt(stmt *ast.ForStmt) (interface{}, error) {
	collection, err := a.expr(stmt.Collection)
	if err != nil {
		return nil, err
	}
	array, err := mustBeArray(collection, stmt.Collection)
	if err != nil {
		return nil, err
	}

	iterator := &ir.Variable{Name: stmt.Iterator.Name, ReadOnly: true, Type: array.Element}
	body, err := a.block(symtab.ScopeLoop, stmt.Body, func() error {
		return a.define(symtab.NewVariable(iterator, stmt.Iterator.Pos()), stmt.Iterator)
	})
	if err != nil {
		return nil, err
	}

	return &ir.ForStatement{Iterator: iterator, Collection: collection, Body: body}, nil
}

func (a *Analyzer) VisitForRangeStmt(stmt *ast.ForRangeStmt) (interface{}, error) {
	low, err := a.expr(stmt.Low)
	if err != nil {
		return nil, err
	}
	if err := mustBeInteger(low, stmt.Low); err != nil {
		return nil, err
	}
	high, err := a.expr(stmt.High)
	if err != nil {
		return nil, err
	}
	if err := mustBeInteger(high, stmt.High); err != nil {
		return nil, err
	}

	op := ir.RangeExclusive
	if stmt.IsInclusive() {
		op = ir.RangeInclusive
	}

	iterator := &ir.Variable{Name: stmt.Iterator.Name, ReadOnly: true, Type: types.Int}
	body, err := a.block(symtab.ScopeLoop, stmt.Body, func() error {
		return a.define(symtab.NewVariable(iterator, stmt.Iterator.Pos()), stmt.Iterator)
	})
	if err != nil {
		return nil, err
	}

	return &ir.ForRangeStatement{Iterator: iterator, Low: low, Op: op, High: high, Body: body}, nil
}

func (a *Analyzer) VisitPrintStmt(stmt *ast.PrintStmt) (interface{}, error) {
	argument, err := a.expr(stmt.Value)
	if err != nil {
		return nil, err
	}
	return &ir.PrintStatement{Argument: argument}, nil
}

func (a *Analyzer) VisitCallStmt(stmt *ast.CallStmt) (interface{}, error) {
	call, err := a.expr(stmt.Call)
	if err != nil {
		return nil, err
	}
	return &ir.CallStatement{Call: call}, nil
}

// VisitBlockStmt only runs for a block reached through the visitor; the
// analyzer itself opens block scopes with a.block.
func (a *Analyzer) VisitBlockStmt(stmt *ast.BlockStmt) (interface{}, error) {
	statements, err := a.block(symtab.ScopeBlock, stmt, nil)
	if err != nil {
		return nil, err
	}
	return &ir.Block{Statements: statements}, nil
}
