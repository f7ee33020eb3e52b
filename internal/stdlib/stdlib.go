// Package stdlib holds the entities every Yalle program can use without
// declaring them: the primitive type names, the constant π and a handful of
// math and string functions.
//
// The table is built once at package initialization and never modified.
// Concurrent compilations may read it freely; each one copies the entries
// it needs into its own universe scope.
package stdlib

import (
	"github.com/hassan/yalle/internal/ir"
	"github.com/hassan/yalle/internal/semantic/types"
)

var (
	Pi = &ir.Variable{Name: "π", ReadOnly: true, Type: types.Float}

	Print = fun("print", types.Void, types.Any)

	Sin   = fun("sin", types.Float, types.Float)
	Cos   = fun("cos", types.Float, types.Float)
	Exp   = fun("exp", types.Float, types.Float)
	Ln    = fun("ln", types.Float, types.Float)
	Hypot = fun("hypot", types.Float, types.Float, types.Float)

	Bytes      = fun("bytes", types.NewArray(types.Int), types.String)
	Codepoints = fun("codepoints", types.NewArray(types.Int), types.String)
)

// Types maps the built-in type names to their types.
var Types = map[string]types.Type{
	"int":     types.Int,
	"float":   types.Float,
	"boolean": types.Bool,
	"string":  types.String,
	"void":    types.Void,
	"any":     types.Any,
}

// Entities lists every built-in value (variables and functions) in a fixed
// order.
var Entities = []ir.Expr{Pi, Print, Sin, Cos, Exp, Ln, Hypot, Bytes, Codepoints}

// TypeNames lists the keys of Types in a fixed order.
var TypeNames = []string{"int", "float", "boolean", "string", "void", "any"}

func fun(name string, returns types.Type, params ...types.Type) *ir.Function {
	return &ir.Function{Name: name, Type: types.NewFunction(params, returns)}
}

// IsBuiltin reports whether e is one of the built-in entities.
func IsBuiltin(e ir.Expr) bool {
	for _, entity := range Entities {
		if entity == e {
			return true
		}
	}
	return false
}
