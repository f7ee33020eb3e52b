// Package generator turns an analyzed (and usually optimized) program into
// JavaScript source text.
//
// Every user-declared name is renamed to name_N, where N counts distinct
// entities in the order the generator first meets them. This keeps Yalle
// identifiers from colliding with JavaScript keywords and makes shadowed
// names distinct. Built-ins map onto their JavaScript equivalents.
package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hassan/yalle/internal/ir"
	"github.com/hassan/yalle/internal/logger"
	"github.com/hassan/yalle/internal/semantic/types"
	"github.com/hassan/yalle/internal/stdlib"
)

const indentUnit = "  "

// Generator emits JavaScript for one program. It is not safe for
// concurrent use; create one per compilation.
type Generator struct {
	lines  []string
	indent int

	// names holds the target name of every entity seen so far, keyed by
	// its pointer (*ir.Variable, *ir.Function, *types.StructType,
	// *types.Field, or the statement owning a hidden loop counter).
	names   map[interface{}]string
	counter int
}

// New creates a generator with an empty name table.
func New() *Generator {
	return &Generator{names: make(map[interface{}]string)}
}

// Generate returns the JavaScript for program, one statement per line.
func Generate(program *ir.Program) string {
	return New().Generate(program)
}

// Generate returns the JavaScript for program.
func (g *Generator) Generate(program *ir.Program) string {
	logger.LogPhase("generate")
	g.statements(program.Statements)
	logger.LogPhaseComplete("generate", "lines", len(g.lines), "names", g.counter)
	return strings.Join(g.lines, "\n")
}

func (g *Generator) emit(format string, args ...interface{}) {
	g.lines = append(g.lines, strings.Repeat(indentUnit, g.indent)+fmt.Sprintf(format, args...))
}

// rename returns the target name for key, allocating the next number on
// first use.
func (g *Generator) rename(key interface{}, name string) string {
	if target, ok := g.names[key]; ok {
		return target
	}
	g.counter++
	target := fmt.Sprintf("%s_%d", name, g.counter)
	g.names[key] = target
	return target
}

func (g *Generator) statements(list []ir.Stmt) {
	for _, s := range list {
		g.statement(s)
	}
}

func (g *Generator) body(list []ir.Stmt) {
	g.indent++
	g.statements(list)
	g.indent--
}

func (g *Generator) statement(s ir.Stmt) {
	switch s := s.(type) {
	case *ir.VariableDeclaration:
		keyword := "let"
		if s.Variable.ReadOnly {
			keyword = "const"
		}
		name := g.variable(s.Variable)
		g.emit("%s %s = %s;", keyword, name, g.expression(s.Initializer))

	case *ir.TypeDeclaration:
		g.emit("class %s {", g.rename(s.Type, s.Type.Name))
		g.indent++
		fields := make([]string, len(s.Type.Fields))
		for i, field := range s.Type.Fields {
			fields[i] = g.rename(field, field.Name)
		}
		g.emit("constructor(%s) {", strings.Join(fields, ", "))
		g.indent++
		for _, field := range fields {
			g.emit("this[%q] = %s;", field, field)
		}
		g.indent--
		g.emit("}")
		g.indent--
		g.emit("}")

	case *ir.FunctionDeclaration:
		name := g.rename(s.Fun, s.Fun.Name)
		params := make([]string, len(s.Params))
		for i, param := range s.Params {
			params[i] = g.variable(param)
		}
		g.emit("function %s(%s) {", name, strings.Join(params, ", "))
		g.body(s.Body)
		g.emit("}")

	case *ir.Increment:
		g.emit("%s++;", g.expression(s.Target))

	case *ir.Decrement:
		g.emit("%s--;", g.expression(s.Target))

	case *ir.Assignment:
		g.emit("%s = %s;", g.expression(s.Target), g.expression(s.Source))

	case *ir.BreakStatement:
		g.emit("break;")

	case *ir.ReturnStatement:
		g.emit("return %s;", g.expression(s.Expression))

	case *ir.ShortReturnStatement:
		g.emit("return;")

	case *ir.IfStatement:
		g.ifStatement(s)

	case *ir.Block:
		g.emit("{")
		g.body(s.Statements)
		g.emit("}")

	case *ir.WhileStatement:
		g.emit("while (%s) {", g.expression(s.Test))
		g.body(s.Body)
		g.emit("}")

	case *ir.RepeatStatement:
		// The counter is invisible to the program, so the statement itself
		// is its key.
		i := g.rename(s, "i")
		g.emit("for (let %s = 0; %s < %s; %s++) {", i, i, g.expression(s.Count), i)
		g.body(s.Body)
		g.emit("}")

	case *ir.ForRangeStatement:
		i := g.variable(s.Iterator)
		op := "<"
		if s.Op == ir.RangeInclusive {
			op = "<="
		}
		g.emit("for (let %s = %s; %s %s %s; %s++) {",
			i, g.expression(s.Low), i, op, g.expression(s.High), i)
		g.body(s.Body)
		g.emit("}")

	case *ir.ForStatement:
		g.emit("for (let %s of %s) {", g.variable(s.Iterator), g.expression(s.Collection))
		g.body(s.Body)
		g.emit("}")

	case *ir.PrintStatement:
		g.emit("console.log(%s);", g.expression(s.Argument))

	case *ir.CallStatement:
		g.emit("%s;", g.expression(s.Call))

	default:
		panic(fmt.Sprintf("generator: unexpected statement %T", s))
	}
}

// ifStatement writes an iffin chain. An else-if is written as "} else"
// followed by the nested if, one level deeper.
func (g *Generator) ifStatement(s *ir.IfStatement) {
	g.emit("if (%s) {", g.expression(s.Test))
	g.body(s.Consequent)

	switch alternate := s.Alternate.(type) {
	case nil:
		g.emit("}")
	case *ir.IfStatement:
		g.emit("} else")
		g.indent++
		g.ifStatement(alternate)
		g.indent--
	case *ir.Block:
		g.emit("} else {")
		g.body(alternate.Statements)
		g.emit("}")
	default:
		g.emit("} else {")
		g.body([]ir.Stmt{alternate})
		g.emit("}")
	}
}

func (g *Generator) variable(v *ir.Variable) string {
	if v == stdlib.Pi {
		return "Math.PI"
	}
	return g.rename(v, v.Name)
}

// builtinNames maps the built-in functions that JavaScript already has.
var builtinNames = map[*ir.Function]string{
	stdlib.Print: "console.log",
	stdlib.Sin:   "Math.sin",
	stdlib.Cos:   "Math.cos",
	stdlib.Exp:   "Math.exp",
	stdlib.Ln:    "Math.log",
	stdlib.Hypot: "Math.hypot",
}

// builtinValues are the built-ins JavaScript lacks, written as arrow
// functions for when they are used as values rather than called.
var builtinValues = map[*ir.Function]string{
	stdlib.Bytes:      "(s=>[...new TextEncoder().encode(s)])",
	stdlib.Codepoints: "(s=>[...(s)].map(s=>s.codePointAt(0)))",
}

func (g *Generator) function(f *ir.Function) string {
	if name, ok := builtinNames[f]; ok {
		return name
	}
	if value, ok := builtinValues[f]; ok {
		return value
	}
	return g.rename(f, f.Name)
}

func (g *Generator) expressions(list []ir.Expr, sep string) string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = g.expression(e)
	}
	return strings.Join(parts, sep)
}

func (g *Generator) expression(e ir.Expr) string {
	switch e := e.(type) {
	case *ir.Variable:
		return g.variable(e)

	case *ir.Function:
		return g.function(e)

	case *ir.Literal:
		return literal(e.Value)

	case *ir.BinaryExpression:
		return g.binary(e)

	case *ir.UnaryExpression:
		operand := g.expression(e.Operand)
		switch e.Op {
		case ir.OpNeg:
			return fmt.Sprintf("-(%s)", operand)
		case ir.OpNot:
			return fmt.Sprintf("!(%s)", operand)
		case ir.OpLength:
			return operand + ".length"
		case ir.OpRandom:
			return fmt.Sprintf("((a=>a[~~(Math.random()*a.length)])(%s))", operand)
		default:
			// someodd e is e: an optional is its value or undefined
			return operand
		}

	case *ir.Conditional:
		return fmt.Sprintf("((%s) ? (%s) : (%s))",
			g.expression(e.Test), g.expression(e.Consequent), g.expression(e.Alternate))

	case *ir.EmptyOptional:
		return "undefined"

	case *ir.EmptyArray:
		return "[]"

	case *ir.ArrayExpression:
		return "[" + g.expressions(e.Elements, ",") + "]"

	case *ir.SubscriptExpression:
		return fmt.Sprintf("%s[%s]", g.expression(e.Array), g.expression(e.Index))

	case *ir.MemberExpression:
		chain := ""
		if e.Optional {
			chain = "?."
		}
		return fmt.Sprintf("(%s%s[%q])", g.expression(e.Object), chain, g.rename(e.Field, e.Field.Name))

	case *ir.FunctionCall:
		return g.call(e)

	case *ir.ConstructorCall:
		return fmt.Sprintf("new %s(%s)", g.rename(e.Callee, e.Callee.Name), g.expressions(e.Args, ", "))

	default:
		panic(fmt.Sprintf("generator: unexpected expression %T", e))
	}
}

func (g *Generator) binary(e *ir.BinaryExpression) string {
	left := g.expression(e.Left)
	right := g.expression(e.Right)

	op := e.Op.String()
	switch e.Op {
	case ir.OpEq:
		op = "==="
	case ir.OpNeq:
		op = "!=="
	case ir.OpPow:
		// JavaScript rejects a unary operand on the left of **.
		if strings.HasPrefix(left, "-") {
			left = "(" + left + ")"
		}
	case ir.OpDiv:
		if types.IsInteger(e.Type) {
			return fmt.Sprintf("Math.trunc((%s / %s))", left, right)
		}
	}
	return fmt.Sprintf("(%s %s %s)", left, op, right)
}

func (g *Generator) call(e *ir.FunctionCall) string {
	if f, ok := e.Callee.(*ir.Function); ok {
		switch f {
		case stdlib.Bytes:
			return fmt.Sprintf("[...new TextEncoder().encode(%s)]", g.expression(e.Args[0]))
		case stdlib.Codepoints:
			return fmt.Sprintf("[...(%s)].map(s=>s.codePointAt(0))", g.expression(e.Args[0]))
		}
		if name, ok := builtinNames[f]; ok {
			return fmt.Sprintf("%s(%s)", name, g.expressions(e.Args, ","))
		}
	}
	return fmt.Sprintf("%s(%s)", g.expression(e.Callee), g.expressions(e.Args, ", "))
}

// literal writes a literal value as JavaScript source.
func literal(value interface{}) string {
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return number(v)
	case string:
		return quote(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		panic(fmt.Sprintf("generator: unexpected literal %T", value))
	}
}

// number formats a float the way JavaScript prints numbers: plain decimal
// notation except for very large or very small magnitudes.
func number(v float64) string {
	abs := math.Abs(v)
	if abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// quote writes s as a double-quoted string literal. JSON string syntax is
// valid JavaScript.
func quote(s string) string {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		panic(err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
