package ir

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hassan/yalle/internal/semantic/types"
)

// Stringify renders a tree as a numbered object graph, one object per line.
// Objects reachable more than once (a variable and every reference to it, a
// struct type and the fields that mention it) are printed once and referred
// to by number elsewhere, so cycles terminate.
//
// EXAMPLE:
//
//	   1 | Program statements=[#2]
//	   2 | VariableDeclaration variable=#3 initializer=#4
//	   3 | Variable name="x" readOnly=false type=int
//	   4 | Literal value=1 type=int
//
// Primitive, array, optional and function types print inline.
func Stringify(root interface{}) string {
	g := &graph{ids: make(map[objectKey]int)}
	g.ref(reflect.ValueOf(root))

	var sb strings.Builder
	for i := 0; i < len(g.queue); i++ {
		v := g.queue[i]
		fmt.Fprintf(&sb, "%4d | %s", i+1, v.Elem().Type().Name())
		g.fields(&sb, v.Elem())
		sb.WriteByte('\n')
	}
	return sb.String()
}

type graph struct {
	ids   map[objectKey]int
	queue []reflect.Value
}

// objectKey includes the type because zero-sized nodes such as
// BreakStatement may all share one address.
type objectKey struct {
	ptr uintptr
	typ reflect.Type
}

// ref returns the inline rendering of v, numbering struct pointers not yet
// seen and queueing them for their own line.
func (g *graph) ref(v reflect.Value) string {
	if !v.IsValid() {
		return "null"
	}

	if v.CanInterface() {
		if t, ok := v.Interface().(types.Type); ok && !isNil(v) {
			if _, isStruct := t.(*types.StructType); !isStruct {
				return t.String()
			}
		}
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return "null"
		}
		return g.ref(v.Elem())
	case reflect.Ptr:
		if v.IsNil() {
			return "null"
		}
		if v.Elem().Kind() != reflect.Struct {
			return g.ref(v.Elem())
		}
		key := objectKey{ptr: v.Pointer(), typ: v.Type()}
		id, ok := g.ids[key]
		if !ok {
			g.queue = append(g.queue, v)
			id = len(g.queue)
			g.ids[key] = id
		}
		return "#" + strconv.Itoa(id)
	case reflect.Slice:
		items := make([]string, v.Len())
		for i := range items {
			items[i] = g.ref(v.Index(i))
		}
		return "[" + strings.Join(items, ",") + "]"
	case reflect.String:
		return strconv.Quote(v.String())
	}

	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v.Interface())
}

func (g *graph) fields(sb *strings.Builder, v reflect.Value) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		sb.WriteString(" " + lowerFirst(field.Name) + "=" + g.ref(v.Field(i)))
	}
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
