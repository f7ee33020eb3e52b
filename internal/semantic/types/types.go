// Package types implements the Yalle type system.
//
// Types are compared structurally: [int] equals any other [int], and two
// function types are equal when their parameter and return types are. Struct
// types are the exception; each ranch declaration creates a distinct type and
// struct equality is pointer identity.
//
// There are no implicit conversions. An int is never a float; the only
// relaxation is the any type, which is assignable to and from everything.
package types

import (
	"strings"
)

// Type is implemented by every Yalle type.
type Type interface {
	// String returns the type as written in diagnostics, e.g. "[int]",
	// "string?", "(int, boolean)->void".
	String() string

	// Equals reports structural equality (identity for structs).
	Equals(other Type) bool

	// AssignableTo reports whether a value of this type may be stored in a
	// location of type other.
	AssignableTo(other Type) bool

	kind() TypeKind
}

// TypeKind is the coarse classification of a type.
type TypeKind int

const (
	KindVoid TypeKind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindAny
	KindArray
	KindOptional
	KindFunction
	KindStruct
)

// Kind returns the classification of t.
func Kind(t Type) TypeKind {
	return t.kind()
}

// Primitive types

type VoidType struct{}

func (v *VoidType) String() string               { return "void" }
func (v *VoidType) Equals(other Type) bool       { _, ok := other.(*VoidType); return ok }
func (v *VoidType) AssignableTo(other Type) bool { return assignable(v, other) }
func (v *VoidType) kind() TypeKind               { return KindVoid }

type IntType struct{}

func (i *IntType) String() string               { return "int" }
func (i *IntType) Equals(other Type) bool       { _, ok := other.(*IntType); return ok }
func (i *IntType) AssignableTo(other Type) bool { return assignable(i, other) }
func (i *IntType) kind() TypeKind               { return KindInt }

type FloatType struct{}

func (f *FloatType) String() string               { return "float" }
func (f *FloatType) Equals(other Type) bool       { _, ok := other.(*FloatType); return ok }
func (f *FloatType) AssignableTo(other Type) bool { return assignable(f, other) }
func (f *FloatType) kind() TypeKind               { return KindFloat }

type BoolType struct{}

func (b *BoolType) String() string               { return "boolean" }
func (b *BoolType) Equals(other Type) bool       { _, ok := other.(*BoolType); return ok }
func (b *BoolType) AssignableTo(other Type) bool { return assignable(b, other) }
func (b *BoolType) kind() TypeKind               { return KindBool }

type StringType struct{}

func (s *StringType) String() string               { return "string" }
func (s *StringType) Equals(other Type) bool       { _, ok := other.(*StringType); return ok }
func (s *StringType) AssignableTo(other Type) bool { return assignable(s, other) }
func (s *StringType) kind() TypeKind               { return KindString }

// AnyType is the top type. It is what print accepts.
type AnyType struct{}

func (a *AnyType) String() string               { return "any" }
func (a *AnyType) Equals(other Type) bool       { _, ok := other.(*AnyType); return ok }
func (a *AnyType) AssignableTo(other Type) bool { return true }
func (a *AnyType) kind() TypeKind               { return KindAny }

// Composite types

// ArrayType is [Element].
type ArrayType struct {
	Element Type
}

func (a *ArrayType) String() string {
	return "[" + a.Element.String() + "]"
}

func (a *ArrayType) Equals(other Type) bool {
	if o, ok := other.(*ArrayType); ok {
		return a.Element.Equals(o.Element)
	}
	return false
}

func (a *ArrayType) AssignableTo(other Type) bool { return assignable(a, other) }
func (a *ArrayType) kind() TypeKind               { return KindArray }

// OptionalType is Base?, a value that may be absent.
type OptionalType struct {
	Base Type
}

func (o *OptionalType) String() string {
	return o.Base.String() + "?"
}

func (o *OptionalType) Equals(other Type) bool {
	if p, ok := other.(*OptionalType); ok {
		return o.Base.Equals(p.Base)
	}
	return false
}

func (o *OptionalType) AssignableTo(other Type) bool { return assignable(o, other) }
func (o *OptionalType) kind() TypeKind               { return KindOptional }

// FunctionType is (Params...)->Returns.
//
// Function types are assignable only when they are equal. Parameters are not
// contravariant and results are not covariant, so a (any)->void task cannot
// be passed where an (int)->void one is expected.
type FunctionType struct {
	Params  []Type
	Returns Type
}

func (f *FunctionType) String() string {
	params := make([]string, len(f.Params))
	for i, param := range f.Params {
		params[i] = param.String()
	}
	return "(" + strings.Join(params, ", ") + ")->" + f.Returns.String()
}

func (f *FunctionType) Equals(other Type) bool {
	o, ok := other.(*FunctionType)
	if !ok {
		return false
	}
	if len(f.Params) != len(o.Params) || !f.Returns.Equals(o.Returns) {
		return false
	}
	for i, param := range f.Params {
		if !param.Equals(o.Params[i]) {
			return false
		}
	}
	return true
}

func (f *FunctionType) AssignableTo(other Type) bool { return assignable(f, other) }
func (f *FunctionType) kind() TypeKind               { return KindFunction }

// Field is one named member of a struct.
type Field struct {
	Name string
	Type Type
}

// StructType is a ranch declaration. Fields keep declaration order, which is
// also the constructor's parameter order.
type StructType struct {
	Name   string
	Fields []*Field
}

func (s *StructType) String() string { return s.Name }

// Equals is identity: two ranches with identical fields are still distinct.
func (s *StructType) Equals(other Type) bool {
	o, ok := other.(*StructType)
	return ok && s == o
}

func (s *StructType) AssignableTo(other Type) bool { return assignable(s, other) }
func (s *StructType) kind() TypeKind               { return KindStruct }

// LookupField returns the field called name, or nil.
func (s *StructType) LookupField(name string) *Field {
	for _, field := range s.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// Constructor returns the type of the struct used as a callee: one parameter
// per field, in order, returning the struct.
func (s *StructType) Constructor() *FunctionType {
	params := make([]Type, len(s.Fields))
	for i, field := range s.Fields {
		params[i] = field.Type
	}
	return &FunctionType{Params: params, Returns: s}
}

func assignable(from, to Type) bool {
	if _, ok := to.(*AnyType); ok {
		return true
	}
	return from.Equals(to)
}

// Predefined primitive types. Every primitive is a singleton, so the rest of
// the compiler may compare them with ==.
var (
	Void   = &VoidType{}
	Int    = &IntType{}
	Float  = &FloatType{}
	Bool   = &BoolType{}
	String = &StringType{}
	Any    = &AnyType{}
)

// Helper functions

// IsNumeric reports whether t is int or float.
func IsNumeric(t Type) bool {
	switch t.(type) {
	case *IntType, *FloatType:
		return true
	default:
		return false
	}
}

// IsOrdered reports whether values of t can be compared with < <= > >=.
func IsOrdered(t Type) bool {
	return IsNumeric(t) || IsString(t)
}

func IsBoolean(t Type) bool {
	_, ok := t.(*BoolType)
	return ok
}

func IsInteger(t Type) bool {
	_, ok := t.(*IntType)
	return ok
}

func IsString(t Type) bool {
	_, ok := t.(*StringType)
	return ok
}

func IsVoid(t Type) bool {
	_, ok := t.(*VoidType)
	return ok
}

func IsAny(t Type) bool {
	_, ok := t.(*AnyType)
	return ok
}

// NewArray returns [element].
func NewArray(element Type) *ArrayType {
	return &ArrayType{Element: element}
}

// NewOptional returns base?.
func NewOptional(base Type) *OptionalType {
	return &OptionalType{Base: base}
}

// NewFunction returns (params...)->returns.
func NewFunction(params []Type, returns Type) *FunctionType {
	return &FunctionType{Params: params, Returns: returns}
}

// NewStruct returns an empty struct type; fields are attached once they have
// been resolved, which lets a field refer to its own struct.
func NewStruct(name string) *StructType {
	return &StructType{Name: name}
}
