package ir

import (
	"strconv"

	"vslower/internal/types"
)

// TypeKind enumerates the shapes an ir.Type can take. Scalars mirror
// types.DataType directly; Ptr and Array exist only in IR, not in the
// source language's own type system.
type TypeKind uint8

const (
	TVoid TypeKind = iota
	TInt32
	TFloat32
	TBool
	TPtr
	TArray
	TFunc
)

// Type is a tagged union so every IR value, instruction and signature can
// carry one without an interface or a type switch at every call site.
type Type struct {
	Kind TypeKind

	Elem   *Type  // Ptr, Array
	Len    int    // Array: element count of this dimension
	Params []Type // Func
	Ret    *Type  // Func
}

func Void() Type    { return Type{Kind: TVoid} }
func Int32() Type   { return Type{Kind: TInt32} }
func Float32() Type { return Type{Kind: TFloat32} }
func Bool() Type    { return Type{Kind: TBool} }

func Ptr(elem Type) Type {
	e := elem
	return Type{Kind: TPtr, Elem: &e}
}

func Array(elem Type, n int) Type {
	e := elem
	return Type{Kind: TArray, Elem: &e, Len: n}
}

// FromDataType converts a scalar DataType into its IR counterpart.
func FromDataType(d types.DataType) Type {
	switch d {
	case types.Int32:
		return Int32()
	case types.Float32:
		return Float32()
	case types.Bool:
		return Bool()
	default:
		return Void()
	}
}

// IsNumeric reports whether t is Int32 or Float32 — the two types
// arithmetic instructions accept.
func (t Type) IsNumeric() bool {
	return t.Kind == TInt32 || t.Kind == TFloat32
}

func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case TPtr:
		return t.Elem.Equal(*o.Elem)
	case TArray:
		return t.Len == o.Len && t.Elem.Equal(*o.Elem)
	default:
		return true
	}
}

func (t Type) String() string {
	switch t.Kind {
	case TVoid:
		return "void"
	case TInt32:
		return "i32"
	case TFloat32:
		return "f32"
	case TBool:
		return "i1"
	case TPtr:
		return t.Elem.String() + "*"
	case TArray:
		return "[" + strconv.Itoa(t.Len) + " x " + t.Elem.String() + "]"
	case TFunc:
		return "fn(...)"
	default:
		return "?"
	}
}
