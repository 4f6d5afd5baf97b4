// Package types holds the language's four data types and the implicit
// coercion table between them. Every other package that needs to reason
// about a value's type imports this one instead of redeclaring the enum.
package types

// DataType enumerates the scalar types the language supports. Arrays are
// not a DataType themselves; an array is an Elem DataType plus a
// dimension list carried on the symbol (see internal/symbols).
type DataType uint8

const (
	Void DataType = iota
	Int32
	Float32
	Bool
)

func (d DataType) String() string {
	switch d {
	case Void:
		return "void"
	case Int32:
		return "int"
	case Float32:
		return "float"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether d participates in arithmetic without an
// intervening coercion to int or float.
func (d DataType) IsNumeric() bool {
	return d == Int32 || d == Float32
}

// CoerceKind names the single IR cast instruction needed to move a value
// of From to To. CoerceIdentity means no instruction is emitted.
type CoerceKind uint8

const (
	CoerceIdentity CoerceKind = iota
	CoerceFPToSI              // float -> int
	CoerceSIToFP              // int -> float
	CoerceIToBoolTrunc        // int -> bool, non-zero test
	CoerceFToBoolCmp          // float -> bool, non-zero test
	CoerceBoolToIZext         // bool -> int, sext
	CoerceBoolToFSext         // bool -> float, via int
	CoerceInvalid             // no implicit coercion exists
)

// coercionTable[from][to] is the total function from spec.md §4.5: every
// (From, To) pair over {Int32, Float32, Bool} has an entry, and Void
// never appears on either axis since it only labels function results.
var coercionTable = [4][4]CoerceKind{
	Void:    {Void: CoerceIdentity, Int32: CoerceInvalid, Float32: CoerceInvalid, Bool: CoerceInvalid},
	Int32:   {Void: CoerceInvalid, Int32: CoerceIdentity, Float32: CoerceSIToFP, Bool: CoerceIToBoolTrunc},
	Float32: {Void: CoerceInvalid, Int32: CoerceFPToSI, Float32: CoerceIdentity, Bool: CoerceFToBoolCmp},
	Bool:    {Void: CoerceInvalid, Int32: CoerceBoolToIZext, Float32: CoerceBoolToFSext, Bool: CoerceIdentity},
}

// Coerce reports how to move a value from "from" to "to". ok is false
// only when from or to is Void and they differ, or either is out of range.
func Coerce(from, to DataType) (CoerceKind, bool) {
	if from > Bool || to > Bool {
		return CoerceInvalid, false
	}
	k := coercionTable[from][to]
	return k, k != CoerceInvalid
}
