package ir

// ConstKind distinguishes the literal kinds the language's constant folder
// and global-initializer builder produce.
type ConstKind uint8

const (
	CInt ConstKind = iota
	CFloat
	CBool
)

// Const is a typed literal value, used both as an instruction operand and
// inside global-variable initializers (§4.10).
type Const struct {
	Kind  ConstKind
	Type  Type
	Int   int32
	Float float32
	Bool  bool
}

func ConstInt(n int32) Const     { return Const{Kind: CInt, Type: Int32(), Int: n} }
func ConstFloat(f float32) Const { return Const{Kind: CFloat, Type: Float32(), Float: f} }
func ConstBool(b bool) Const     { return Const{Kind: CBool, Type: Bool(), Bool: b} }

// OperandKind distinguishes a compile-time constant from a reference to a
// previously produced SSA value, global, or function parameter.
type OperandKind uint8

const (
	OpConst OperandKind = iota
	OpValue
	OpGlobal
)

// Operand is what every instruction consumes: a tagged union over
// constants, local SSA values and global references, carrying its own
// type so lowering never has to re-derive it.
type Operand struct {
	Kind   OperandKind
	Type   Type
	Value  ValueID
	Global GlobalID
	Const  Const
}

func FromConst(c Const) Operand { return Operand{Kind: OpConst, Type: c.Type, Const: c} }

func FromValue(id ValueID, t Type) Operand { return Operand{Kind: OpValue, Type: t, Value: id} }

func FromGlobal(id GlobalID, t Type) Operand {
	return Operand{Kind: OpGlobal, Type: Ptr(t), Global: id}
}
