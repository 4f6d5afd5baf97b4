package lower

import (
	"vslower/internal/ir"
	"vslower/internal/types"
)

// dataTypeOfIRType recovers the DataType an ir.Type was built from, for
// feeding the types.Coerce table.
func dataTypeOfIRType(t ir.Type) types.DataType {
	switch t.Kind {
	case ir.TInt32:
		return types.Int32
	case ir.TFloat32:
		return types.Float32
	case ir.TBool:
		return types.Bool
	default:
		return types.Void
	}
}

// coerce implements spec §4.5's single helper: it inserts whatever cast
// instruction (if any) moves val to target, and is a no-op when val is
// already of that type.
func (fc *FuncCtx) coerce(val ir.Operand, target types.DataType) ir.Operand {
	from := dataTypeOfIRType(val.Type)
	kind, ok := types.Coerce(from, target)
	if !ok || kind == types.CoerceIdentity {
		return val
	}
	to := ir.FromDataType(target)
	switch kind {
	case types.CoerceSIToFP:
		return fc.b.CreateCast(ir.CastSIToFP, val, to)
	case types.CoerceFPToSI:
		return fc.b.CreateCast(ir.CastFPToSI, val, to)
	case types.CoerceIToBoolTrunc:
		return fc.b.CreateCast(ir.CastTrunc, val, to)
	case types.CoerceFToBoolCmp:
		// float -> bool has no single IR cast; compare against 0.0.
		zero := ir.FromConst(ir.ConstFloat(0))
		return fc.b.CreateFCmp(ir.FCmpNe, val, zero)
	case types.CoerceBoolToIZext:
		return fc.b.CreateCast(ir.CastSExt, val, to)
	case types.CoerceBoolToFSext:
		asInt := fc.b.CreateCast(ir.CastSExt, val, ir.Int32())
		return fc.b.CreateCast(ir.CastSIToFP, asInt, ir.Float32())
	default:
		return val
	}
}

// promote implements spec §4.6's "if operand types differ, promote the
// integer one to float" rule for non-short-circuit binary operators. A
// Bool operand is coerced to Int32 first (DESIGN.md's bool/int
// asymmetry decision: arithmetic and comparison instructions only ever
// see Int32/Float32 operands, never i1) before the int/float promotion
// runs.
func (fc *FuncCtx) promote(l, r ir.Operand) (ir.Operand, ir.Operand) {
	if l.Type.Kind == ir.TBool {
		l = fc.coerce(l, types.Int32)
	}
	if r.Type.Kind == ir.TBool {
		r = fc.coerce(r, types.Int32)
	}
	if l.Type.Kind == r.Type.Kind {
		return l, r
	}
	if l.Type.Kind == ir.TFloat32 {
		return l, fc.coerce(r, types.Float32)
	}
	if r.Type.Kind == ir.TFloat32 {
		return fc.coerce(l, types.Float32), r
	}
	return l, r
}
