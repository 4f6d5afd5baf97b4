package lower

import (
	"vslower/internal/ast"
	"vslower/internal/ir"
	"vslower/internal/types"
)

// constFold evaluates the small set of AST nodes that can appear inside
// a global initializer at compile time: literals and a leading unary
// minus on one. Anything else degrades to the zero value, matching
// spec §4.11's tolerance for constructs this stage can't handle.
func constFold(tree *ast.Tree, id ast.NodeID, elemDT types.DataType) ir.Const {
	n := tree.Get(id)
	zero := zeroConst(elemDT)
	if n == nil {
		return zero
	}
	neg := false
	for n.Kind == ast.KindUnaryOp {
		switch n.Name {
		case "-":
			neg = !neg
		case "+":
		default:
			return zero
		}
		n = tree.Get(n.Children[0])
		if n == nil {
			return zero
		}
	}
	if n.Kind != ast.KindLiteral {
		return zero
	}
	switch elemDT {
	case types.Float32:
		v := float32(n.FloatVal)
		if n.Payload == ast.PayloadInt {
			v = float32(n.IntVal)
		}
		if neg {
			v = -v
		}
		return ir.ConstFloat(v)
	case types.Bool:
		v := n.IntVal != 0
		return ir.ConstBool(v)
	default:
		v := int32(n.IntVal)
		if n.Payload == ast.PayloadFloat {
			v = int32(n.FloatVal)
		}
		if neg {
			v = -v
		}
		return ir.ConstInt(v)
	}
}

func zeroConst(dt types.DataType) ir.Const {
	switch dt {
	case types.Float32:
		return ir.ConstFloat(0)
	case types.Bool:
		return ir.ConstBool(false)
	default:
		return ir.ConstInt(0)
	}
}

// buildGlobalArrayInit flattens initID against shape and returns one
// ir.Const per flat slot, row-major, unspecified slots zeroed (spec
// §4.10).
func buildGlobalArrayInit(tree *ast.Tree, initID ast.NodeID, shape []int, elemDT types.DataType) []ir.Const {
	total := product(shape)
	out := make([]ir.Const, total)
	z := zeroConst(elemDT)
	for i := range out {
		out[i] = z
	}
	for _, slot := range flattenInit(tree, initID, shape) {
		if slot.idx >= 0 && slot.idx < total {
			out[slot.idx] = constFold(tree, slot.node, elemDT)
		}
	}
	return out
}

// emitLocalArrayInit implements spec §4.10's local-array path: a
// zero-fill loop over the whole flat slot range, then one store per
// explicitly-written slot.
func (fc *FuncCtx) emitLocalArrayInit(ptr ir.Operand, elemType ir.Type, elemDT types.DataType, shape []int, initID ast.NodeID) {
	total := product(shape)
	fc.emitZeroFillLoop(ptr, elemType, total)

	for _, slot := range flattenInit(fc.lw.tree, initID, shape) {
		val := fc.lowerExpr(fc.lw.tree.Get(slot.node))
		val = fc.coerce(val, elemDT)
		elemPtr := fc.b.CreateGep(*ptr.Type.Elem, ptr, flatIndices(slot.idx, shape))
		fc.b.CreateStore(val, elemPtr)
	}
}

// flatIndices converts a flat slot index back into a per-dimension GEP
// index list (with a leading 0 for the whole-array pointer), row-major.
func flatIndices(flat int, shape []int) []ir.Operand {
	idx := make([]int, len(shape))
	rem := flat
	for d := len(shape) - 1; d >= 0; d-- {
		size := shape[d]
		if size == 0 {
			size = 1
		}
		idx[d] = rem % size
		rem /= size
	}
	ops := make([]ir.Operand, 0, len(shape)+1)
	ops = append(ops, ir.FromConst(ir.ConstInt(0)))
	for _, v := range idx {
		ops = append(ops, ir.FromConst(ir.ConstInt(int32(v))))
	}
	return ops
}

// emitZeroFillLoop builds the one-block-form cond/loop/merge zero-fill
// loop spec §4.10 calls for on local arrays.
func (fc *FuncCtx) emitZeroFillLoop(ptr ir.Operand, elemType ir.Type, total int) {
	counterPtr := fc.b.CreateAlloca(ir.Int32(), "zfill.i")
	fc.b.CreateStore(ir.FromConst(ir.ConstInt(0)), counterPtr)

	condBB := fc.b.NewBlock("zfill.cond")
	loopBB := fc.b.NewBlock("zfill.loop")
	mergeBB := fc.b.NewBlock("zfill.merge")
	fc.b.CreateBr(condBB.ID)

	fc.b.SetInsertPoint(condBB)
	i := fc.b.CreateLoad(counterPtr)
	cond := fc.b.CreateICmp(ir.ICmpSlt, i, ir.FromConst(ir.ConstInt(int32(total))))
	fc.b.CreateCondBr(cond, loopBB.ID, mergeBB.ID)

	fc.b.SetInsertPoint(loopBB)
	i = fc.b.CreateLoad(counterPtr)
	elemPtr := fc.b.CreateGep(ir.Array(elemType, total), ptr, []ir.Operand{ir.FromConst(ir.ConstInt(0)), i})
	fc.b.CreateStore(zeroOperand(elemType), elemPtr)
	next := fc.b.CreateBinOp(ir.BinAdd, i, ir.FromConst(ir.ConstInt(1)))
	fc.b.CreateStore(next, counterPtr)
	fc.b.CreateBr(condBB.ID)

	fc.b.SetInsertPoint(mergeBB)
}

func zeroOperand(t ir.Type) ir.Operand {
	switch t.Kind {
	case ir.TFloat32:
		return ir.FromConst(ir.ConstFloat(0))
	case ir.TBool:
		return ir.FromConst(ir.ConstBool(false))
	default:
		return ir.FromConst(ir.ConstInt(0))
	}
}
