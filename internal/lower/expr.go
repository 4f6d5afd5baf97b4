package lower

import (
	"vslower/internal/ast"
	"vslower/internal/ir"
	"vslower/internal/symbols"
	"vslower/internal/types"
)

// lowerExpr implements spec §4.6. It returns the zero Operand when the
// subtree is malformed (spec §4.11/§7: "the lowerer returns none from
// that subtree").
func (fc *FuncCtx) lowerExpr(n *ast.Node) ir.Operand {
	if n == nil {
		return ir.Operand{}
	}
	switch n.Kind {
	case ast.KindLiteral:
		return fc.lowerLiteral(n)
	case ast.KindVarRef:
		return fc.lowerVarRef(n)
	case ast.KindArrayRef:
		return fc.lowerArrayRef(n)
	case ast.KindElemAccess:
		ptr, loaded, full := fc.lowerElemAccess(n)
		if full {
			return loaded
		}
		return ptr
	case ast.KindCall:
		return fc.lowerCall(n)
	case ast.KindUnaryOp:
		return fc.lowerUnary(n)
	case ast.KindBinaryOp:
		return fc.lowerBinary(n)
	default:
		return fc.lowerGeneric(n)
	}
}

// lowerGeneric is spec §4.11's fallback for unrecognized node kinds: it
// lowers every child and returns the last produced value.
func (fc *FuncCtx) lowerGeneric(n *ast.Node) ir.Operand {
	var last ir.Operand
	for _, cid := range n.Children {
		last = fc.lowerExpr(fc.lw.tree.Get(cid))
	}
	return last
}

func (fc *FuncCtx) lowerLiteral(n *ast.Node) ir.Operand {
	switch n.Payload {
	case ast.PayloadInt:
		return ir.FromConst(ir.ConstInt(int32(n.IntVal)))
	case ast.PayloadFloat:
		return ir.FromConst(ir.ConstFloat(float32(n.FloatVal)))
	default:
		return ir.Operand{}
	}
}

// lowerVarRef loads through whatever pointer locals/globals has bound
// the symbol to (spec §4.6).
func (fc *FuncCtx) lowerVarRef(n *ast.Node) ir.Operand {
	ptr, ok := fc.lookupPtr(n.Sym)
	if !ok {
		return ir.Operand{}
	}
	return fc.b.CreateLoad(ptr)
}

// lowerArrayRef returns the array's base pointer verbatim, used as a
// GEP base or a by-reference call argument (spec §4.6).
func (fc *FuncCtx) lowerArrayRef(n *ast.Node) ir.Operand {
	ptr, ok := fc.lookupPtr(n.Sym)
	if !ok {
		return ir.Operand{}
	}
	return ptr
}

func (fc *FuncCtx) lookupPtr(sym symbols.SymbolID) (ir.Operand, bool) {
	if ptr, ok := fc.locals[sym]; ok {
		return ptr, true
	}
	if gid, ok := fc.lw.globalMap[sym]; ok {
		g := fc.lw.module.Global(gid)
		return ir.FromGlobal(gid, g.Type), true
	}
	return ir.Operand{}, false
}

// lowerElemAccess implements spec §4.6's element-access rule. It returns
// the computed pointer and, when the index count matches the symbol's
// full dimension count, the loaded value too; callers that need the
// pointer (assignment LHS, partial reference as a call argument) use the
// first result.
func (fc *FuncCtx) lowerElemAccess(n *ast.Node) (ptr ir.Operand, loaded ir.Operand, full bool) {
	sym := fc.lw.syms.GetByID(n.Sym)
	if sym == nil {
		return ir.Operand{}, ir.Operand{}, false
	}
	base, ok := fc.lookupPtr(n.Sym)
	if !ok {
		return ir.Operand{}, ir.Operand{}, false
	}

	indices := make([]ir.Operand, 0, len(n.Children))
	isParam := fc.arrayParams[n.Sym]
	baseType := base.Type
	if baseType.Kind == ir.TPtr {
		baseType = *baseType.Elem
	}
	if !isParam {
		indices = append(indices, ir.FromConst(ir.ConstInt(0)))
	}
	for _, cid := range n.Children {
		idx := fc.lowerExpr(fc.lw.tree.Get(cid))
		idx = fc.coerce(idx, types.Int32)
		indices = append(indices, idx)
	}

	elemPtr := fc.b.CreateGep(baseType, base, indices)
	if len(n.Children) == len(sym.Shape) {
		return elemPtr, fc.b.CreateLoad(elemPtr), true
	}
	return elemPtr, ir.Operand{}, false
}

func (fc *FuncCtx) lowerCall(n *ast.Node) ir.Operand {
	if n.Payload != ast.PayloadSymbol {
		return ir.Operand{}
	}
	calleeSym := fc.lw.syms.GetByID(n.Sym)
	fid, ok := fc.lw.funcMap[n.Sym]
	if calleeSym == nil || !ok {
		return ir.Operand{}
	}
	callee := fc.lw.module.Func(fid)

	args := make([]ir.Operand, 0, len(n.Children))
	for i, cid := range n.Children {
		argNode := fc.lw.tree.Get(cid)
		val := fc.lowerExpr(argNode)
		if i < len(callee.Params) && callee.Params[i].Type.Kind != ir.TPtr {
			val = fc.coerce(val, dataTypeOfIRType(callee.Params[i].Type))
		}
		args = append(args, val)
	}
	return fc.b.CreateCall(fid, callee.Name, args, callee.RetType)
}

func (fc *FuncCtx) lowerUnary(n *ast.Node) ir.Operand {
	operand := fc.lowerExpr(fc.lw.tree.Get(n.Children[0]))
	switch n.Name {
	case "+":
		return operand
	case "-":
		if operand.Type.Kind == ir.TBool {
			// spec §9 open question: unary - on bool is identity.
			return operand
		}
		if operand.Type.Kind == ir.TFloat32 {
			return fc.b.CreateBinOp(ir.BinSub, ir.FromConst(ir.ConstFloat(0)), operand)
		}
		return fc.b.CreateBinOp(ir.BinSub, ir.FromConst(ir.ConstInt(0)), operand)
	case "!":
		if operand.Type.Kind == ir.TBool {
			return fc.b.CreateICmp(ir.ICmpEq, fc.coerce(operand, types.Int32), ir.FromConst(ir.ConstInt(0)))
		}
		return fc.b.CreateICmp(ir.ICmpEq, operand, ir.FromConst(ir.ConstInt(0)))
	default:
		return operand
	}
}

func (fc *FuncCtx) lowerBinary(n *ast.Node) ir.Operand {
	if n.Name == "&&" || n.Name == "||" {
		return fc.lowerShortCircuit(n)
	}
	l := fc.lowerExpr(fc.lw.tree.Get(n.Children[0]))
	r := fc.lowerExpr(fc.lw.tree.Get(n.Children[1]))
	l, r = fc.promote(l, r)

	isFloat := l.Type.Kind == ir.TFloat32
	switch n.Name {
	case "+":
		return fc.b.CreateBinOp(ir.BinAdd, l, r)
	case "-":
		return fc.b.CreateBinOp(ir.BinSub, l, r)
	case "*":
		return fc.b.CreateBinOp(ir.BinMul, l, r)
	case "/":
		return fc.b.CreateBinOp(ir.BinDiv, l, r)
	case "%":
		return fc.b.CreateBinOp(ir.BinRem, l, r)
	case "==", "!=", "<", "<=", ">", ">=":
		return fc.lowerCompare(n.Name, l, r, isFloat)
	default:
		return ir.Operand{}
	}
}

func (fc *FuncCtx) lowerCompare(op string, l, r ir.Operand, isFloat bool) ir.Operand {
	if isFloat {
		kinds := map[string]ir.FCmpKind{"==": ir.FCmpEq, "!=": ir.FCmpNe, "<": ir.FCmpLt, "<=": ir.FCmpLe, ">": ir.FCmpGt, ">=": ir.FCmpGe}
		return fc.b.CreateFCmp(kinds[op], l, r)
	}
	kinds := map[string]ir.ICmpKind{"==": ir.ICmpEq, "!=": ir.ICmpNe, "<": ir.ICmpSlt, "<=": ir.ICmpSle, ">": ir.ICmpSgt, ">=": ir.ICmpSge}
	return fc.b.CreateICmp(kinds[op], l, r)
}

// lowerShortCircuit implements spec §4.6's five-step diamond-plus-phi
// recipe for && and ||.
func (fc *FuncCtx) lowerShortCircuit(n *ast.Node) ir.Operand {
	lhs := fc.lowerExpr(fc.lw.tree.Get(n.Children[0]))
	lhs = fc.coerce(lhs, types.Bool)
	entryBlock := fc.b.GetInsertBlock().ID

	rhsBB := fc.b.NewBlock(n.Name + ".rhs")
	mergeBB := fc.b.NewBlock(n.Name + ".merge")

	if n.Name == "&&" {
		fc.b.CreateCondBr(lhs, rhsBB.ID, mergeBB.ID)
	} else {
		fc.b.CreateCondBr(lhs, mergeBB.ID, rhsBB.ID)
	}

	fc.b.SetInsertPoint(rhsBB)
	rhs := fc.lowerExpr(fc.lw.tree.Get(n.Children[1]))
	rhs = fc.coerce(rhs, types.Bool)
	rhsExit := fc.b.GetInsertBlock()
	if !rhsExit.Terminated() {
		fc.b.CreateBr(mergeBB.ID)
	}

	fc.b.SetInsertPoint(mergeBB)
	shortCircuitValue := n.Name == "||"
	phi := fc.b.CreatePhi(ir.Bool(), []ir.PhiIncoming{
		{Val: ir.FromConst(ir.ConstBool(shortCircuitValue)), Pred: entryBlock},
		{Val: rhs, Pred: rhsExit.ID},
	})
	return phi
}
