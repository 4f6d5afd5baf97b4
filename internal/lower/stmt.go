package lower

import (
	"vslower/internal/ast"
	"vslower/internal/ir"
	"vslower/internal/types"
)

// lowerStmtList lowers n's children as a straight-line sequence, per
// spec §4.7, stopping as soon as the current block becomes terminated or
// pending (a break/continue/return already closed it) — any further
// sibling statements are unreachable.
func (fc *FuncCtx) lowerStmtList(n *ast.Node) {
	for _, cid := range n.Children {
		if fc.blocked() {
			return
		}
		fc.lowerStmt(fc.lw.tree.Get(cid))
	}
}

func (fc *FuncCtx) lowerStmt(n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.KindBlock:
		fc.lowerStmtList(n)
	case ast.KindList:
		// A local declaration group (spec §4.3's list-of-lists): each
		// child is itself a VarDef/ArrayDef/ConstVarDef/ConstArrayDef.
		fc.lowerStmtList(n)
	case ast.KindVarDef, ast.KindConstVarDef:
		fc.lowerScalarDef(n)
	case ast.KindArrayDef, ast.KindConstArrayDef:
		fc.lowerLocalArrayDef(n)
	case ast.KindAssign:
		fc.lowerAssign(n)
	case ast.KindExprStmt:
		if len(n.Children) > 0 {
			fc.lowerExpr(fc.lw.tree.Get(n.Children[0]))
		}
	case ast.KindIf:
		fc.lowerIf(n)
	case ast.KindWhile:
		fc.lowerWhile(n)
	case ast.KindBreak:
		fc.lowerBreak()
	case ast.KindContinue:
		fc.lowerContinue()
	case ast.KindReturn:
		fc.lowerReturn(n)
	default:
		fc.lowerGeneric(n)
	}
}

// lowerScalarDef handles a local scalar definition visited during body
// lowering: the prologue (see func.go) already allocated its slot, so
// here we just store the initializer if one is present (spec §4.7).
func (fc *FuncCtx) lowerScalarDef(n *ast.Node) {
	ptr, ok := fc.locals[n.Sym]
	if !ok || len(n.Children) == 0 {
		return
	}
	sym := fc.lw.syms.GetByID(n.Sym)
	val := fc.lowerExpr(fc.lw.tree.Get(n.Children[0]))
	val = fc.coerce(val, sym.DataType)
	fc.b.CreateStore(val, ptr)
}

// lowerLocalArrayDef handles a local array definition visited during
// body lowering: the slot was pre-allocated in the prologue; an
// initializer, if present, drives the zero-fill-then-store sequence of
// spec §4.10.
func (fc *FuncCtx) lowerLocalArrayDef(n *ast.Node) {
	ptr, ok := fc.locals[n.Sym]
	if !ok || len(n.Children) == 0 {
		return
	}
	sym := fc.lw.syms.GetByID(n.Sym)
	elemType := ir.FromDataType(sym.DataType)
	fc.emitLocalArrayInit(ptr, elemType, sym.DataType, sym.Shape, n.Children[0])
}

func (fc *FuncCtx) lowerAssign(n *ast.Node) {
	lhsNode := fc.lw.tree.Get(n.Children[0])
	rhsNode := fc.lw.tree.Get(n.Children[1])
	ptr, dt := fc.lowerLValue(lhsNode)
	if ptr.Type.Kind != ir.TPtr {
		return
	}
	val := fc.lowerExpr(rhsNode)
	val = fc.coerce(val, dt)
	fc.b.CreateStore(val, ptr)
}

// lowerLValue computes the pointer an assignment's left-hand side stores
// through, plus the scalar DataType it must coerce the right-hand value
// to (spec §4.7).
func (fc *FuncCtx) lowerLValue(n *ast.Node) (ir.Operand, types.DataType) {
	switch n.Kind {
	case ast.KindVarRef:
		ptr, ok := fc.lookupPtr(n.Sym)
		if !ok {
			return ir.Operand{}, types.Void
		}
		sym := fc.lw.syms.GetByID(n.Sym)
		return ptr, sym.DataType
	case ast.KindElemAccess:
		ptr, _, _ := fc.lowerElemAccess(n)
		sym := fc.lw.syms.GetByID(n.Sym)
		return ptr, sym.DataType
	default:
		return ir.Operand{}, types.Void
	}
}

// lowerIf implements spec §4.7. When an if-else's branches both end
// terminated (or pending-break/continue), no merge block is created at
// all — there is nothing to fall through to it, and an unused merge
// block would be left with zero predecessors, violating spec §8
// property 3. The no-else form always needs a merge block: it is the
// condbr's own false target.
func (fc *FuncCtx) lowerIf(n *ast.Node) {
	cond := fc.lowerExpr(fc.lw.tree.Get(n.Children[0]))
	cond = fc.coerce(cond, types.Bool)

	thenBB := fc.b.NewBlock("if.then")
	hasElse := len(n.Children) > 2

	if !hasElse {
		mergeBB := fc.b.NewBlock("if.merge")
		fc.b.CreateCondBr(cond, thenBB.ID, mergeBB.ID)

		fc.b.SetInsertPoint(thenBB)
		fc.lowerStmt(fc.lw.tree.Get(n.Children[1]))
		if !fc.blocked() {
			fc.b.CreateBr(mergeBB.ID)
		}
		fc.b.SetInsertPoint(mergeBB)
		return
	}

	elseBB := fc.b.NewBlock("if.else")
	fc.b.CreateCondBr(cond, thenBB.ID, elseBB.ID)

	fc.b.SetInsertPoint(thenBB)
	fc.lowerStmt(fc.lw.tree.Get(n.Children[1]))
	thenExit := fc.b.GetInsertBlock()
	thenOpen := !fc.blocked()

	fc.b.SetInsertPoint(elseBB)
	fc.lowerStmt(fc.lw.tree.Get(n.Children[2]))
	elseExit := fc.b.GetInsertBlock()
	elseOpen := !fc.blocked()

	if !thenOpen && !elseOpen {
		return
	}

	mergeBB := fc.b.NewBlock("if.merge")
	if thenOpen {
		fc.b.SetInsertPoint(thenExit)
		fc.b.CreateBr(mergeBB.ID)
	}
	if elseOpen {
		fc.b.SetInsertPoint(elseExit)
		fc.b.CreateBr(mergeBB.ID)
	}
	fc.b.SetInsertPoint(mergeBB)
}

func (fc *FuncCtx) lowerWhile(n *ast.Node) {
	condBB := fc.b.NewBlock("while.cond")
	loopBB := fc.b.NewBlock("while.loop")
	mergeBB := fc.b.NewBlock("while.merge")

	fc.b.CreateBr(condBB.ID)

	fc.b.SetInsertPoint(condBB)
	cond := fc.lowerExpr(fc.lw.tree.Get(n.Children[0]))
	cond = fc.coerce(cond, types.Bool)
	fc.b.CreateCondBr(cond, loopBB.ID, mergeBB.ID)

	frame := &loopFrame{condBlock: condBB.ID, mergeBlock: mergeBB.ID}
	fc.loops = append(fc.loops, frame)

	fc.b.SetInsertPoint(loopBB)
	fc.lowerStmt(fc.lw.tree.Get(n.Children[1]))
	if !fc.blocked() {
		fc.b.CreateBr(condBB.ID)
	}

	fc.loops = fc.loops[:len(fc.loops)-1]
	for _, bid := range frame.breaks {
		blk := fc.fn.Block(bid)
		blk.Term = ir.Terminator{Kind: ir.TermBr, Br: ir.BrTerm{Target: mergeBB.ID}}
	}
	for _, bid := range frame.continues {
		blk := fc.fn.Block(bid)
		blk.Term = ir.Terminator{Kind: ir.TermBr, Br: ir.BrTerm{Target: condBB.ID}}
	}

	fc.b.SetInsertPoint(mergeBB)
}

// lowerBreak/lowerContinue implement spec §4.7: record the current block
// against the nearest enclosing loop instead of emitting a terminator.
func (fc *FuncCtx) lowerBreak() {
	if len(fc.loops) == 0 {
		return // stray break outside a loop: malformed-AST tolerance, spec §7.
	}
	frame := fc.loops[len(fc.loops)-1]
	blk := fc.b.GetInsertBlock()
	frame.breaks = append(frame.breaks, blk.ID)
	fc.pending[blk.ID] = true
}

func (fc *FuncCtx) lowerContinue() {
	if len(fc.loops) == 0 {
		return
	}
	frame := fc.loops[len(fc.loops)-1]
	blk := fc.b.GetInsertBlock()
	frame.continues = append(frame.continues, blk.ID)
	fc.pending[blk.ID] = true
}

func (fc *FuncCtx) lowerReturn(n *ast.Node) {
	if len(n.Children) == 0 {
		fc.b.CreateRet(ir.Operand{}, false)
		return
	}
	val := fc.lowerExpr(fc.lw.tree.Get(n.Children[0]))
	val = fc.coerce(val, dataTypeOfIRType(fc.fn.RetType))
	fc.b.CreateRet(val, true)
}
