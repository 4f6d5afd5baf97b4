package lower

import (
	"vslower/internal/ast"
	"vslower/internal/ir"
	"vslower/internal/symbols"
)

// paramIRType builds a parameter's IR type per spec §4.8: a scalar
// passes by value; an array passes as a pointer to the element type
// (one declared dimension) or to an array type built from dimensions
// 2..n of the shape (more than one declared dimension).
func paramIRType(sym *symbols.Symbol) ir.Type {
	elem := ir.FromDataType(sym.DataType)
	if sym.Kind != symbols.KindArray && sym.Kind != symbols.KindConstArray {
		return elem
	}
	inner := elem
	for d := len(sym.Shape) - 1; d >= 1; d-- {
		inner = ir.Array(inner, sym.Shape[d])
	}
	return ir.Ptr(inner)
}

// declareSignature builds an ir.Function's signature (no blocks yet) for
// one KindFuncDef node, used in the module lowerer's first pass so every
// function's FuncID is known before any body is lowered (spec §4.9).
func declareSignature(syms *symbols.Service, node *ast.Node) *ir.Function {
	sym := syms.GetByID(node.Sym)
	fn := &ir.Function{Name: sym.Name, RetType: ir.FromDataType(sym.DataType)}
	for _, pid := range sym.Params {
		psym := syms.GetByID(pid)
		fn.Params = append(fn.Params, ir.Param{Name: psym.Name, Type: paramIRType(psym)})
	}
	return fn
}

// lowerFunctionBody runs spec §4.8's prologue and then lowers the body.
// fn already has its signature (Name/Params/RetType) from
// declareSignature; this fills in Blocks.
func (lw *Lowerer) lowerFunctionBody(fn *ir.Function, node *ast.Node) error {
	sym := lw.syms.GetByID(node.Sym)
	fc := newFuncCtx(lw, fn, sym)

	entry := fc.b.NewBlock("entry")
	fc.b.SetInsertPoint(entry)

	for i, pid := range sym.Params {
		psym := lw.syms.GetByID(pid)
		incoming := fc.b.NewParamValue(fn.Params[i].Type)
		fn.Params[i].ID = incoming.Value

		if psym.Kind == symbols.KindArray || psym.Kind == symbols.KindConstArray {
			fc.locals[pid] = incoming
			fc.arrayParams[pid] = true
			continue
		}
		slot := fc.b.CreateAlloca(ir.FromDataType(psym.DataType), psym.Name)
		fc.b.CreateStore(incoming, slot)
		fc.locals[pid] = slot
	}

	for _, lid := range sym.Locals {
		lsym := lw.syms.GetByID(lid)
		if lsym.Kind == symbols.KindArray || lsym.Kind == symbols.KindConstArray {
			arrType := arrayIRType(lsym)
			fc.locals[lid] = fc.b.CreateAlloca(arrType, lsym.Name)
		} else {
			fc.locals[lid] = fc.b.CreateAlloca(ir.FromDataType(lsym.DataType), lsym.Name)
		}
	}

	body := lw.tree.Child(node, len(node.Children)-1)
	fc.lowerStmt(body)

	if !fc.blocked() {
		if fn.RetType.Kind == ir.TVoid {
			fc.b.CreateRet(ir.Operand{}, false)
		} else {
			fc.b.CreateRet(ir.FromConst(ir.ConstInt(0)), true)
		}
	}
	return nil
}

// arrayIRType builds the full multi-dimensional array type for a
// non-parameter array symbol (spec §4.6: "the base type ... is the full
// array type").
func arrayIRType(sym *symbols.Symbol) ir.Type {
	elem := ir.FromDataType(sym.DataType)
	t := elem
	for d := len(sym.Shape) - 1; d >= 0; d-- {
		t = ir.Array(t, sym.Shape[d])
	}
	return t
}
