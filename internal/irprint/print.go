// Package irprint renders an ir.Module as readable text. spec.md treats
// the IR printer as an external collaborator with a fixed interface, but
// a debug build (spec §6) still needs something to show; this is modeled
// on the teacher's internal/mir print helper, trimmed to this language's
// instruction set.
package irprint

import (
	"fmt"
	"io"
	"strings"

	"vslower/internal/ir"
)

// Print writes m to w in a small LLVM-ish textual form.
func Print(w io.Writer, m *ir.Module) {
	for _, g := range m.Globals {
		fmt.Fprintf(w, "global %s %s %s = %s\n", linkageStr(g.Linkage), g.Name, g.Type, initStr(g))
	}
	for _, fn := range m.Funcs {
		printFunc(w, fn)
	}
}

func linkageStr(l ir.Linkage) string {
	if l == ir.LinkExternal {
		return "external"
	}
	return "internal"
}

func initStr(g *ir.Global) string {
	if !g.HasInit {
		return "zeroinitializer"
	}
	parts := make([]string, len(g.Init))
	for i, c := range g.Init {
		parts[i] = constStr(c)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func constStr(c ir.Const) string {
	switch c.Kind {
	case ir.CInt:
		return fmt.Sprintf("%d", c.Int)
	case ir.CFloat:
		return fmt.Sprintf("%g", c.Float)
	case ir.CBool:
		return fmt.Sprintf("%t", c.Bool)
	default:
		return "?"
	}
}

func printFunc(w io.Writer, fn *ir.Function) {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
	}
	if fn.IsDeclaration {
		fmt.Fprintf(w, "declare %s %s(%s)\n", fn.RetType, fn.Name, strings.Join(params, ", "))
		return
	}
	fmt.Fprintf(w, "func %s %s(%s) {\n", fn.RetType, fn.Name, strings.Join(params, ", "))
	for _, b := range fn.Blocks {
		fmt.Fprintf(w, "%s:\n", blockLabel(b))
		for _, ins := range b.Instrs {
			fmt.Fprintf(w, "  %s\n", instrStr(ins))
		}
		fmt.Fprintf(w, "  %s\n", termStr(b.Term))
	}
	fmt.Fprintln(w, "}")
}

func blockLabel(b *ir.Block) string {
	if b.Name != "" {
		return b.Name
	}
	return fmt.Sprintf("bb%d", b.ID)
}

func operandStr(o ir.Operand) string {
	switch o.Kind {
	case ir.OpConst:
		return constStr(o.Const)
	case ir.OpGlobal:
		return fmt.Sprintf("@g%d", o.Global)
	default:
		return fmt.Sprintf("%%%d", o.Value)
	}
}

func instrStr(ins ir.Instr) string {
	switch ins.Kind {
	case ir.InstrAlloca:
		return fmt.Sprintf("%%%d = alloca %s", ins.Dst, ins.Alloca.Elem)
	case ir.InstrLoad:
		return fmt.Sprintf("%%%d = load %s", ins.Dst, operandStr(ins.Load.Ptr))
	case ir.InstrStore:
		return fmt.Sprintf("store %s, %s", operandStr(ins.Store.Val), operandStr(ins.Store.Ptr))
	case ir.InstrGep:
		idx := make([]string, len(ins.Gep.Indices))
		for i, o := range ins.Gep.Indices {
			idx[i] = operandStr(o)
		}
		return fmt.Sprintf("%%%d = gep %s, %s, [%s]", ins.Dst, ins.Gep.BaseType, operandStr(ins.Gep.Base), strings.Join(idx, ", "))
	case ir.InstrBinOp:
		return fmt.Sprintf("%%%d = %s %s, %s", ins.Dst, binOpStr(ins.BinOp.Op), operandStr(ins.BinOp.Left), operandStr(ins.BinOp.Right))
	case ir.InstrICmp:
		return fmt.Sprintf("%%%d = icmp %s %s, %s", ins.Dst, icmpStr(ins.ICmp.Op), operandStr(ins.ICmp.Left), operandStr(ins.ICmp.Right))
	case ir.InstrFCmp:
		return fmt.Sprintf("%%%d = fcmp %s %s, %s", ins.Dst, fcmpStr(ins.FCmp.Op), operandStr(ins.FCmp.Left), operandStr(ins.FCmp.Right))
	case ir.InstrCast:
		return fmt.Sprintf("%%%d = %s %s to %s", ins.Dst, castStr(ins.Cast.Op), operandStr(ins.Cast.Val), ins.Cast.To)
	case ir.InstrCall:
		args := make([]string, len(ins.Call.Args))
		for i, a := range ins.Call.Args {
			args[i] = operandStr(a)
		}
		if ins.Dst == ir.NoValue {
			return fmt.Sprintf("call %s(%s)", ins.Call.Name, strings.Join(args, ", "))
		}
		return fmt.Sprintf("%%%d = call %s(%s)", ins.Dst, ins.Call.Name, strings.Join(args, ", "))
	case ir.InstrPhi:
		parts := make([]string, len(ins.Phi.Incoming))
		for i, in := range ins.Phi.Incoming {
			parts[i] = fmt.Sprintf("[%s, %%bb%d]", operandStr(in.Val), in.Pred)
		}
		return fmt.Sprintf("%%%d = phi %s %s", ins.Dst, ins.Phi.Type, strings.Join(parts, ", "))
	default:
		return "?"
	}
}

func binOpStr(op ir.BinOpKind) string {
	return [...]string{"add", "sub", "mul", "div", "rem"}[op]
}

func icmpStr(op ir.ICmpKind) string {
	return [...]string{"eq", "ne", "slt", "sle", "sgt", "sge"}[op]
}

func fcmpStr(op ir.FCmpKind) string {
	return [...]string{"eq", "ne", "lt", "le", "gt", "ge"}[op]
}

func castStr(op ir.CastKind) string {
	return [...]string{"sitofp", "fptosi", "trunc", "sext"}[op]
}

func termStr(t ir.Terminator) string {
	switch t.Kind {
	case ir.TermBr:
		return fmt.Sprintf("br bb%d", t.Br.Target)
	case ir.TermCondBr:
		return fmt.Sprintf("condbr %s, bb%d, bb%d", operandStr(t.CondBr.Cond), t.CondBr.True, t.CondBr.False)
	case ir.TermRet:
		if !t.Ret.HasValue {
			return "ret void"
		}
		return fmt.Sprintf("ret %s", operandStr(t.Ret.Value))
	default:
		return "<no terminator>"
	}
}
