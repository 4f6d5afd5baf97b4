package ir

import "fmt"

// Validate checks the structural invariants spec §8 lists as testable
// properties: every non-empty block has exactly one, trailing
// terminator; every block but the entry has a predecessor; arithmetic
// and comparisons are type-consistent; stores and returns match their
// target type. It mirrors the teacher's mir/validate.go but checks this
// language's smaller instruction set.
func Validate(m *Module) error {
	for _, fn := range m.Funcs {
		if fn.IsDeclaration {
			continue
		}
		if err := validateFunc(fn); err != nil {
			return fmt.Errorf("function %s: %w", fn.Name, err)
		}
	}
	return nil
}

func validateFunc(fn *Function) error {
	if len(fn.Blocks) == 0 {
		return fmt.Errorf("no blocks")
	}
	preds := make(map[BlockID]int)
	for _, b := range fn.Blocks {
		if !b.Terminated() {
			return fmt.Errorf("block %s has no terminator", blockName(b))
		}
		switch b.Term.Kind {
		case TermBr:
			preds[b.Term.Br.Target]++
		case TermCondBr:
			preds[b.Term.CondBr.True]++
			preds[b.Term.CondBr.False]++
		}
		if err := validateBlock(fn, b); err != nil {
			return fmt.Errorf("block %s: %w", blockName(b), err)
		}
	}
	entry := fn.Blocks[0].ID
	for _, b := range fn.Blocks[1:] {
		if preds[b.ID] == 0 {
			return fmt.Errorf("block %s is unreachable", blockName(b))
		}
	}
	_ = entry
	return nil
}

func validateBlock(fn *Function, b *Block) error {
	for _, ins := range b.Instrs {
		switch ins.Kind {
		case InstrBinOp:
			l, r := ins.BinOp.Left, ins.BinOp.Right
			if !l.Type.Equal(r.Type) || !l.Type.IsNumeric() {
				return fmt.Errorf("binop operand type mismatch")
			}
		case InstrICmp:
			if ins.ICmp.Left.Type.Kind != TInt32 || ins.ICmp.Right.Type.Kind != TInt32 {
				return fmt.Errorf("icmp requires i32 operands")
			}
		case InstrFCmp:
			if ins.FCmp.Left.Type.Kind != TFloat32 || ins.FCmp.Right.Type.Kind != TFloat32 {
				return fmt.Errorf("fcmp requires f32 operands")
			}
		case InstrStore:
			if ins.Store.Ptr.Type.Kind != TPtr {
				return fmt.Errorf("store target is not a pointer")
			}
			if !ins.Store.Val.Type.Equal(*ins.Store.Ptr.Type.Elem) {
				return fmt.Errorf("store value/pointee type mismatch")
			}
		case InstrPhi:
			if ins.Phi.Type.Kind != TBool {
				return fmt.Errorf("phi used for a non-bool merge")
			}
			for _, in := range ins.Phi.Incoming {
				if !in.Val.Type.Equal(ins.Phi.Type) {
					return fmt.Errorf("phi incoming type mismatch")
				}
			}
		}
	}
	if b.Term.Kind == TermCondBr && b.Term.CondBr.Cond.Type.Kind != TBool {
		return fmt.Errorf("condbr condition is not i1")
	}
	if b.Term.Kind == TermRet {
		want := fn.RetType
		r := b.Term.Ret
		if r.HasValue != (want.Kind != TVoid) {
			return fmt.Errorf("ret presence mismatches function return type")
		}
		if r.HasValue && !r.Value.Type.Equal(want) {
			return fmt.Errorf("ret value type mismatches function return type")
		}
	}
	return nil
}
