package lower

import (
	"testing"

	"vslower/internal/ir"
	"vslower/internal/parser"
)

func mustLower(t *testing.T, src string) *ir.Module {
	t.Helper()
	tree, syms, rtIDs, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parser.Parse: %v", err)
	}
	m, err := LowerModule(tree, syms, rtIDs)
	if err != nil {
		t.Fatalf("LowerModule: %v", err)
	}
	if err := ir.Validate(m); err != nil {
		t.Fatalf("ir.Validate: %v", err)
	}
	return m
}

func findFunc(t *testing.T, m *ir.Module, name string) *ir.Function {
	t.Helper()
	for _, fn := range m.Funcs {
		if fn.Name == name {
			return fn
		}
	}
	t.Fatalf("no function named %q in module", name)
	return nil
}

func countInstrs(fn *ir.Function, kind ir.InstrKind) int {
	n := 0
	for _, b := range fn.Blocks {
		for _, ins := range b.Instrs {
			if ins.Kind == kind {
				n++
			}
		}
	}
	return n
}

// S1: scalar arithmetic and return.
func TestLowerScalarArithmeticAndReturn(t *testing.T) {
	m := mustLower(t, `
		int main() {
			int a = 3;
			int b = 4;
			return a * b + 1;
		}
	`)
	fn := findFunc(t, m, "main")
	if len(fn.Blocks) != 1 {
		t.Fatalf("expected a single block, got %d", len(fn.Blocks))
	}
	entry := fn.Blocks[0]
	if !entry.Terminated() || entry.Term.Kind != ir.TermRet {
		t.Fatalf("entry block should end in a ret, got %v", entry.Term.Kind)
	}
	if got := countInstrs(fn, ir.InstrAlloca); got != 2 {
		t.Errorf("expected 2 allocas (a, b), got %d", got)
	}
	if got := countInstrs(fn, ir.InstrBinOp); got != 2 {
		t.Errorf("expected 2 binops (mul, add), got %d", got)
	}
	if !entry.Term.Ret.HasValue {
		t.Error("ret should carry a value")
	}
}

// S2: short-circuit && must evaluate its rhs through a phi diamond,
// never an eagerly-evaluated binop.
func TestLowerShortCircuitBuildsDiamond(t *testing.T) {
	m := mustLower(t, `
		int main() {
			int x = 0;
			if (x != 0 && 10 / x > 1) {
				return 1;
			}
			return 0;
		}
	`)
	fn := findFunc(t, m, "main")
	var sawRHS, sawMerge, sawPhi bool
	for _, b := range fn.Blocks {
		switch b.Name {
		case "&&.rhs":
			sawRHS = true
		case "&&.merge":
			sawMerge = true
			for _, ins := range b.Instrs {
				if ins.Kind == ir.InstrPhi {
					sawPhi = true
				}
			}
		}
	}
	if !sawRHS || !sawMerge || !sawPhi {
		t.Fatalf("expected &&.rhs/&&.merge blocks with a phi, got blocks: %v", blockNames(fn))
	}
}

// S3: while with break/continue produces cond/loop/merge blocks with the
// expected branch targets.
func TestLowerWhileBreakContinue(t *testing.T) {
	m := mustLower(t, `
		int main() {
			int i = 0;
			while (i < 10) {
				if (i == 5) {
					break;
				}
				i = i + 1;
				continue;
			}
			return i;
		}
	`)
	fn := findFunc(t, m, "main")
	var cond, loop, merge *ir.Block
	for _, b := range fn.Blocks {
		switch b.Name {
		case "while.cond":
			cond = b
		case "while.loop":
			loop = b
		case "while.merge":
			merge = b
		}
	}
	if cond == nil || loop == nil || merge == nil {
		t.Fatalf("expected while.cond/while.loop/while.merge blocks, got %v", blockNames(fn))
	}
	if cond.Term.Kind != ir.TermCondBr {
		t.Fatalf("while.cond should end in a condbr, got %v", cond.Term.Kind)
	}
	if cond.Term.CondBr.True != loop.ID || cond.Term.CondBr.False != merge.ID {
		t.Error("while.cond should branch true->loop, false->merge")
	}
}

// S4: a multi-dimensional array initializer flattens row-major.
func TestLowerArrayInitFlattensRowMajor(t *testing.T) {
	m := mustLower(t, `
		int grid[2][3] = {{1, 2, 3}, {4, 5, 6}};
		int main() {
			return grid[1][2];
		}
	`)
	if len(m.Globals) != 1 {
		t.Fatalf("expected 1 global, got %d", len(m.Globals))
	}
	g := m.Globals[0]
	if !g.HasInit {
		t.Fatal("grid should carry an initializer")
	}
	want := []int32{1, 2, 3, 4, 5, 6}
	if len(g.Init) != len(want) {
		t.Fatalf("got %d flattened initializer slots, want %d", len(g.Init), len(want))
	}
	for i, w := range want {
		if g.Init[i].Int != w {
			t.Errorf("slot %d = %d, want %d", i, g.Init[i].Int, w)
		}
	}

	fn := findFunc(t, m, "main")
	if countInstrs(fn, ir.InstrGep) == 0 {
		t.Error("indexing a 2D array should emit at least one gep")
	}
}

// S5: an array parameter is passed by pointer, not by value.
func TestLowerArrayParamIsPointer(t *testing.T) {
	m := mustLower(t, `
		int sum(int xs[], int n) {
			int total = 0;
			int i = 0;
			while (i < n) {
				total = total + xs[i];
				i = i + 1;
			}
			return total;
		}
	`)
	fn := findFunc(t, m, "sum")
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.Params[0].Type.Kind != ir.TPtr {
		t.Errorf("array parameter should lower to a pointer type, got %v", fn.Params[0].Type)
	}
	if fn.Params[1].Type.Kind != ir.TInt32 {
		t.Errorf("scalar parameter should stay i32, got %v", fn.Params[1].Type)
	}
}

// S6: mixing int and float operands promotes the int side via sitofp.
func TestLowerImplicitFloatPromotion(t *testing.T) {
	m := mustLower(t, `
		float scale(int n) {
			float f = 2.5;
			return f * n;
		}
	`)
	fn := findFunc(t, m, "scale")
	sawSIToFP := false
	for _, b := range fn.Blocks {
		for _, ins := range b.Instrs {
			if ins.Kind == ir.InstrCast && ins.Cast.Op == ir.CastSIToFP {
				sawSIToFP = true
			}
		}
	}
	if !sawSIToFP {
		t.Error("expected an sitofp cast promoting the int operand before the multiply")
	}
	if fn.RetType.Kind != ir.TFloat32 {
		t.Errorf("scale should return f32, got %v", fn.RetType)
	}
}

// A guard-clause if/else where both branches return must not leave a
// dangling, predecessor-less if.merge block (spec §4.7: "if both
// branches terminate, merge is not created").
func TestLowerIfElseBothReturnSkipsMerge(t *testing.T) {
	m := mustLower(t, `
		int pick(int c) {
			if (c) {
				return 1;
			} else {
				return 2;
			}
		}
	`)
	fn := findFunc(t, m, "pick")
	for _, b := range fn.Blocks {
		if b.Name == "if.merge" {
			t.Fatalf("if.merge should not exist when both branches terminate, got blocks: %v", blockNames(fn))
		}
	}
	for _, b := range fn.Blocks {
		if !b.Terminated() {
			t.Errorf("block %s has no terminator", b.Name)
		}
	}
}

// A boolean sub-expression used as an arithmetic or comparison operand
// is coerced to Int32 first (DESIGN.md's bool/int asymmetry decision),
// never fed to CreateBinOp/CreateICmp as i1.
func TestLowerBoolOperandPromotedBeforeArithmetic(t *testing.T) {
	m := mustLower(t, `
		int main() {
			int a = 1;
			int b = 2;
			int c = 3;
			int d = 4;
			return (a < b) + (c < d);
		}
	`)
	fn := findFunc(t, m, "main")
	for _, b := range fn.Blocks {
		for _, ins := range b.Instrs {
			if ins.Kind == ir.InstrBinOp && ins.BinOp.Op == ir.BinAdd {
				if ins.BinOp.Left.Type.Kind != ir.TInt32 || ins.BinOp.Right.Type.Kind != ir.TInt32 {
					t.Fatalf("add operands should be i32 after bool promotion, got %v/%v", ins.BinOp.Left.Type, ins.BinOp.Right.Type)
				}
			}
		}
	}
	if err := ir.Validate(m); err != nil {
		t.Fatalf("ir.Validate: %v", err)
	}
}

func TestLowerBoolOperandPromotedBeforeComparison(t *testing.T) {
	m := mustLower(t, `
		int main() {
			int a = 1;
			int b = 2;
			int c = 3;
			int d = 4;
			if ((a < b) == (c < d)) {
				return 1;
			}
			return 0;
		}
	`)
	if err := ir.Validate(m); err != nil {
		t.Fatalf("ir.Validate: %v", err)
	}
}

func blockNames(fn *ir.Function) []string {
	var names []string
	for _, b := range fn.Blocks {
		names = append(names, b.Name)
	}
	return names
}
