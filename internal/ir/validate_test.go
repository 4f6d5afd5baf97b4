package ir

import "testing"

// buildRetFunc builds `fn() i32 { ret 7 }`.
func buildRetFunc() *Function {
	fn := &Function{Name: "f", RetType: Int32()}
	b := NewBuilder(fn)
	entry := b.NewBlock("entry")
	b.SetInsertPoint(entry)
	b.CreateRet(FromConst(ConstInt(7)), true)
	return fn
}

func TestValidateAcceptsSingleBlockReturn(t *testing.T) {
	m := NewModule("m")
	m.AddFunc(buildRetFunc())
	if err := Validate(m); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsMissingTerminator(t *testing.T) {
	fn := &Function{Name: "f", RetType: Void()}
	b := NewBuilder(fn)
	entry := b.NewBlock("entry")
	b.SetInsertPoint(entry)
	b.CreateAlloca(Int32(), "x")
	// no terminator emitted.

	m := NewModule("m")
	m.AddFunc(fn)
	if err := Validate(m); err == nil {
		t.Fatal("expected an error for a block with no terminator")
	}
}

func TestValidateRejectsUnreachableBlock(t *testing.T) {
	fn := &Function{Name: "f", RetType: Void()}
	b := NewBuilder(fn)
	entry := b.NewBlock("entry")
	orphan := b.NewBlock("orphan")

	b.SetInsertPoint(entry)
	b.CreateRet(Operand{}, false)

	b.SetInsertPoint(orphan)
	b.CreateRet(Operand{}, false)

	m := NewModule("m")
	m.AddFunc(fn)
	if err := Validate(m); err == nil {
		t.Fatal("expected an error for an unreachable block")
	}
}

func TestValidateRejectsCondBrOnNonBool(t *testing.T) {
	fn := &Function{Name: "f", RetType: Void()}
	b := NewBuilder(fn)
	entry := b.NewBlock("entry")
	thenBB := b.NewBlock("then")
	elseBB := b.NewBlock("else")

	b.SetInsertPoint(entry)
	b.CreateCondBr(FromConst(ConstInt(1)), thenBB.ID, elseBB.ID)

	b.SetInsertPoint(thenBB)
	b.CreateRet(Operand{}, false)
	b.SetInsertPoint(elseBB)
	b.CreateRet(Operand{}, false)

	m := NewModule("m")
	m.AddFunc(fn)
	if err := Validate(m); err == nil {
		t.Fatal("expected an error for a condbr condition that isn't i1")
	}
}

func TestValidateRejectsMismatchedReturnType(t *testing.T) {
	fn := &Function{Name: "f", RetType: Int32()}
	b := NewBuilder(fn)
	entry := b.NewBlock("entry")
	b.SetInsertPoint(entry)
	b.CreateRet(FromConst(ConstFloat(1.5)), true)

	m := NewModule("m")
	m.AddFunc(fn)
	if err := Validate(m); err == nil {
		t.Fatal("expected an error when ret value type mismatches RetType")
	}
}

func TestValidateRejectsStoreTypeMismatch(t *testing.T) {
	fn := &Function{Name: "f", RetType: Void()}
	b := NewBuilder(fn)
	entry := b.NewBlock("entry")
	b.SetInsertPoint(entry)
	slot := b.CreateAlloca(Int32(), "x")
	b.CreateStore(FromConst(ConstFloat(1.0)), slot)
	b.CreateRet(Operand{}, false)

	m := NewModule("m")
	m.AddFunc(fn)
	if err := Validate(m); err == nil {
		t.Fatal("expected an error for a store value/pointee type mismatch")
	}
}

func TestValidateAcceptsDiamondWithPhi(t *testing.T) {
	fn := &Function{Name: "f", RetType: Bool()}
	b := NewBuilder(fn)
	entry := b.NewBlock("entry")
	rhs := b.NewBlock("rhs")
	merge := b.NewBlock("merge")

	b.SetInsertPoint(entry)
	b.CreateCondBr(FromConst(ConstBool(true)), rhs.ID, merge.ID)

	b.SetInsertPoint(rhs)
	rhsVal := FromConst(ConstBool(false))
	b.CreateBr(merge.ID)

	b.SetInsertPoint(merge)
	phi := b.CreatePhi(Bool(), []PhiIncoming{
		{Val: FromConst(ConstBool(false)), Pred: entry.ID},
		{Val: rhsVal, Pred: rhs.ID},
	})
	b.CreateRet(phi, true)

	m := NewModule("m")
	m.AddFunc(fn)
	if err := Validate(m); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateSkipsDeclarations(t *testing.T) {
	fn := &Function{Name: "putint", RetType: Void(), IsDeclaration: true}
	m := NewModule("m")
	m.AddFunc(fn)
	if err := Validate(m); err != nil {
		t.Fatalf("Validate should skip declarations: %v", err)
	}
}
