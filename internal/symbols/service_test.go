package symbols

import (
	"testing"

	"vslower/internal/types"
)

func TestDefineAssignsDenseIDs(t *testing.T) {
	svc := Init()
	var ids []SymbolID
	for _, name := range []string{"a", "b", "c"} {
		sym, err := svc.Define(name, KindVar, types.Int32, 1)
		if err != nil {
			t.Fatalf("Define(%q): %v", name, err)
		}
		ids = append(ids, sym.ID)
	}
	for i, id := range ids {
		if int(id) != i {
			t.Errorf("symbol %d got id %d, want %d", i, id, i)
		}
	}
	if svc.Count() != len(ids) {
		t.Errorf("Count() = %d, want %d", svc.Count(), len(ids))
	}
}

func TestRedeclarationInSameScopeFails(t *testing.T) {
	svc := Init()
	if _, err := svc.Define("x", KindVar, types.Int32, 1); err != nil {
		t.Fatalf("first Define: %v", err)
	}
	_, err := svc.Define("x", KindVar, types.Int32, 2)
	if err == nil {
		t.Fatal("expected redeclaration error, got nil")
	}
}

func TestScopeIsolation(t *testing.T) {
	svc := Init()
	svc.EnterScope()
	if _, err := svc.Define("inner", KindVar, types.Int32, 1); err != nil {
		t.Fatalf("Define: %v", err)
	}
	if _, ok := svc.Lookup("inner"); !ok {
		t.Fatal("inner should resolve inside its own scope")
	}
	svc.ExitScope()
	if _, ok := svc.Lookup("inner"); ok {
		t.Fatal("inner should not resolve after its scope is popped")
	}
}

func TestSameNameDifferentScopesShadow(t *testing.T) {
	svc := Init()
	outer, err := svc.Define("x", KindVar, types.Int32, 1)
	if err != nil {
		t.Fatalf("Define outer: %v", err)
	}
	svc.EnterScope()
	inner, err := svc.Define("x", KindVar, types.Float32, 2)
	if err != nil {
		t.Fatalf("Define inner: %v", err)
	}
	if inner.ID == outer.ID {
		t.Fatal("shadowing declaration should get a fresh id")
	}
	got, ok := svc.Lookup("x")
	if !ok || got.ID != inner.ID {
		t.Fatal("Lookup should resolve to the innermost x")
	}
	svc.ExitScope()
	got, ok = svc.Lookup("x")
	if !ok || got.ID != outer.ID {
		t.Fatal("Lookup should resolve to the outer x once the inner scope is popped")
	}
}

func TestEnterFunctionCollectsLocals(t *testing.T) {
	svc := Init()
	fn, err := svc.DefineFunction("f", types.Void, 1)
	if err != nil {
		t.Fatalf("DefineFunction: %v", err)
	}
	svc.EnterFunction(fn.ID)
	svc.EnterScope()
	a, _ := svc.Define("a", KindVar, types.Int32, 2)
	svc.EnterScope()
	b, _ := svc.Define("b", KindVar, types.Int32, 3)
	svc.ExitScope()
	svc.ExitScope()
	svc.ExitFunction()

	if len(fn.Locals) != 2 || fn.Locals[0] != a.ID || fn.Locals[1] != b.ID {
		t.Fatalf("fn.Locals = %v, want [%d %d]", fn.Locals, a.ID, b.ID)
	}
}

func TestGetByID(t *testing.T) {
	svc := Init()
	sym, _ := svc.Define("x", KindVar, types.Int32, 1)
	got := svc.GetByID(sym.ID)
	if got == nil || got.Name != "x" {
		t.Fatalf("GetByID(%d) = %+v, want symbol named x", sym.ID, got)
	}
}
