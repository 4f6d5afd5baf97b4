package ircache

import (
	"testing"

	"vslower/internal/ir"
)

func TestHashSourceIsDeterministic(t *testing.T) {
	a := HashSource([]byte("int main() { return 0; }"))
	b := HashSource([]byte("int main() { return 0; }"))
	if a != b {
		t.Error("HashSource should be deterministic for identical input")
	}
	c := HashSource([]byte("int main() { return 1; }"))
	if a == c {
		t.Error("HashSource should differ for different input")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	m := ir.NewModule("main")
	m.AddGlobal(&ir.Global{Name: "x", Type: ir.Int32(), HasInit: true, Init: []ir.Const{ir.ConstInt(42)}})

	key := HashSource([]byte("int x = 42;"))
	if err := c.Put(key, m); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit after Put")
	}
	if len(got.Globals) != 1 || got.Globals[0].Name != "x" {
		t.Fatalf("round-tripped module missing its global, got %+v", got.Globals)
	}
	if got.Globals[0].Init[0].Int != 42 {
		t.Errorf("round-tripped init value = %d, want 42", got.Globals[0].Init[0].Int)
	}
}

func TestGetMissReturnsFalse(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_, ok, err := c.Get(HashSource([]byte("never written")))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("Get should report a miss for a key never Put")
	}
}
