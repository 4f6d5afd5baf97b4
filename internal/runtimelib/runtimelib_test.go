package runtimelib

import (
	"testing"

	"vslower/internal/lower"
	"vslower/internal/parser"
)

func TestCalledRuntimeFunctionIsDeclared(t *testing.T) {
	tree, syms, rtIDs, err := parser.Parse(`
		int main() {
			putint(42);
			return 0;
		}
	`)
	if err != nil {
		t.Fatalf("parser.Parse: %v", err)
	}
	m, err := lower.LowerModule(tree, syms, rtIDs)
	if err != nil {
		t.Fatalf("LowerModule: %v", err)
	}

	found := false
	for _, fn := range m.Funcs {
		if fn.Name == "putint" {
			found = true
			if !fn.IsDeclaration {
				t.Error("putint should be a declaration, not a defined body")
			}
		}
	}
	if !found {
		t.Fatal("putint should be declared once it's called")
	}
}

func TestUncalledRuntimeFunctionIsNotDeclared(t *testing.T) {
	tree, syms, rtIDs, err := parser.Parse(`
		int main() {
			return 0;
		}
	`)
	if err != nil {
		t.Fatalf("parser.Parse: %v", err)
	}
	m, err := lower.LowerModule(tree, syms, rtIDs)
	if err != nil {
		t.Fatalf("LowerModule: %v", err)
	}
	for _, fn := range m.Funcs {
		if fn.Name == "putint" {
			t.Fatal("putint should not be declared when never called")
		}
	}
}
