package parser

import (
	"testing"

	"vslower/internal/ast"
	"vslower/internal/symbols"
	"vslower/internal/types"
)

func TestParseDefinesGlobalSymbol(t *testing.T) {
	tree, syms, _, err := Parse(`int counter = 5;`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sym, ok := syms.Lookup("counter")
	if !ok {
		t.Fatal("counter should be registered in the symbol table")
	}
	if sym.DataType != types.Int32 {
		t.Errorf("counter's DataType = %v, want Int32", sym.DataType)
	}
	root := tree.Get(tree.Root)
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 top-level decl, got %d", len(root.Children))
	}
	decl := tree.Get(root.Children[0])
	if decl.Kind != ast.KindVarDef {
		t.Errorf("decl kind = %v, want KindVarDef", decl.Kind)
	}
}

func TestParseFunctionParamsScopeToBody(t *testing.T) {
	_, syms, _, err := Parse(`
		int add(int a, int b) {
			return a + b;
		}
	`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := syms.Lookup("a"); ok {
		t.Error("parameter a should not be visible after its function's scope is popped")
	}
	fnSym, ok := syms.Lookup("add")
	if !ok {
		t.Fatal("add should be registered as a function symbol")
	}
	if len(fnSym.Params) != 2 {
		t.Fatalf("add should have 2 params, got %d", len(fnSym.Params))
	}
}

func TestParseRejectsRedeclarationInSameScope(t *testing.T) {
	_, _, _, err := Parse(`
		int main() {
			int x = 1;
			int x = 2;
			return x;
		}
	`)
	if err == nil {
		t.Fatal("expected a redeclaration error")
	}
}

func TestParseAndOrPrecedence(t *testing.T) {
	// `a || b && c` should parse as `a || (b && c)`: && binds tighter,
	// so the outer node must be the || node.
	tree, _, _, err := Parse(`
		int main() {
			int a = 1;
			int b = 1;
			int c = 1;
			return a || b && c;
		}
	`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := tree.Get(tree.Root)
	fn := tree.Get(root.Children[0])
	body := tree.Get(fn.Children[len(fn.Children)-1])
	var retExpr *ast.Node
	for _, cid := range body.Children {
		n := tree.Get(cid)
		if n.Kind == ast.KindReturn {
			retExpr = tree.Get(n.Children[0])
		}
	}
	if retExpr == nil {
		t.Fatal("expected a return statement with an expression")
	}
	if retExpr.Kind != ast.KindBinaryOp || retExpr.Name != "||" {
		t.Fatalf("outer node = %v %q, want BinaryOp \"||\"", retExpr.Kind, retExpr.Name)
	}
	rhs := tree.Get(retExpr.Children[1])
	if rhs.Kind != ast.KindBinaryOp || rhs.Name != "&&" {
		t.Fatalf("rhs of || should be the && node, got %v %q", rhs.Kind, rhs.Name)
	}
}

func TestParseArrayShapeOnParamIsErasedOuterDim(t *testing.T) {
	tree, syms, _, err := Parse(`
		int sum(int xs[3], int n) {
			return n;
		}
	`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := tree.Get(tree.Root)
	fn := tree.Get(root.Children[0])
	param := tree.Get(fn.Children[0]) // xs
	sym := syms.GetByID(param.Sym)
	if sym.Kind != symbols.KindArray {
		t.Fatalf("xs should be a KindArray symbol, got %v", sym.Kind)
	}
	if len(sym.Shape) != 1 || sym.Shape[0] != 0 {
		t.Errorf("xs's outer dimension should be erased to 0 on a parameter, got Shape=%v", sym.Shape)
	}
}

func TestRuntimeLibraryCatalogPreregistered(t *testing.T) {
	_, syms, rtIDs, err := Parse(`int main() { return 0; }`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rtIDs) == 0 {
		t.Fatal("expected a non-empty runtime-library catalog")
	}
	for name, id := range rtIDs {
		sym := syms.GetByID(id)
		if sym == nil || sym.Name != name {
			t.Errorf("runtime symbol %q not resolvable by id", name)
		}
	}
}

func TestParseConstArrayGlobal(t *testing.T) {
	_, syms, _, err := Parse(`const int table[3] = {1, 2, 3};`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sym, ok := syms.Lookup("table")
	if !ok {
		t.Fatal("table should be registered")
	}
	if sym.Kind != symbols.KindConstArray {
		t.Errorf("table's Kind = %v, want KindConstArray", sym.Kind)
	}
	if len(sym.Shape) != 1 || sym.Shape[0] != 3 {
		t.Errorf("table's Shape = %v, want [3]", sym.Shape)
	}
}
