package lower

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"vslower/internal/ast"
	"vslower/internal/ir"
	"vslower/internal/runtimelib"
	"vslower/internal/symbols"
)

// LowerModule implements spec §4.9's two-pass module lowering. The
// second pass — one goroutine per function body — is the concurrency
// spec §5 permits: lowering stays single-threaded *within* one
// function's FuncCtx, and independent sibling functions share no
// mutable state at all — every Symbol's call count is already fixed by
// the single-threaded parse that ran before LowerModule was called — so
// an errgroup fans them out (SPEC_FULL §3).
func LowerModule(tree *ast.Tree, syms *symbols.Service, rtIDs map[string]symbols.SymbolID) (*ir.Module, error) {
	lw := &Lowerer{
		tree:      tree,
		syms:      syms,
		module:    ir.NewModule("main"),
		globalMap: make(map[symbols.SymbolID]ir.GlobalID),
		funcMap:   make(map[symbols.SymbolID]ir.FuncID),
	}

	root := tree.Get(tree.Root)
	if root == nil {
		return nil, fmt.Errorf("lower: empty translation unit")
	}

	var funcNodes []*ast.Node
	for _, cid := range root.Children {
		n := tree.Get(cid)
		if n == nil {
			continue
		}
		switch n.Kind {
		case ast.KindFuncDef:
			funcNodes = append(funcNodes, n)
			fn := declareSignature(syms, n)
			lw.funcMap[n.Sym] = lw.module.AddFunc(fn)
		default:
			if err := lw.lowerGlobalDeclGroup(n); err != nil {
				return nil, err
			}
		}
	}

	rtDecls := runtimelib.Declare(lw.module, syms, rtIDs)
	for sid, fid := range rtDecls {
		lw.funcMap[sid] = fid
	}

	var eg errgroup.Group
	for _, n := range funcNodes {
		n := n
		fid := lw.funcMap[n.Sym]
		eg.Go(func() error {
			fn := lw.module.Func(fid)
			return lw.lowerFunctionBody(fn, n)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return lw.module, nil
}

// lowerGlobalDeclGroup handles a top-level node that isn't a function:
// either one VarDef/ArrayDef/ConstVarDef/ConstArrayDef, or a KindList
// group of them. The parser emits one definition node per top-level
// declaration; it builds KindList groups only for local declarations.
func (lw *Lowerer) lowerGlobalDeclGroup(n *ast.Node) error {
	if n.Kind == ast.KindList {
		for _, cid := range n.Children {
			if err := lw.lowerGlobalDeclGroup(lw.tree.Get(cid)); err != nil {
				return err
			}
		}
		return nil
	}
	switch n.Kind {
	case ast.KindVarDef, ast.KindConstVarDef:
		return lw.lowerGlobalScalar(n)
	case ast.KindArrayDef, ast.KindConstArrayDef:
		return lw.lowerGlobalArray(n)
	default:
		return nil
	}
}

func (lw *Lowerer) lowerGlobalScalar(n *ast.Node) error {
	sym := lw.syms.GetByID(n.Sym)
	g := &ir.Global{
		Name:    sym.Name,
		Type:    ir.FromDataType(sym.DataType),
		Linkage: ir.LinkInternal,
		IsConst: sym.Kind == symbols.KindConstVar,
	}
	if len(n.Children) > 0 {
		g.HasInit = true
		g.Init = []ir.Const{constFold(lw.tree, n.Children[0], sym.DataType)}
	}
	lw.globalMap[n.Sym] = lw.module.AddGlobal(g)
	return nil
}

func (lw *Lowerer) lowerGlobalArray(n *ast.Node) error {
	sym := lw.syms.GetByID(n.Sym)
	arrType := arrayIRType(sym)
	g := &ir.Global{
		Name:    sym.Name,
		Type:    arrType,
		Linkage: ir.LinkInternal,
		IsConst: sym.Kind == symbols.KindConstArray,
	}
	if len(n.Children) > 0 {
		g.HasInit = true
		g.Init = buildGlobalArrayInit(lw.tree, n.Children[0], sym.Shape, sym.DataType)
	}
	lw.globalMap[n.Sym] = lw.module.AddGlobal(g)
	return nil
}
