// Package parser is a recursive-descent parser for the source language.
// It is the "parser collaborator" spec §6 describes: it builds the AST
// and drives internal/symbols live, so every identifier-bearing node
// already carries a resolved symbol by the time the lowerer sees it.
package parser

import (
	"fmt"

	"vslower/internal/ast"
	"vslower/internal/lexer"
	"vslower/internal/runtimelib"
	"vslower/internal/symbols"
	"vslower/internal/token"
	"vslower/internal/types"
)

// Parser holds the one piece of state spec §9 asks to be explicit rather
// than global: the compilation session (tree + symbol service) plus the
// lexer's one-token lookahead.
type Parser struct {
	lex  *lexer.Lexer
	tree *ast.Tree
	syms *symbols.Service

	tok token.Token
}

// Parse tokenizes and parses src, pre-registering the runtime-library
// catalog into a fresh symbol service before the first token is read
// (spec §4.2: "at startup, registers a fixed catalog"). It returns the
// tree (with Root set), the symbol service the lowerer will borrow, and the
// runtime symbol ids keyed by name.
func Parse(src string) (*ast.Tree, *symbols.Service, map[string]symbols.SymbolID, error) {
	tree := ast.NewTree()
	syms := symbols.Init()
	rtIDs := runtimelib.Register(syms)

	p := &Parser{lex: lexer.New(src), tree: tree, syms: syms}
	if err := p.next(); err != nil {
		return nil, nil, nil, err
	}

	root := ast.Node{Kind: ast.KindRoot, Line: 1}
	for p.tok.Kind != token.EOF {
		child, err := p.parseTopDecl()
		if err != nil {
			return nil, nil, nil, err
		}
		if child.IsValid() {
			ast.AppendChild(&root, child)
		}
	}
	tree.Root = tree.New(root)
	return tree, syms, rtIDs, nil
}

func (p *Parser) next() error {
	t, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.tok.Kind != k {
		return token.Token{}, fmt.Errorf("%s: expected %s, found %s", p.tok.Span, k, p.tok.Kind)
	}
	t := p.tok
	err := p.next()
	return t, err
}

func (p *Parser) accept(k token.Kind) (bool, error) {
	if p.tok.Kind != k {
		return false, nil
	}
	return true, p.next()
}

func dataTypeOf(k token.Kind) (types.DataType, bool) {
	switch k {
	case token.KwInt:
		return types.Int32, true
	case token.KwFloat:
		return types.Float32, true
	case token.KwVoid:
		return types.Void, true
	default:
		return types.Void, false
	}
}

func isTypeStart(k token.Kind) bool {
	return k == token.KwInt || k == token.KwFloat || k == token.KwVoid
}

// parseTopDecl parses one global variable/array/const definition or one
// function definition.
func (p *Parser) parseTopDecl() (ast.NodeID, error) {
	line := p.tok.Span.Line
	isConst, err := p.accept(token.KwConst)
	if err != nil {
		return ast.NoNodeID, err
	}
	typTok := p.tok
	dt, ok := dataTypeOf(typTok.Kind)
	if !ok {
		return ast.NoNodeID, fmt.Errorf("%s: expected a type, found %s", p.tok.Span, p.tok.Kind)
	}
	if err := p.next(); err != nil {
		return ast.NoNodeID, err
	}
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return ast.NoNodeID, err
	}

	if p.tok.Kind == token.LParen {
		return p.parseFuncDef(dt, nameTok, line)
	}
	return p.parseGlobalVarOrArray(dt, isConst, nameTok, line)
}

func (p *Parser) parseShape() ([]int, error) {
	var shape []int
	for p.tok.Kind == token.LBracket {
		if err := p.next(); err != nil {
			return nil, err
		}
		dim := 0
		if p.tok.Kind == token.IntLit {
			dim = int(p.tok.IntVal)
			if err := p.next(); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(token.RBracket); err != nil {
			return nil, err
		}
		shape = append(shape, dim)
	}
	return shape, nil
}

func (p *Parser) parseGlobalVarOrArray(dt types.DataType, isConst bool, nameTok token.Token, line int) (ast.NodeID, error) {
	shape, err := p.parseShape()
	if err != nil {
		return ast.NoNodeID, err
	}
	isArray := len(shape) > 0

	kind := symbols.KindVar
	nodeKind := ast.KindVarDef
	switch {
	case isArray && isConst:
		kind, nodeKind = symbols.KindConstArray, ast.KindConstArrayDef
	case isArray:
		kind, nodeKind = symbols.KindArray, ast.KindArrayDef
	case isConst:
		kind, nodeKind = symbols.KindConstVar, ast.KindConstVarDef
	}

	sym, err := p.syms.Define(nameTok.Text, kind, dt, line)
	if err != nil {
		return ast.NoNodeID, err
	}
	if isArray {
		sym.Shape = shape
	}

	n := ast.Node{Kind: nodeKind, Name: nameTok.Text, Line: line, Payload: ast.PayloadSymbol, Sym: sym.ID}
	if ok, err := p.accept(token.Assign); err != nil {
		return ast.NoNodeID, err
	} else if ok {
		init, err := p.parseInitializer()
		if err != nil {
			return ast.NoNodeID, err
		}
		ast.AppendChild(&n, init)
	}
	if _, err := p.expect(token.Semi); err != nil {
		return ast.NoNodeID, err
	}
	return p.tree.New(n), nil
}

func (p *Parser) parseInitializer() (ast.NodeID, error) {
	if p.tok.Kind == token.LBrace {
		line := p.tok.Span.Line
		if err := p.next(); err != nil {
			return ast.NoNodeID, err
		}
		n := ast.Node{Kind: ast.KindInitList, Line: line}
		for p.tok.Kind != token.RBrace {
			child, err := p.parseInitializer()
			if err != nil {
				return ast.NoNodeID, err
			}
			ast.AppendChild(&n, child)
			if ok, err := p.accept(token.Comma); err != nil {
				return ast.NoNodeID, err
			} else if !ok {
				break
			}
		}
		if _, err := p.expect(token.RBrace); err != nil {
			return ast.NoNodeID, err
		}
		return p.tree.New(n), nil
	}
	return p.parseExpr()
}

func (p *Parser) parseFuncDef(retType types.DataType, nameTok token.Token, line int) (ast.NodeID, error) {
	sym, err := p.syms.DefineFunction(nameTok.Text, retType, line)
	if err != nil {
		return ast.NoNodeID, err
	}

	if _, err := p.expect(token.LParen); err != nil {
		return ast.NoNodeID, err
	}
	p.syms.EnterScope()
	defer p.syms.ExitScope()

	n := ast.Node{Kind: ast.KindFuncDef, Name: nameTok.Text, Line: line, Payload: ast.PayloadSymbol, Sym: sym.ID}
	if p.tok.Kind != token.RParen {
		for {
			pn, psym, err := p.parseParam()
			if err != nil {
				return ast.NoNodeID, err
			}
			ast.AppendChild(&n, pn)
			sym.Params = append(sym.Params, psym)
			if ok, err := p.accept(token.Comma); err != nil {
				return ast.NoNodeID, err
			} else if !ok {
				break
			}
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return ast.NoNodeID, err
	}

	// EnterFunction only now: spec §4.1 appends subsequently-defined
	// var/array/const symbols to the function's local list, and
	// parameters are tracked separately via sym.Params, not Locals.
	p.syms.EnterFunction(sym.ID)
	defer p.syms.ExitFunction()

	body, err := p.parseBlock()
	if err != nil {
		return ast.NoNodeID, err
	}
	ast.AppendChild(&n, body)
	return p.tree.New(n), nil
}

func (p *Parser) parseParam() (ast.NodeID, symbols.SymbolID, error) {
	line := p.tok.Span.Line
	dt, ok := dataTypeOf(p.tok.Kind)
	if !ok {
		return ast.NoNodeID, symbols.NoSymbolID, fmt.Errorf("%s: expected a parameter type, found %s", p.tok.Span, p.tok.Kind)
	}
	if err := p.next(); err != nil {
		return ast.NoNodeID, symbols.NoSymbolID, err
	}
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return ast.NoNodeID, symbols.NoSymbolID, err
	}
	shape, err := p.parseShape()
	if err != nil {
		return ast.NoNodeID, symbols.NoSymbolID, err
	}
	kind := symbols.KindVar
	if len(shape) > 0 {
		kind = symbols.KindArray
	}
	sym, err := p.syms.Define(nameTok.Text, kind, dt, line)
	if err != nil {
		return ast.NoNodeID, symbols.NoSymbolID, err
	}
	if len(shape) > 0 {
		// The outermost dimension of a parameter array is unknown
		// regardless of what the declarator wrote (spec §3).
		shape[0] = 0
		sym.Shape = shape
	}
	id := p.tree.New(ast.Node{Kind: ast.KindParam, Name: nameTok.Text, Line: line, Payload: ast.PayloadSymbol, Sym: sym.ID})
	return id, sym.ID, nil
}

func (p *Parser) parseBlock() (ast.NodeID, error) {
	line := p.tok.Span.Line
	if _, err := p.expect(token.LBrace); err != nil {
		return ast.NoNodeID, err
	}
	p.syms.EnterScope()
	defer p.syms.ExitScope()

	n := ast.Node{Kind: ast.KindBlock, Line: line}
	for p.tok.Kind != token.RBrace {
		s, err := p.parseStmt()
		if err != nil {
			return ast.NoNodeID, err
		}
		if s.IsValid() {
			ast.AppendChild(&n, s)
		}
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return ast.NoNodeID, err
	}
	return p.tree.New(n), nil
}
