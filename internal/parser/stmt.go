package parser

import (
	"fmt"

	"vslower/internal/ast"
	"vslower/internal/symbols"
	"vslower/internal/token"
)

func (p *Parser) parseStmt() (ast.NodeID, error) {
	switch p.tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwBreak:
		line := p.tok.Span.Line
		if err := p.next(); err != nil {
			return ast.NoNodeID, err
		}
		if _, err := p.expect(token.Semi); err != nil {
			return ast.NoNodeID, err
		}
		return p.tree.New(ast.Node{Kind: ast.KindBreak, Line: line}), nil
	case token.KwContinue:
		line := p.tok.Span.Line
		if err := p.next(); err != nil {
			return ast.NoNodeID, err
		}
		if _, err := p.expect(token.Semi); err != nil {
			return ast.NoNodeID, err
		}
		return p.tree.New(ast.Node{Kind: ast.KindContinue, Line: line}), nil
	case token.KwReturn:
		return p.parseReturn()
	case token.KwConst:
		return p.parseLocalDecl()
	default:
		if isTypeStart(p.tok.Kind) {
			return p.parseLocalDecl()
		}
		return p.parseAssignOrExprStmt()
	}
}

func (p *Parser) parseLocalDecl() (ast.NodeID, error) {
	line := p.tok.Span.Line
	isConst, err := p.accept(token.KwConst)
	if err != nil {
		return ast.NoNodeID, err
	}
	dt, ok := dataTypeOf(p.tok.Kind)
	if !ok {
		return ast.NoNodeID, fmt.Errorf("%s: expected a type, found %s", p.tok.Span, p.tok.Kind)
	}
	if err := p.next(); err != nil {
		return ast.NoNodeID, err
	}

	group := ast.Node{Kind: ast.KindList, Line: line}
	for {
		nameTok, err := p.expect(token.Ident)
		if err != nil {
			return ast.NoNodeID, err
		}
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
		d := ast.Node{Kind: nodeKind, Name: nameTok.Text, Line: line, Payload: ast.PayloadSymbol, Sym: sym.ID}
		if ok, err := p.accept(token.Assign); err != nil {
			return ast.NoNodeID, err
		} else if ok {
			init, err := p.parseInitializer()
			if err != nil {
				return ast.NoNodeID, err
			}
			ast.AppendChild(&d, init)
		}
		ast.AppendChild(&group, p.tree.New(d))
		if ok, err := p.accept(token.Comma); err != nil {
			return ast.NoNodeID, err
		} else if !ok {
			break
		}
	}
	if _, err := p.expect(token.Semi); err != nil {
		return ast.NoNodeID, err
	}
	return p.tree.New(group), nil
}

func (p *Parser) parseIf() (ast.NodeID, error) {
	line := p.tok.Span.Line
	if err := p.next(); err != nil {
		return ast.NoNodeID, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return ast.NoNodeID, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return ast.NoNodeID, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return ast.NoNodeID, err
	}
	then, err := p.parseStmt()
	if err != nil {
		return ast.NoNodeID, err
	}
	n := ast.Node{Kind: ast.KindIf, Line: line}
	ast.AppendChild(&n, cond)
	ast.AppendChild(&n, then)
	if ok, err := p.accept(token.KwElse); err != nil {
		return ast.NoNodeID, err
	} else if ok {
		els, err := p.parseStmt()
		if err != nil {
			return ast.NoNodeID, err
		}
		ast.AppendChild(&n, els)
	}
	return p.tree.New(n), nil
}

func (p *Parser) parseWhile() (ast.NodeID, error) {
	line := p.tok.Span.Line
	if err := p.next(); err != nil {
		return ast.NoNodeID, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return ast.NoNodeID, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return ast.NoNodeID, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return ast.NoNodeID, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return ast.NoNodeID, err
	}
	n := ast.Node{Kind: ast.KindWhile, Line: line}
	ast.AppendChild(&n, cond)
	ast.AppendChild(&n, body)
	return p.tree.New(n), nil
}

func (p *Parser) parseReturn() (ast.NodeID, error) {
	line := p.tok.Span.Line
	if err := p.next(); err != nil {
		return ast.NoNodeID, err
	}
	n := ast.Node{Kind: ast.KindReturn, Line: line}
	if p.tok.Kind != token.Semi {
		e, err := p.parseExpr()
		if err != nil {
			return ast.NoNodeID, err
		}
		ast.AppendChild(&n, e)
	}
	if _, err := p.expect(token.Semi); err != nil {
		return ast.NoNodeID, err
	}
	return p.tree.New(n), nil
}

// parseAssignOrExprStmt handles both `lvalue = expr;` and a bare
// expression statement (a call for its side effects).
func (p *Parser) parseAssignOrExprStmt() (ast.NodeID, error) {
	line := p.tok.Span.Line
	lhs, err := p.parseExpr()
	if err != nil {
		return ast.NoNodeID, err
	}
	if ok, err := p.accept(token.Assign); err != nil {
		return ast.NoNodeID, err
	} else if ok {
		rhs, err := p.parseExpr()
		if err != nil {
			return ast.NoNodeID, err
		}
		if _, err := p.expect(token.Semi); err != nil {
			return ast.NoNodeID, err
		}
		n := ast.Node{Kind: ast.KindAssign, Line: line}
		ast.AppendChild(&n, lhs)
		ast.AppendChild(&n, rhs)
		return p.tree.New(n), nil
	}
	if _, err := p.expect(token.Semi); err != nil {
		return ast.NoNodeID, err
	}
	n := ast.Node{Kind: ast.KindExprStmt, Line: line}
	ast.AppendChild(&n, lhs)
	return p.tree.New(n), nil
}
