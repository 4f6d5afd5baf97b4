package parser

import (
	"fmt"

	"vslower/internal/ast"
	"vslower/internal/symbols"
	"vslower/internal/token"
)

func (p *Parser) parseExpr() (ast.NodeID, error) { return p.parseOr() }

func (p *Parser) parseOr() (ast.NodeID, error) {
	left, err := p.parseAnd()
	if err != nil {
		return ast.NoNodeID, err
	}
	for p.tok.Kind == token.OrOr {
		line := p.tok.Span.Line
		if err := p.next(); err != nil {
			return ast.NoNodeID, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return ast.NoNodeID, err
		}
		left = p.binNode("||", left, right, line)
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.NodeID, error) {
	left, err := p.parseEquality()
	if err != nil {
		return ast.NoNodeID, err
	}
	for p.tok.Kind == token.AndAnd {
		line := p.tok.Span.Line
		if err := p.next(); err != nil {
			return ast.NoNodeID, err
		}
		right, err := p.parseEquality()
		if err != nil {
			return ast.NoNodeID, err
		}
		left = p.binNode("&&", left, right, line)
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.NodeID, error) {
	left, err := p.parseRelational()
	if err != nil {
		return ast.NoNodeID, err
	}
	for p.tok.Kind == token.Eq || p.tok.Kind == token.Ne {
		op, line := p.tok.Kind.String(), p.tok.Span.Line
		if err := p.next(); err != nil {
			return ast.NoNodeID, err
		}
		right, err := p.parseRelational()
		if err != nil {
			return ast.NoNodeID, err
		}
		left = p.binNode(op, left, right, line)
	}
	return left, nil
}

func (p *Parser) parseRelational() (ast.NodeID, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return ast.NoNodeID, err
	}
	for p.tok.Kind == token.Lt || p.tok.Kind == token.Le || p.tok.Kind == token.Gt || p.tok.Kind == token.Ge {
		op, line := p.tok.Kind.String(), p.tok.Span.Line
		if err := p.next(); err != nil {
			return ast.NoNodeID, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return ast.NoNodeID, err
		}
		left = p.binNode(op, left, right, line)
	}
	return left, nil
}

func (p *Parser) parseAdditive() (ast.NodeID, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return ast.NoNodeID, err
	}
	for p.tok.Kind == token.Plus || p.tok.Kind == token.Minus {
		op, line := p.tok.Kind.String(), p.tok.Span.Line
		if err := p.next(); err != nil {
			return ast.NoNodeID, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return ast.NoNodeID, err
		}
		left = p.binNode(op, left, right, line)
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.NodeID, error) {
	left, err := p.parseUnary()
	if err != nil {
		return ast.NoNodeID, err
	}
	for p.tok.Kind == token.Star || p.tok.Kind == token.Slash || p.tok.Kind == token.Percent {
		op, line := p.tok.Kind.String(), p.tok.Span.Line
		if err := p.next(); err != nil {
			return ast.NoNodeID, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return ast.NoNodeID, err
		}
		left = p.binNode(op, left, right, line)
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.NodeID, error) {
	if p.tok.Kind == token.Plus || p.tok.Kind == token.Minus || p.tok.Kind == token.Not {
		op, line := p.tok.Kind.String(), p.tok.Span.Line
		if err := p.next(); err != nil {
			return ast.NoNodeID, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return ast.NoNodeID, err
		}
		n := ast.Node{Kind: ast.KindUnaryOp, Name: op, Line: line}
		ast.AppendChild(&n, operand)
		return p.tree.New(n), nil
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.NodeID, error) {
	prim, err := p.parsePrimary()
	if err != nil {
		return ast.NoNodeID, err
	}
	primNode := p.tree.Get(prim)
	for p.tok.Kind == token.LBracket {
		line := p.tok.Span.Line
		if err := p.next(); err != nil {
			return ast.NoNodeID, err
		}
		idx, err := p.parseExpr()
		if err != nil {
			return ast.NoNodeID, err
		}
		if _, err := p.expect(token.RBracket); err != nil {
			return ast.NoNodeID, err
		}
		if primNode.Kind == ast.KindElemAccess {
			ast.AppendChild(primNode, idx)
			continue
		}
		n := ast.Node{Kind: ast.KindElemAccess, Line: line, Payload: primNode.Payload, Sym: primNode.Sym}
		ast.AppendChild(&n, idx)
		prim = p.tree.New(n)
		primNode = p.tree.Get(prim)
	}
	return prim, nil
}

func (p *Parser) parsePrimary() (ast.NodeID, error) {
	switch p.tok.Kind {
	case token.IntLit:
		line, v := p.tok.Span.Line, p.tok.IntVal
		if err := p.next(); err != nil {
			return ast.NoNodeID, err
		}
		return p.tree.New(ast.Node{Kind: ast.KindLiteral, Line: line, Payload: ast.PayloadInt, IntVal: v}), nil
	case token.FloatLit:
		line, v := p.tok.Span.Line, p.tok.FloatVal
		if err := p.next(); err != nil {
			return ast.NoNodeID, err
		}
		return p.tree.New(ast.Node{Kind: ast.KindLiteral, Line: line, Payload: ast.PayloadFloat, FloatVal: float64(v)}), nil
	case token.LParen:
		if err := p.next(); err != nil {
			return ast.NoNodeID, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return ast.NoNodeID, err
		}
		_, err = p.expect(token.RParen)
		return e, err
	case token.Ident:
		return p.parseIdentExpr()
	default:
		return ast.NoNodeID, fmt.Errorf("%s: unexpected token %s in expression", p.tok.Span, p.tok.Kind)
	}
}

func (p *Parser) parseIdentExpr() (ast.NodeID, error) {
	nameTok := p.tok
	line := nameTok.Span.Line
	if err := p.next(); err != nil {
		return ast.NoNodeID, err
	}
	if p.tok.Kind == token.LParen {
		if err := p.next(); err != nil {
			return ast.NoNodeID, err
		}
		n := ast.Node{Kind: ast.KindCall, Name: nameTok.Text, Line: line}
		if sym, ok := p.syms.Lookup(nameTok.Text); ok {
			n.Payload, n.Sym = ast.PayloadSymbol, sym.ID
			sym.IncCallCount()
		}
		if p.tok.Kind != token.RParen {
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return ast.NoNodeID, err
				}
				ast.AppendChild(&n, arg)
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
		return p.tree.New(n), nil
	}

	sym, ok := p.syms.Lookup(nameTok.Text)
	n := ast.Node{Kind: ast.KindVarRef, Name: nameTok.Text, Line: line}
	if ok {
		n.Payload, n.Sym = ast.PayloadSymbol, sym.ID
		if sym.Kind == symbols.KindArray || sym.Kind == symbols.KindConstArray {
			n.Kind = ast.KindArrayRef
		}
	}
	// An unresolved identifier is left with PayloadNone; per spec §4.11
	// and §7 this is treated as malformed-AST and the lowerer degrades
	// locally rather than the parser aborting, since name resolution
	// failures here would already have been symbol-service errors for
	// anything actually declared.
	return p.tree.New(n), nil
}

func (p *Parser) binNode(op string, left, right ast.NodeID, line int) ast.NodeID {
	n := ast.Node{Kind: ast.KindBinaryOp, Name: op, Line: line}
	ast.AppendChild(&n, left)
	ast.AppendChild(&n, right)
	return p.tree.New(n)
}
