package lexer

import (
	"testing"

	"vslower/internal/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	lx := New(src)
	var toks []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestLexKeywordsAndIdent(t *testing.T) {
	toks := lexAll(t, "int main")
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens (int, main, eof), got %d", len(toks))
	}
	if toks[0].Kind != token.KwInt {
		t.Errorf("toks[0].Kind = %v, want KwInt", toks[0].Kind)
	}
	if toks[1].Kind != token.Ident || toks[1].Text != "main" {
		t.Errorf("toks[1] = %+v, want Ident \"main\"", toks[1])
	}
}

func TestLexIdenticalIdentifiersInternToEqualText(t *testing.T) {
	toks := lexAll(t, "count count")
	if toks[0].Text != toks[1].Text {
		t.Errorf("toks[0].Text=%q toks[1].Text=%q, want equal", toks[0].Text, toks[1].Text)
	}
}

func TestLexIntAndFloatLiterals(t *testing.T) {
	toks := lexAll(t, "42 3.5")
	if toks[0].Kind != token.IntLit || toks[0].IntVal != 42 {
		t.Errorf("toks[0] = %+v, want IntLit 42", toks[0])
	}
	if toks[1].Kind != token.FloatLit || toks[1].FloatVal != 3.5 {
		t.Errorf("toks[1] = %+v, want FloatLit 3.5", toks[1])
	}
}

func TestLexSkipsLineAndBlockComments(t *testing.T) {
	toks := lexAll(t, "int // trailing comment\n/* block */ float")
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens (int, float, eof), got %d: %v", len(toks), toks)
	}
	if toks[0].Kind != token.KwInt || toks[1].Kind != token.KwFloat {
		t.Errorf("got kinds %v, %v; want KwInt, KwFloat", toks[0].Kind, toks[1].Kind)
	}
}

func TestLexTracksLineNumbers(t *testing.T) {
	toks := lexAll(t, "int\nfloat")
	if toks[0].Span.Line != 1 {
		t.Errorf("toks[0].Span.Line = %d, want 1", toks[0].Span.Line)
	}
	if toks[1].Span.Line != 2 {
		t.Errorf("toks[1].Span.Line = %d, want 2", toks[1].Span.Line)
	}
}

func TestLexOperators(t *testing.T) {
	toks := lexAll(t, "&& || == != <=")
	want := []token.Kind{token.AndAnd, token.OrOr, token.Eq, token.Ne, token.Le}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("toks[%d].Kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
}
