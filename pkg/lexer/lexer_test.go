package lexer

import "testing"

func collect(source string) []Token {
	lx := New(source)
	var toks []Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func TestScansLiteralsAndKeywords(t *testing.T) {
	toks := collect(`do x = 12.5 return "hi" true false void`)
	want := []Kind{KwDo, Ident, Assign, Number, KwReturn, String, Boolean, Boolean, KwVoid, EOF}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(toks), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: expected %s, got %s (%q)", i, k, toks[i].Kind, toks[i].Literal)
		}
	}
}

func TestScansTwoCharOperators(t *testing.T) {
	toks := collect(`<= >= == != && || ** ->`)
	want := []Kind{Le, Ge, EqEq, NotEq, AndAnd, OrOr, StarStar, Arrow, EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: expected %s, got %s", i, k, toks[i].Kind)
		}
	}
}

func TestSkipsCommentsAndWhitespace(t *testing.T) {
	toks := collect("do x = 1 # trailing comment\ndo y = 2")
	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	if kinds[len(kinds)-1] != EOF {
		t.Fatalf("expected final token to be EOF, got %s", kinds[len(kinds)-1])
	}
	count := 0
	for _, tok := range toks {
		if tok.Kind == KwDo {
			count++
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 'do' keywords, got %d", count)
	}
}

func TestScansStringEscapes(t *testing.T) {
	toks := collect(`"a\nb\tc\"d"`)
	if toks[0].Kind != String {
		t.Fatalf("expected String, got %s", toks[0].Kind)
	}
	if toks[0].Literal != "a\nb\tc\"d" {
		t.Fatalf("unexpected escaped literal: %q", toks[0].Literal)
	}
}

func TestTracksLineAndColumn(t *testing.T) {
	toks := collect("do x\ndo y")
	// second 'do' starts on line 2, column 1.
	var secondDo Token
	found := 0
	for _, tok := range toks {
		if tok.Kind == KwDo {
			found++
			if found == 2 {
				secondDo = tok
			}
		}
	}
	if secondDo.Line != 2 || secondDo.Column != 1 {
		t.Fatalf("expected second 'do' at line 2 column 1, got line %d column %d", secondDo.Line, secondDo.Column)
	}
}
