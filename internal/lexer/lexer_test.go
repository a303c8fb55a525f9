package lexer

import (
	"testing"

	"github.com/ctilde/ctilde/internal/token"
)

func TestNextTokenPunctuationAndKeywords(t *testing.T) {
	src := `struct A : B { public: int x; };`

	want := []token.Kind{
		token.KwStruct, token.Identifier, token.Colon, token.Identifier,
		token.LBrace, token.KwPublic, token.Colon, token.KwInt, token.Identifier,
		token.Semicolon, token.RBrace, token.Semicolon, token.EOF,
	}

	toks := All(src)
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestDigraphsPreferLongestMatch(t *testing.T) {
	src := `a == b != c -> d::e`
	toks := All(src)

	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}

	want := []token.Kind{
		token.Identifier, token.Eq, token.Identifier, token.Ne, token.Identifier,
		token.Arrow, token.Identifier, token.DoubleColon, token.Identifier, token.EOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("index %d: got %s want %s", i, kinds[i], want[i])
		}
	}
}

func TestHexAndDecimalIntegers(t *testing.T) {
	toks := All("0x1F 42")
	if toks[0].Kind != token.HexLiteral || toks[0].Text != "0x1F" {
		t.Errorf("hex literal: got %+v", toks[0])
	}
	if toks[1].Kind != token.IntLiteral || toks[1].Text != "42" {
		t.Errorf("int literal: got %+v", toks[1])
	}
}

func TestStringEscapes(t *testing.T) {
	toks := All(`"a\nb\tc\\d\"e\qf"`)
	got := toks[0].Text
	want := "a\nb\tc\\d\"e\\qf"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestCommentsAndWhitespaceSkipped(t *testing.T) {
	src := "int x; // trailing comment\nint y;"
	toks := All(src)
	if len(toks) != 7 { // int x ; int y ; EOF
		t.Fatalf("got %d tokens: %v", len(toks), toks)
	}
}

func TestUnknownCharacterProducesUnknownToken(t *testing.T) {
	toks := All("int x = @;")
	found := false
	for _, tk := range toks {
		if tk.Kind == token.Unknown {
			found = true
			if tk.Text != "@" {
				t.Errorf("unknown token text = %q, want @", tk.Text)
			}
		}
	}
	if !found {
		t.Fatal("expected an Unknown token for '@'")
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	src := "int x;\nint y;"
	toks := All(src)
	// "y" is on line 2, at column 5 after "int ".
	for _, tk := range toks {
		if tk.Text == "y" {
			if tk.Line != 2 {
				t.Errorf("y: line = %d, want 2", tk.Line)
			}
			if tk.Column != 5 {
				t.Errorf("y: column = %d, want 5", tk.Column)
			}
		}
	}
}

func TestAlwaysEmitsFinalEOF(t *testing.T) {
	for _, src := range []string{"", "   ", "int x;"} {
		toks := All(src)
		last := toks[len(toks)-1]
		if last.Kind != token.EOF {
			t.Errorf("src %q: last token = %v, want EOF", src, last)
		}
	}
}
