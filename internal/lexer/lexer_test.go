package lexer

import (
	"testing"

	"minilang/internal/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	toks, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", src, err)
	}
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, src string, want []token.Kind) {
	t.Helper()
	got := kinds(t, src)
	if len(got) != len(want) {
		t.Fatalf("Tokenize(%q) = %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokenize(%q)[%d] = %s, want %s (full: %v)", src, i, got[i], want[i], got)
		}
	}
}

func TestSimpleTokens(t *testing.T) {
	assertKinds(t, `1 + 2`, []token.Kind{token.NUMBER, token.PLUS, token.NUMBER, token.EOF})
}

func TestTwoCharOperatorsMatchMaximally(t *testing.T) {
	assertKinds(t, `== != <= >= -> => ::`, []token.Kind{
		token.EQ, token.NEQ, token.LE, token.GE, token.ARROW, token.FATARROW, token.COLONCOLON, token.EOF,
	})
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks, err := Tokenize("fn let mut foo_bar _ this")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Kind{token.FN, token.LET, token.MUT, token.IDENTIFIER, token.UNDERSCORE, token.THIS, token.EOF}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d = %s, want %s", i, toks[i].Kind, k)
		}
	}
	if toks[3].Literal != "foo_bar" {
		t.Fatalf("identifier literal = %q, want foo_bar", toks[3].Literal)
	}
}

func TestStringLiteralNoEscapes(t *testing.T) {
	toks, err := Tokenize(`"hello, world"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Kind != token.STRING || toks[0].Literal != "hello, world" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestUnterminatedStringIsFatal(t *testing.T) {
	_, err := Tokenize(`"oops`)
	if err == nil {
		t.Fatal("expected an unterminated string error")
	}
}

func TestLineComment(t *testing.T) {
	assertKinds(t, "1 # a trailing comment\n2", []token.Kind{
		token.NUMBER, token.NEWLINE, token.NUMBER, token.EOF,
	})
}

func TestIndentationProducesBalancedLayout(t *testing.T) {
	src := "fn main():\n    let x = 1\n    if x:\n        let y = 2\n    let z = 3\n"
	toks, err := Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var indents, dedents int
	for _, tok := range toks {
		switch tok.Kind {
		case token.INDENT:
			indents++
		case token.DEDENT:
			dedents++
		}
	}
	if indents != dedents {
		t.Fatalf("unbalanced layout: %d INDENT vs %d DEDENT", indents, dedents)
	}
	if indents != 2 {
		t.Fatalf("expected 2 INDENT tokens for a nested block, got %d", indents)
	}
}

func TestBlankAndCommentOnlyLinesProduceNoLayout(t *testing.T) {
	src := "let a = 1\n\n# just a comment\n\nlet b = 2\n"
	got := kinds(t, src)
	for _, k := range got {
		if k == token.INDENT || k == token.DEDENT {
			t.Fatalf("expected no layout tokens for flat blank/comment lines, got %v", got)
		}
	}
}

func TestBracketsSuppressLayout(t *testing.T) {
	src := "let xs = [\n    1,\n    2,\n]\n"
	got := kinds(t, src)
	for _, k := range got {
		if k == token.INDENT || k == token.DEDENT {
			t.Fatalf("expected no layout tokens inside brackets, got %v", got)
		}
	}
}

func TestInconsistentDedentIsFatal(t *testing.T) {
	src := "fn main():\n    let x = 1\n      let y = 2\n   let z = 3\n"
	_, err := Tokenize(src)
	if err == nil {
		t.Fatal("expected an inconsistent dedent error")
	}
}

func TestTrailingDedentsAtEOF(t *testing.T) {
	src := "fn main():\n    let x = 1\n"
	toks, err := Tokenize(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := toks[len(toks)-1]
	if last.Kind != token.EOF {
		t.Fatalf("expected stream to end in EOF, got %s", last.Kind)
	}
	if toks[len(toks)-2].Kind != token.DEDENT {
		t.Fatalf("expected a DEDENT synthesized before EOF, got %s", toks[len(toks)-2].Kind)
	}
}
