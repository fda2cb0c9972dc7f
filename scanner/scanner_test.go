package scanner

import (
	"bytes"
	"testing"

	"github.com/cmdneo/loxgo/report"
	"github.com/cmdneo/loxgo/token"
)

func scan(t *testing.T, src string) ([]token.Token, *report.Std) {
	t.Helper()
	rep := report.NewStd(&bytes.Buffer{})
	toks := New(src, rep).ScanTokens()
	return toks, rep
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func wantKinds(t *testing.T, got, want []token.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("kind count mismatch: got %v want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("kind %d: got %v want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestScanPunctuatorsAndOperators(t *testing.T) {
	toks, rep := scan(t, "(){},.-+;*/ != == <= >= < > = !")
	if rep.HadStaticError() {
		t.Fatalf("unexpected static error")
	}
	want := []token.Kind{
		token.LEFT_PAREN, token.RIGHT_PAREN, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.COMMA, token.DOT, token.MINUS, token.PLUS, token.SEMICOLON,
		token.STAR, token.SLASH,
		token.BANG_EQUAL, token.EQUAL_EQUAL, token.LESS_EQUAL, token.GREATER_EQUAL,
		token.LESS, token.GREATER, token.EQUAL, token.BANG,
		token.EOF,
	}
	wantKinds(t, kinds(toks), want)
}

func TestScanStringLiteral(t *testing.T) {
	toks, rep := scan(t, `"hello world"`)
	if rep.HadStaticError() {
		t.Fatalf("unexpected static error")
	}
	if len(toks) != 2 || toks[0].Kind != token.STRING {
		t.Fatalf("got %v", toks)
	}
	if toks[0].Literal != "hello world" {
		t.Fatalf("literal = %q", toks[0].Literal)
	}
}

func TestScanUnterminatedString(t *testing.T) {
	_, rep := scan(t, `"unterminated`)
	if !rep.HadStaticError() {
		t.Fatalf("expected a static error for an unterminated string")
	}
}

func TestScanNumberLiteral(t *testing.T) {
	toks, _ := scan(t, "123.45")
	if toks[0].Kind != token.NUMBER || toks[0].Literal != 123.45 {
		t.Fatalf("got %v", toks[0])
	}
}

func TestScanTrailingDotNotConsumedWithoutDigit(t *testing.T) {
	toks, _ := scan(t, "123.")
	want := []token.Kind{token.NUMBER, token.DOT, token.EOF}
	wantKinds(t, kinds(toks), want)
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks, _ := scan(t, "var x = true and false or nil")
	want := []token.Kind{
		token.VAR, token.IDENTIFIER, token.EQUAL, token.TRUE,
		token.AND, token.FALSE, token.OR, token.NIL, token.EOF,
	}
	wantKinds(t, kinds(toks), want)
	if toks[3].Literal != true {
		t.Fatalf("true literal = %v", toks[3].Literal)
	}
}

func TestScanLineCommentsAndWhitespaceSkipped(t *testing.T) {
	toks, _ := scan(t, "var a = 1; // trailing comment\nvar b = 2;")
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("missing EOF")
	}
	if toks[len(toks)-1].Line != 2 {
		t.Fatalf("EOF line = %d, want 2", toks[len(toks)-1].Line)
	}
}

func TestScanUnexpectedCharacterReportsAndContinues(t *testing.T) {
	toks, rep := scan(t, "var a = 1 @ 2;")
	if !rep.HadStaticError() {
		t.Fatalf("expected a static error for '@'")
	}
	if toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("scanning should continue past the bad character")
	}
}
