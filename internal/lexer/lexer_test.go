package lexer_test

import (
	"testing"

	"github.com/simondevenish/EmberScript/internal/lexer"
	"github.com/simondevenish/EmberScript/internal/token"
)

func allTokens(src string) []token.Token {
	l := lexer.New(src)
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestLexerKeywordsAndIdents(t *testing.T) {
	toks := allTokens("var x = if_then;")
	want := []token.Kind{token.Keyword, token.Ident, token.Operator, token.Ident, token.Punctuation, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: got kind %v, want %v (%q)", i, toks[i].Kind, k, toks[i].Lexeme)
		}
	}
}

func TestLexerMultiCharOperatorsPreferred(t *testing.T) {
	toks := allTokens("a == b != c <= d >= e && f || g")
	var ops []string
	for _, tok := range toks {
		if tok.Kind == token.Operator {
			ops = append(ops, tok.Lexeme)
		}
	}
	want := []string{"==", "!=", "<=", ">=", "&&", "||"}
	if len(ops) != len(want) {
		t.Fatalf("got ops %v, want %v", ops, want)
	}
	for i, op := range want {
		if ops[i] != op {
			t.Errorf("op %d: got %q, want %q", i, ops[i], op)
		}
	}
}

func TestLexerStringEscapes(t *testing.T) {
	toks := allTokens(`"hello\nworld\t\"!\\"`)
	if toks[0].Kind != token.String {
		t.Fatalf("got kind %v, want string", toks[0].Kind)
	}
	want := "hello\nworld\t\"!\\"
	if toks[0].Lexeme != want {
		t.Errorf("got %q, want %q", toks[0].Lexeme, want)
	}
}

func TestLexerUnterminatedStringIsError(t *testing.T) {
	toks := allTokens(`"unterminated`)
	if toks[0].Kind != token.Error {
		t.Fatalf("got kind %v, want error", toks[0].Kind)
	}
}

func TestLexerBadEscapeIsError(t *testing.T) {
	toks := allTokens(`"bad\xescape"`)
	if toks[0].Kind != token.Error {
		t.Fatalf("got kind %v, want error", toks[0].Kind)
	}
}

func TestLexerComments(t *testing.T) {
	toks := allTokens("1 // line comment\n/* block\ncomment */ 2")
	if toks[0].Kind != token.Number || toks[0].Lexeme != "1" {
		t.Fatalf("got %+v", toks[0])
	}
	if toks[1].Kind != token.Number || toks[1].Lexeme != "2" {
		t.Fatalf("got %+v", toks[1])
	}
}

func TestLexerLineColumnTracking(t *testing.T) {
	toks := allTokens("var x\n= 1;")
	// "var" at 1:1, "x" at 1:5, "=" at 2:1, "1" at 2:3, ";" at 2:4
	if toks[0].Line != 1 || toks[0].Column != 1 {
		t.Errorf("var: got %d:%d", toks[0].Line, toks[0].Column)
	}
	if toks[2].Line != 2 || toks[2].Column != 1 {
		t.Errorf("=: got %d:%d", toks[2].Line, toks[2].Column)
	}
}

func TestLexerRoundTripSimpleInputs(t *testing.T) {
	// Invariant 1: lexeme concatenation with single spaces re-lexes to the
	// same token sequence for keyword/identifier/integer/punctuation inputs.
	src := "function f(a,b){return a+b;}"
	original := allTokens(src)

	var rebuilt []byte
	for _, tok := range original {
		if tok.Kind == token.EOF {
			break
		}
		if len(rebuilt) > 0 {
			rebuilt = append(rebuilt, ' ')
		}
		rebuilt = append(rebuilt, tok.Lexeme...)
	}
	roundTripped := allTokens(string(rebuilt))
	if len(roundTripped) != len(original) {
		t.Fatalf("got %d tokens after round trip, want %d", len(roundTripped), len(original))
	}
	for i := range original {
		if original[i].Kind != roundTripped[i].Kind || original[i].Lexeme != roundTripped[i].Lexeme {
			t.Errorf("token %d: got %+v, want %+v", i, roundTripped[i], original[i])
		}
	}
}
