package lexer

import (
	"strings"
	"testing"

	"github.com/zelolang/zelo/internal/token"
)

func TestNextTokenOperators(t *testing.T) {
	input := `loc x = 1 + 2 * (3 - 4) / 5 % 6;
if x >= 1 && x <= 10 { x++; } else { x--; }
"hello\nworld"
`
	tests := []struct {
		typ    token.Type
		lexeme string
	}{
		{token.LOC, "loc"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INT, "1"},
		{token.PLUS, "+"},
		{token.INT, "2"},
		{token.ASTERISK, "*"},
		{token.LPAREN, "("},
		{token.INT, "3"},
		{token.MINUS, "-"},
		{token.INT, "4"},
		{token.RPAREN, ")"},
		{token.SLASH, "/"},
		{token.INT, "5"},
		{token.PERCENT, "%"},
		{token.INT, "6"},
		{token.SEMICOLON, ";"},
		{token.NEWLINE, "\n"},
		{token.IF, "if"},
		{token.IDENT, "x"},
		{token.GTE, ">="},
		{token.INT, "1"},
		{token.AND, "&&"},
		{token.IDENT, "x"},
		{token.LTE, "<="},
		{token.INT, "10"},
		{token.LBRACE, "{"},
		{token.IDENT, "x"},
		{token.INCREMENT, "++"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.ELSE, "else"},
		{token.LBRACE, "{"},
		{token.IDENT, "x"},
		{token.DECREMENT, "--"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.NEWLINE, "\n"},
		{token.STRING, "hello\nworld"},
		{token.NEWLINE, "\n"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, want := range tests {
		got := l.NextToken()
		if got.Type != want.typ {
			t.Fatalf("token %d: type = %s, want %s (lexeme %q)", i, got.Type, want.typ, got.Lexeme)
		}
		if got.Lexeme != want.lexeme {
			t.Fatalf("token %d: lexeme = %q, want %q", i, got.Lexeme, want.lexeme)
		}
	}
}

func TestNextTokenNumericBases(t *testing.T) {
	l := New("0x1F 0b101 0o17 3.14 2e3 1.5e-2")
	want := []struct {
		typ   token.Type
		value string
	}{
		{token.INT, "31"},
		{token.INT, "5"},
		{token.INT, "15"},
		{token.FLOAT, "3.14"},
		{token.FLOAT, "2000"},
		{token.FLOAT, "0.015"},
	}
	for i, w := range want {
		got := l.NextToken()
		if got.Type != w.typ {
			t.Fatalf("token %d: type = %s, want %s", i, got.Type, w.typ)
		}
		if got.Literal != w.value {
			t.Fatalf("token %d: literal = %q, want %q", i, got.Literal, w.value)
		}
	}
}

func TestUnterminatedStringIsIllegalButStreamTerminates(t *testing.T) {
	l := New(`"oops`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("type = %s, want ILLEGAL", tok.Type)
	}
	eof := l.NextToken()
	if eof.Type != token.EOF {
		t.Fatalf("type = %s, want EOF after illegal token", eof.Type)
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	l := New("loc a\nloc b")
	_ = l.NextToken() // loc
	a := l.NextToken()
	if a.Line != 1 {
		t.Fatalf("a.Line = %d, want 1", a.Line)
	}
	_ = l.NextToken() // newline
	_ = l.NextToken() // loc
	b := l.NextToken()
	if b.Line != 2 {
		t.Fatalf("b.Line = %d, want 2", b.Line)
	}
}

func TestLexerRoundTrip(t *testing.T) {
	// Concatenating lexemes (with whitespace reinserted where it was
	// consumed) should re-lex to an equivalent stream of kinds+lexemes.
	input := "loc n = 0 ;\nfunc inc ( ) { n = n + 1 ; return n ; }"
	var toks1 []token.Token
	l1 := New(input)
	for {
		tok := l1.NextToken()
		toks1 = append(toks1, tok)
		if tok.Type == token.EOF {
			break
		}
	}

	lexemes := make([]string, len(toks1))
	for i, tok := range toks1 {
		lexemes[i] = tok.Lexeme
	}
	l2 := New(strings.Join(lexemes, " "))
	i := 0
	for {
		tok := l2.NextToken()
		if tok.Type != toks1[i].Type {
			t.Fatalf("re-lex token %d: type = %s, want %s", i, tok.Type, toks1[i].Type)
		}
		if tok.Lexeme != toks1[i].Lexeme {
			t.Fatalf("re-lex token %d: lexeme = %q, want %q", i, tok.Lexeme, toks1[i].Lexeme)
		}
		if tok.Type == token.EOF {
			break
		}
		i++
	}
}
