package macro

import (
	"testing"

	"github.com/zelolang/zelo/internal/token"
)

func tok(typ token.Type, lexeme string) token.Token {
	return token.Token{Type: typ, Lexeme: lexeme, Line: 1}
}

func lexemes(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Lexeme
	}
	return out
}

func assertLexemes(t *testing.T, got []token.Token, want []string) {
	gotLex := lexemes(got)
	if len(gotLex) != len(want) {
		t.Fatalf("lexemes = %v, want %v", gotLex, want)
	}
	for i := range want {
		if gotLex[i] != want[i] {
			t.Fatalf("lexemes = %v, want %v", gotLex, want)
		}
	}
}

func TestObjectLikeMacroSubstitution(t *testing.T) {
	toks := []token.Token{
		tok(token.MACRO, "macro"), tok(token.IDENT, "PI"), tok(token.FLOAT, "3.14"), tok(token.SEMICOLON, ";"),
		tok(token.IDENT, "PI"), tok(token.PLUS, "+"), tok(token.IDENT, "PI"),
		tok(token.EOF, ""),
	}
	out, err := New().Expand(toks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertLexemes(t, out, []string{"3.14", "+", "3.14", ""})
}

func TestFunctionLikeMacroSubstitutesArguments(t *testing.T) {
	// macro SQUARE(x) x * x ;
	// SQUARE(2 + 3)
	toks := []token.Token{
		tok(token.MACRO, "macro"), tok(token.IDENT, "SQUARE"), tok(token.LPAREN, "("), tok(token.IDENT, "x"), tok(token.RPAREN, ")"),
		tok(token.IDENT, "x"), tok(token.ASTERISK, "*"), tok(token.IDENT, "x"), tok(token.SEMICOLON, ";"),

		tok(token.IDENT, "SQUARE"), tok(token.LPAREN, "("),
		tok(token.INT, "2"), tok(token.PLUS, "+"), tok(token.INT, "3"),
		tok(token.RPAREN, ")"),
		tok(token.EOF, ""),
	}
	out, err := New().Expand(toks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertLexemes(t, out, []string{"2", "+", "3", "*", "2", "+", "3", ""})
}

func TestFunctionLikeMacroArityMismatchErrors(t *testing.T) {
	toks := []token.Token{
		tok(token.MACRO, "macro"), tok(token.IDENT, "ADD"), tok(token.LPAREN, "("), tok(token.IDENT, "a"), tok(token.COMMA, ","), tok(token.IDENT, "b"), tok(token.RPAREN, ")"),
		tok(token.IDENT, "a"), tok(token.PLUS, "+"), tok(token.IDENT, "b"), tok(token.SEMICOLON, ";"),

		tok(token.IDENT, "ADD"), tok(token.LPAREN, "("), tok(token.INT, "1"), tok(token.RPAREN, ")"),
		tok(token.EOF, ""),
	}
	if _, err := New().Expand(toks); err == nil {
		t.Fatalf("expected arity mismatch error")
	}
}

func TestArgumentCaptureRespectsBalancedBracketsAndTopLevelCommas(t *testing.T) {
	// macro FIRST(a, b) a ;
	// FIRST([1, 2], 9)  -- the comma inside [1, 2] must not split the args
	toks := []token.Token{
		tok(token.MACRO, "macro"), tok(token.IDENT, "FIRST"), tok(token.LPAREN, "("), tok(token.IDENT, "a"), tok(token.COMMA, ","), tok(token.IDENT, "b"), tok(token.RPAREN, ")"),
		tok(token.IDENT, "a"), tok(token.SEMICOLON, ";"),

		tok(token.IDENT, "FIRST"), tok(token.LPAREN, "("),
		tok(token.LBRACKET, "["), tok(token.INT, "1"), tok(token.COMMA, ","), tok(token.INT, "2"), tok(token.RBRACKET, "]"),
		tok(token.COMMA, ","), tok(token.INT, "9"),
		tok(token.RPAREN, ")"),
		tok(token.EOF, ""),
	}
	out, err := New().Expand(toks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertLexemes(t, out, []string{"[", "1", ",", "2", "]", ""})
}

func TestUndefinedMacroInvocationIsNotTreatedAsInvocation(t *testing.T) {
	// A bare identifier that happens to share a name with nothing defined
	// passes through untouched; it's only an error if a later stage (the
	// parser) cannot make sense of it, not the expander's job to flag.
	toks := []token.Token{tok(token.IDENT, "notAMacro"), tok(token.EOF, "")}
	out, err := New().Expand(toks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertLexemes(t, out, []string{"notAMacro", ""})
}

func TestMacroBodyCanInvokeAnotherMacro(t *testing.T) {
	// macro B 1 ;
	// macro A B ;   (A's own body references the macro B, expanded while
	//                constructing A's single expansion)
	// A            -- expands fully to "1"
	toks := []token.Token{
		tok(token.MACRO, "macro"), tok(token.IDENT, "B"), tok(token.INT, "1"), tok(token.SEMICOLON, ";"),
		tok(token.MACRO, "macro"), tok(token.IDENT, "A"), tok(token.IDENT, "B"), tok(token.SEMICOLON, ";"),
		tok(token.IDENT, "A"),
		tok(token.EOF, ""),
	}
	out, err := New().Expand(toks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertLexemes(t, out, []string{"1", ""})
}

func TestArgumentTokensAreSubstitutedVerbatimNotExpanded(t *testing.T) {
	// macro M 5 ;
	// macro USE(x) x ;
	// USE(M)  -- the argument is the bare token "M", inserted as-is; it is
	//          not itself expanded into "5" since substitution is literal.
	toks := []token.Token{
		tok(token.MACRO, "macro"), tok(token.IDENT, "M"), tok(token.INT, "5"), tok(token.SEMICOLON, ";"),
		tok(token.MACRO, "macro"), tok(token.IDENT, "USE"), tok(token.LPAREN, "("), tok(token.IDENT, "x"), tok(token.RPAREN, ")"),
		tok(token.IDENT, "x"), tok(token.SEMICOLON, ";"),

		tok(token.IDENT, "USE"), tok(token.LPAREN, "("), tok(token.IDENT, "M"), tok(token.RPAREN, ")"),
		tok(token.EOF, ""),
	}
	out, err := New().Expand(toks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertLexemes(t, out, []string{"M", ""})
}
