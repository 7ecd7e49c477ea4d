// Package macro implements the token-stream macro layer of spec.md §4.2:
// collecting `macro` definitions and substituting invocations before the
// token stream reaches the parser.
package macro

import (
	"github.com/zelolang/zelo/internal/diagnostics"
	"github.com/zelolang/zelo/internal/token"
)

// maxDepth bounds nested macro-body expansion (spec.md §4.2 "recursion
// detection is by call-depth bound; exceeding it raises macro recursion").
const maxDepth = 128

// definition is a collected `macro` declaration.
type definition struct {
	name   string
	params []string // nil for object-like macros
	body   []token.Token
}

// Expander collects macro definitions and substitutes invocations.
type Expander struct {
	defs map[string]*definition
}

func New() *Expander {
	return &Expander{defs: make(map[string]*definition)}
}

// Expand consumes a full token stream (including a trailing EOF) and
// returns the stream with every `macro` declaration removed and every
// invocation of a previously declared macro replaced by its body, per
// spec.md §4.2. It runs a single left-to-right pass: once a macro
// invocation has been substituted, the substituted tokens are appended to
// the output and are not re-scanned for further invocations at this call
// site (spec.md: "it does not re-expand expansions"). A macro whose body
// itself invokes another macro is expanded recursively at definition-use
// time, bounded by maxDepth.
func (e *Expander) Expand(tokens []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(tokens))
	i := 0
	for i < len(tokens) {
		tok := tokens[i]

		if tok.Type == token.MACRO {
			def, consumed, err := e.parseDefinition(tokens[i:])
			if err != nil {
				return nil, err
			}
			e.defs[def.name] = def
			i += consumed
			continue
		}

		if tok.Type == token.IDENT {
			if def, ok := e.defs[tok.Lexeme]; ok {
				expanded, consumed, err := e.expandInvocation(def, tokens[i:], 0)
				if err != nil {
					return nil, err
				}
				out = append(out, expanded...)
				i += consumed
				continue
			}
		}

		out = append(out, tok)
		i++
	}
	return out, nil
}

// parseDefinition consumes a `macro NAME body ;` or
// `macro NAME(p1, p2, ...) body ;` declaration starting at toks[0] (the
// MACRO keyword) and returns the definition plus how many tokens were
// consumed, including the trailing semicolon.
func (e *Expander) parseDefinition(toks []token.Token) (*definition, int, error) {
	pos := 1 // skip `macro`
	if pos >= len(toks) || toks[pos].Type != token.IDENT {
		return nil, 0, diagnostics.Syntaxf(diagnostics.CodeParseUnexpected, toks[0].Line, "expected macro name after 'macro'")
	}
	name := toks[pos].Lexeme
	pos++

	var params []string
	if pos < len(toks) && toks[pos].Type == token.LPAREN {
		pos++ // consume '('
		params = []string{}
		for pos < len(toks) && toks[pos].Type != token.RPAREN {
			if toks[pos].Type != token.IDENT {
				return nil, 0, diagnostics.Syntaxf(diagnostics.CodeParseUnexpected, toks[pos].Line, "expected parameter name in macro %q definition", name)
			}
			params = append(params, toks[pos].Lexeme)
			pos++
			if pos < len(toks) && toks[pos].Type == token.COMMA {
				pos++
			}
		}
		if pos >= len(toks) || toks[pos].Type != token.RPAREN {
			return nil, 0, diagnostics.Syntaxf(diagnostics.CodeParseUnexpected, toks[0].Line, "missing ')' in macro %q parameter list", name)
		}
		pos++ // consume ')'
	}

	bodyStart := pos
	for pos < len(toks) && toks[pos].Type != token.SEMICOLON && toks[pos].Type != token.EOF {
		pos++
	}
	if pos >= len(toks) || toks[pos].Type != token.SEMICOLON {
		return nil, 0, diagnostics.Syntaxf(diagnostics.CodeParseUnexpected, toks[0].Line, "missing ';' terminating macro %q definition", name)
	}
	body := toks[bodyStart:pos]
	pos++ // consume ';'

	return &definition{name: name, params: params, body: body}, pos, nil
}

// expandInvocation substitutes a single use of def starting at toks[0]
// (the macro name identifier). For object-like macros this is just the
// body; for function-like macros it parses a balanced argument list,
// splits it at top-level commas, and substitutes each parameter
// occurrence in the body with its captured argument tokens.
func (e *Expander) expandInvocation(def *definition, toks []token.Token, depth int) ([]token.Token, int, error) {
	if depth >= maxDepth {
		return nil, 0, diagnostics.Syntaxf(diagnostics.CodeMacroRecursion, toks[0].Line, "macro recursion exceeded depth %d expanding %q", maxDepth, def.name)
	}

	if def.params == nil {
		expanded, err := e.expandBody(def.body, nil, depth)
		if err != nil {
			return nil, 0, err
		}
		return expanded, 1, nil
	}

	if len(toks) < 2 || toks[1].Type != token.LPAREN {
		return nil, 0, diagnostics.Syntaxf(diagnostics.CodeMacroArity, toks[0].Line, "function-like macro %q invoked without argument list", def.name)
	}

	args, consumed, err := splitArguments(toks[1:])
	if err != nil {
		return nil, 0, err
	}
	if len(args) != len(def.params) {
		return nil, 0, diagnostics.Syntaxf(diagnostics.CodeMacroArity, toks[0].Line, "macro %q expects %d argument(s), got %d", def.name, len(def.params), len(args))
	}

	bindings := make(map[string][]token.Token, len(def.params))
	for i, p := range def.params {
		bindings[p] = args[i]
	}

	expanded, err := e.expandBody(def.body, bindings, depth)
	if err != nil {
		return nil, 0, err
	}
	return expanded, 1 + consumed, nil
}

// expandBody walks def's body tokens, substituting parameter references
// from bindings and recursively expanding any nested macro invocation it
// encounters.
func (e *Expander) expandBody(body []token.Token, bindings map[string][]token.Token, depth int) ([]token.Token, error) {
	out := make([]token.Token, 0, len(body))
	i := 0
	for i < len(body) {
		tok := body[i]

		if tok.Type == token.IDENT {
			if arg, ok := bindings[tok.Lexeme]; ok {
				out = append(out, arg...)
				i++
				continue
			}
			if def, ok := e.defs[tok.Lexeme]; ok {
				expanded, consumed, err := e.expandInvocation(def, body[i:], depth+1)
				if err != nil {
					return nil, err
				}
				out = append(out, expanded...)
				i += consumed
				continue
			}
		}

		out = append(out, tok)
		i++
	}
	return out, nil
}

// splitArguments consumes a balanced `( ... )` argument list starting at
// toks[0] (the '(') and splits its contents at top-level commas, per
// spec.md §4.2 "Argument capture respects balanced ()[]{} and splits at
// top-level commas". It returns the arguments and how many tokens
// (including both parens) were consumed.
func splitArguments(toks []token.Token) ([][]token.Token, int, error) {
	if len(toks) == 0 || toks[0].Type != token.LPAREN {
		return nil, 0, diagnostics.Syntaxf(diagnostics.CodeMacroArity, 0, "expected '(' to begin macro argument list")
	}
	if len(toks) > 1 && toks[1].Type == token.RPAREN {
		return [][]token.Token{}, 2, nil
	}
	depth := 0
	var args [][]token.Token
	var current []token.Token

	i := 0
	for ; i < len(toks); i++ {
		tok := toks[i]
		switch tok.Type {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
			if depth > 1 {
				current = append(current, tok)
			}
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			depth--
			if depth == 0 {
				args = append(args, current)
				i++
				return args, i, nil
			}
			current = append(current, tok)
		case token.COMMA:
			if depth == 1 {
				args = append(args, current)
				current = nil
			} else {
				current = append(current, tok)
			}
		default:
			current = append(current, tok)
		}
	}
	return nil, 0, diagnostics.Syntaxf(diagnostics.CodeMacroArity, toks[0].Line, "missing ')' closing macro argument list")
}
