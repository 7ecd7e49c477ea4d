// Package pipeline chains the lex -> macro-expand -> parse stages shared by
// the CLI driver, the module loader, and the `--check` diagnostic mode
// (SPEC_FULL.md §4.0). Grounded on funvibe-funxy/internal/pipeline/
// pipeline.go's Pipeline{processors []Processor} / Run shape, which is
// already a minimal, generic, fully-adaptable abstraction carrying no
// funxy-specific type.
package pipeline

import (
	"github.com/zelolang/zelo/internal/ast"
	"github.com/zelolang/zelo/internal/diagnostics"
	"github.com/zelolang/zelo/internal/lexer"
	"github.com/zelolang/zelo/internal/macro"
	"github.com/zelolang/zelo/internal/parser"
	"github.com/zelolang/zelo/internal/token"
)

// Result is the outcome of running the pipeline over one source text:
// the parsed program (nil if parsing failed outright) plus every
// diagnostic collected along the way.
type Result struct {
	Tokens  []token.Token
	Program *ast.Program
	Errors  []*diagnostics.Error
}

// Pipeline runs the lex/macro/parse stages in sequence, stopping early
// (with its accumulated errors) if an earlier stage fails outright.
type Pipeline struct {
	expander *macro.Expander
}

// New returns a Pipeline with a fresh macro expander. Each Pipeline owns
// its own expander so that macro definitions from one source text never
// leak into another.
func New() *Pipeline {
	return &Pipeline{expander: macro.New()}
}

// Run lexes, macro-expands, and parses src, returning as much of the
// Result as each stage managed to produce.
func (p *Pipeline) Run(src string) *Result {
	res := &Result{}

	l := lexer.New(src)
	for {
		tok := l.NextToken()
		res.Tokens = append(res.Tokens, tok)
		if tok.Type == token.EOF {
			break
		}
		if tok.Type == token.ILLEGAL {
			res.Errors = append(res.Errors, diagnostics.Syntaxf(diagnostics.CodeIllegalToken, tok.Line, "illegal token %q", tok.Lexeme))
		}
	}

	expanded, err := p.expander.Expand(res.Tokens)
	if err != nil {
		if diag, ok := err.(*diagnostics.Error); ok {
			res.Errors = append(res.Errors, diag)
		}
		return res
	}

	pr := parser.New(expanded)
	res.Program = pr.ParseProgram()
	res.Errors = append(res.Errors, pr.Errors...)
	return res
}

// Check runs the pipeline and reports only whether it succeeded, for the
// CLI's `-c`/`--check` mode (SPEC_FULL.md §4.0): lex + macro-expand +
// parse, no evaluation.
func Check(src string) []*diagnostics.Error {
	return New().Run(src).Errors
}
