// Package minilang is the public library surface: four constructors — Lex,
// Parse, Analyze, Run — that a host embeds without touching the internal
// pipeline packages directly.
package minilang

import (
	"minilang/internal/analyzer"
	"minilang/internal/ast"
	"minilang/internal/interp"
	"minilang/internal/lexer"
	"minilang/internal/parser"
	"minilang/internal/token"
)

// Lex tokenizes source, returning a *lexer.Error on the first malformed
// token or unterminated construct.
func Lex(source string) ([]token.Token, error) {
	return lexer.Tokenize(source)
}

// Parse lexes and parses source into a Program, returning a *lexer.Error or
// *parser.Error on the first lexical or syntax error encountered.
func Parse(source string) (*ast.Program, error) {
	return parser.Parse(source)
}

// Analyze runs the two-pass semantic analyzer over program and returns its
// accumulated diagnostics. It never fails on source-level issues — an
// empty slice means the program is clean.
func Analyze(program *ast.Program) []string {
	return analyzer.Analyze(program)
}

// RunOptions configures extern-function host bindings for Run.
type RunOptions struct {
	Externs map[string]interp.ExternFunc
}

// Run executes program, sending each print/alert line to onOutput and each
// trace record to onEvent in program order. A fatal runtime error aborts
// the run and is returned.
func Run(program *ast.Program, onOutput interp.OutputFunc, onEvent interp.EventFunc, opts *RunOptions) error {
	var ropts *interp.Options
	if opts != nil {
		ropts = &interp.Options{Externs: opts.Externs}
	}
	return interp.Run(program, onOutput, onEvent, ropts)
}
