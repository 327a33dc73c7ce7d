package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"minilang/internal/errors"
	"minilang/internal/lexer"
	"minilang/internal/parser"
	"minilang/pkg/minilang"
)

var (
	showPos  bool
	showKind bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a minilang source file or expression",
	Long: `Tokenize a minilang program and print the resulting tokens, one per
line, in source order.

Examples:
  minilang lex script.mini
  minilang lex -e 'fn main():\n    print("hi")'
  minilang lex --show-pos --show-kind script.mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show each token's line:column")
	lexCmd.Flags().BoolVar(&showKind, "show-kind", false, "show each token's kind name")
}

func runLex(cmd *cobra.Command, args []string) error {
	source, filename, err := readInput(args)
	if err != nil {
		return err
	}

	tokens, err := minilang.Lex(source)
	if err != nil {
		printDiagnostic(err, source, filename)
		return fmt.Errorf("lexing failed")
	}

	for _, tok := range tokens {
		line := tok.String()
		if showKind || showPos {
			line = fmt.Sprintf("[%s]", tok.Kind)
			if tok.Literal != "" {
				line += fmt.Sprintf(" %q", tok.Literal)
			}
			if showPos {
				line += fmt.Sprintf(" @%s", tok.Pos.String())
			}
		}
		fmt.Fprintln(os.Stdout, line)
	}
	return nil
}

// printDiagnostic renders err as a source-positioned, colored diagnostic via
// internal/errors. lexer.Error and parser.Error carry their own position but
// aren't SourceErrors themselves, so they're converted first; anything else
// renders positionless.
func printDiagnostic(err error, source, filename string) {
	fmt.Fprintln(os.Stderr, sourceError(err, source, filename).Format(true))
}

func sourceError(err error, source, filename string) *errors.SourceError {
	switch e := err.(type) {
	case *errors.SourceError:
		e.Source = source
		e.File = filename
		return e
	case *lexer.Error:
		return errors.New(e.Pos, e.Message, source, filename)
	case *parser.Error:
		return errors.New(e.Pos, e.Message, source, filename)
	default:
		return &errors.SourceError{Message: err.Error(), Source: source, File: filename}
	}
}
