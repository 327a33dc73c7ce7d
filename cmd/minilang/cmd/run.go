package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"minilang/internal/errors"
	"minilang/internal/interp"
	"minilang/pkg/minilang"
)

var (
	dumpAST       bool
	traceEvents   bool
	skipTypeCheck bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a minilang program",
	Long: `Lex, parse, analyze and execute a minilang program, printing its
output in program order.

By default, run refuses to execute a program with non-empty analyzer
diagnostics — pass --skip-type-check to run anyway.

Examples:
  minilang run script.mini
  minilang run -e 'fn main():\n    print("hi")'
  minilang run --dump-ast script.mini
  minilang run --trace script.mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST before running")
	runCmd.Flags().BoolVar(&traceEvents, "trace", false, "print the scope/move event trace as JSON lines instead of running silently")
	runCmd.Flags().BoolVar(&skipTypeCheck, "skip-type-check", false, "run even if the analyzer reports diagnostics")
}

func runRun(cmd *cobra.Command, args []string) error {
	source, filename, err := readInput(args)
	if err != nil {
		return err
	}

	program, err := minilang.Parse(source)
	if err != nil {
		printDiagnostic(err, source, filename)
		return fmt.Errorf("parsing failed")
	}

	if dumpAST {
		fmt.Fprintln(os.Stdout, "AST:")
		fmt.Fprint(os.Stdout, program.String())
		fmt.Fprintln(os.Stdout)
	}

	diags := minilang.Analyze(program)
	if len(diags) > 0 {
		fmt.Fprintln(os.Stderr, errors.FormatAll(errors.FromDiagnostics(diags, source, filename), true))
		if !skipTypeCheck {
			return fmt.Errorf("analysis found %d diagnostic(s); use --skip-type-check to run anyway", len(diags))
		}
	}

	onOutput := func(line string) { fmt.Fprintln(os.Stdout, line) }

	var onEvent interp.EventFunc
	if traceEvents {
		enc := json.NewEncoder(os.Stderr)
		onEvent = func(ev interp.Event) { _ = enc.Encode(ev) }
	}

	if err := minilang.Run(program, onOutput, onEvent, nil); err != nil {
		return fmt.Errorf("runtime error: %w", err)
	}
	return nil
}
