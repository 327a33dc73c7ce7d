package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"minilang/internal/errors"
	"minilang/pkg/minilang"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Run the semantic analyzer and print its diagnostics",
	Long: `Parse a minilang program and run the two-pass semantic analyzer over
it, printing each diagnostic and a colored pass/fail summary line.

Examples:
  minilang analyze script.mini
  minilang analyze -e 'fn main():\n    print(missing)'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	source, filename, err := readInput(args)
	if err != nil {
		return err
	}

	program, err := minilang.Parse(source)
	if err != nil {
		printDiagnostic(err, source, filename)
		return fmt.Errorf("parsing failed")
	}

	diags := minilang.Analyze(program)
	if len(diags) == 0 {
		fmt.Fprintf(os.Stdout, "[%s] %s: no diagnostics\n", color.GreenString("clean"), filename)
		return nil
	}

	fmt.Fprintln(os.Stdout, errors.FormatAll(errors.FromDiagnostics(diags, source, filename), true))
	fmt.Fprintf(os.Stdout, "[%s] %s: %d diagnostic(s)\n", color.RedString("issues"), filename, len(diags))
	return fmt.Errorf("analysis found %d diagnostic(s)", len(diags))
}
