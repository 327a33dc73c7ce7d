package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"minilang/pkg/minilang"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse minilang source and print its AST",
	Long: `Parse a minilang program and print the resulting AST using each
node's String() pretty-printer.

Examples:
  minilang parse script.mini
  minilang parse -e 'fn main():\n    print("hi")'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	source, filename, err := readInput(args)
	if err != nil {
		return err
	}

	program, err := minilang.Parse(source)
	if err != nil {
		printDiagnostic(err, source, filename)
		return fmt.Errorf("parsing failed")
	}

	fmt.Fprint(os.Stdout, program.String())
	return nil
}
