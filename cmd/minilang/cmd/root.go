// Package cmd is the cobra command tree hosting the minilang toolchain:
// lex, parse, analyze and run, each a thin shell around pkg/minilang.
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	evalExpr  string
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "minilang",
	Short: "minilang toolchain: lex, parse, analyze and run .mini scripts",
	Long: `minilang is a small indentation-sensitive scripting language with
structs, enums, traits, generics, closures and move-discipline tracking.

This CLI exposes the four pkg/minilang library functions (lex, parse,
analyze, run) as runnable subcommands for exploring and debugging
programs written in it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading a file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI color in diagnostic output")
}

func readInput(args []string) (source, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, readErr := readFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return content, args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e/--eval for inline source")
}
