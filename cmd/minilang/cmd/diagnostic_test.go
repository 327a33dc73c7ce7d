package cmd

import (
	"strings"
	"testing"

	"github.com/fatih/color"

	"minilang/internal/parser"
)

// A real syntax error renders through sourceError as a caret-pointing,
// colored SourceError rather than falling through to a plain error string.
func TestPrintDiagnosticRendersCaretForSyntaxError(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	src := "fn main():\n    let x: int = \n"
	_, err := parser.Parse(src)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if _, ok := err.(*parser.Error); !ok {
		t.Fatalf("expected *parser.Error, got %T", err)
	}

	rendered := sourceError(err, src, "<test>").Format(true)
	if !strings.Contains(rendered, "^") {
		t.Fatalf("expected a caret line, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "\x1b[") {
		t.Fatalf("expected ANSI color codes, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "<test>") {
		t.Fatalf("expected the filename in the header, got:\n%s", rendered)
	}
}
