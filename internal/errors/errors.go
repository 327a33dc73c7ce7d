// Package errors renders source-positioned diagnostics with a line/column
// header, the offending source line, and a caret, optionally colorized.
//
// It is used by the CLI host, which converts the lexer's and parser's own
// error values into a SourceError and also wraps the analyzer's accumulated
// diagnostic strings in SourceError for consistent output (the lexer,
// parser, analyzer and interpreter never depend on this package).
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"minilang/internal/token"
)

// SourceError is a single diagnostic anchored to a source position.
type SourceError struct {
	Message string
	Source  string // full source text, for rendering the offending line
	File    string // display name; empty renders as "line:col" only
	Pos     token.Position
}

// New creates a SourceError.
func New(pos token.Position, message, source, file string) *SourceError {
	return &SourceError{Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface with uncolored output.
func (e *SourceError) Error() string {
	return e.Format(false)
}

// Format renders the error with a source-line excerpt and a caret pointing
// at the column. When color is true, the header and caret use
// github.com/fatih/color.
func (e *SourceError) Format(useColor bool) string {
	var sb strings.Builder

	if e.Pos.Line == 0 {
		if useColor {
			sb.WriteString(color.New(color.Bold).Sprint("error\n"))
		} else {
			sb.WriteString("error\n")
		}
	} else {
		header := fmt.Sprintf("line %d:%d", e.Pos.Line, e.Pos.Column)
		if e.File != "" {
			header = fmt.Sprintf("%s:%d:%d", e.File, e.Pos.Line, e.Pos.Column)
		}
		if useColor {
			sb.WriteString(color.New(color.Bold).Sprintf("error at %s\n", header))
		} else {
			sb.WriteString(fmt.Sprintf("error at %s\n", header))
		}
	}

	if line, ok := sourceLine(e.Source, e.Pos.Line); ok {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteByte('\n')

		caretCol := e.Pos.Column - 1
		if caretCol < 0 {
			caretCol = 0
		}
		sb.WriteString(strings.Repeat(" ", len(prefix)+caretCol))
		if useColor {
			sb.WriteString(color.RedString("^"))
		} else {
			sb.WriteByte('^')
		}
		sb.WriteByte('\n')
	}

	if useColor {
		sb.WriteString(e.Message)
	} else {
		sb.WriteString(e.Message)
	}

	return sb.String()
}

func sourceLine(source string, line int) (string, bool) {
	if source == "" || line < 1 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}

// FormatAll renders a list of diagnostics separated by blank lines.
func FormatAll(errs []*SourceError, useColor bool) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Format(useColor)
	}
	return strings.Join(parts, "\n\n")
}

// FromDiagnostics wraps the analyzer's plain, self-describing diagnostic
// strings as positionless SourceErrors, so the CLI can render analyzer
// output through the same formatter used for lex/parse/runtime errors.
func FromDiagnostics(messages []string, source, file string) []*SourceError {
	out := make([]*SourceError, 0, len(messages))
	for _, m := range messages {
		out = append(out, &SourceError{Message: m, Source: source, File: file})
	}
	return out
}
