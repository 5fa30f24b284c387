// Package diag renders human-facing diagnostics at the CLI edge.
// Every package-internal signal is a returned *merr.Report, never a log
// line (§ AMBIENT STACK, Logging); this package is the one place those
// reports become colorized terminal text, grounded on the teacher's
// internal/repl "color functions for pretty output" convention
// (github.com/fatih/color SprintFunc palette) rather than a structured
// logging framework.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/jaeandersson/modc/internal/merr"
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

// ReportError writes err to out, colorized. A *merr.Report is rendered with
// its code, message and component path; any other error is printed plain.
func ReportError(out io.Writer, err error) {
	if rep, ok := merr.AsReport(err); ok {
		fmt.Fprintf(out, "%s %s: %s", red("error"), bold(rep.Code), rep.Message)
		if rep.Component != "" {
			fmt.Fprintf(out, " (%s)", cyan(rep.Component))
		}
		fmt.Fprintf(out, "\n")
		return
	}
	fmt.Fprintf(out, "%s %v\n", red("error"), err)
}

// OK prints a green success line, e.g. after a generate/flatten completes.
func OK(out io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(out, "%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

// Info prints a cyan progress line.
func Info(out io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(out, "%s %s\n", cyan("→"), fmt.Sprintf(format, args...))
}

// Warn prints a yellow warning line.
func Warn(out io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(out, "%s %s\n", yellow("warning"), fmt.Sprintf(format, args...))
}

// Bold is exposed for single-line emphasis (versions, class paths) in
// contexts that don't warrant a full Info/OK/Warn line.
func Bold(s string) string { return bold(s) }
