package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/coal-lang/coal/internal/diag"
)

// lastSource is the most recently read source file, retained only for
// caret-line rendering. The compiler core never touches it.
var lastSource string

var (
	severityColor = map[diag.Severity]*color.Color{
		diag.SeverityError:   color.New(color.FgRed, color.Bold),
		diag.SeverityWarning: color.New(color.FgYellow, color.Bold),
		diag.SeverityNote:    color.New(color.FgCyan),
	}
	codeColor   = color.New(color.FgHiBlack)
	captionColor = color.New(color.FgWhite, color.Bold)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

// renderDiagnostic turns a structured diagnostic into the human-readable
// form: `file:line:col: severity[code]: formattedMessage\n<sourceLine>\n
// <caret>`, colorized the way akashmaji946-go-mix/repl/repl.go colorizes
// its own output.
func renderDiagnostic(w io.Writer, d *diag.Diagnostic) {
	sev := severityColor[d.Severity]
	if sev == nil {
		sev = color.New(color.FgRed)
	}

	fmt.Fprintf(w, "%s:%d:%d: ", d.File, d.Span.Line, d.Span.Column)
	sev.Fprint(w, string(d.Severity))
	codeColor.Fprintf(w, "[%s]", d.Code)
	captionColor.Fprintf(w, ": %s\n", d.Message)

	if line, ok := sourceLine(lastSource, d.Span.Line); ok {
		fmt.Fprintln(w, line)
		caretColor.Fprintln(w, caretLine(line, d.Span))
	}
	for _, note := range d.Notes {
		fmt.Fprintf(w, "  note: %s\n", note)
	}
}

// sourceLine returns the 1-indexed line of src, or false if out of range.
func sourceLine(src string, lineNo int) (string, bool) {
	if lineNo <= 0 {
		return "", false
	}
	lines := strings.Split(src, "\n")
	if lineNo > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[lineNo-1], "\r"), true
}

// caretLine renders a run of `^` under the span's column, one per byte of
// the span that falls on this line.
func caretLine(line string, span diag.Span) string {
	width := span.End - span.Start
	if width < 1 {
		width = 1
	}
	col := span.Column - 1
	if col < 0 {
		col = 0
	}
	if col > len(line) {
		col = len(line)
	}
	if rest := len(line) - col; rest > 0 && width > rest {
		width = rest
	}
	return strings.Repeat(" ", col) + strings.Repeat("^", width)
}
