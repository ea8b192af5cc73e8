package diag

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Render writes one line per diagnostic to w, in the conventional
// "severity[code]: line:col: message" shape. When colorize is true,
// the severity is colorized the way the teacher's CLI colorizes its
// version banner.
func Render(w io.Writer, path string, items []Diagnostic, colorize bool) {
	errColor := color.New(color.FgRed, color.Bold)
	warnColor := color.New(color.FgYellow, color.Bold)
	noteColor := color.New(color.FgCyan)

	for _, d := range items {
		sev := d.Severity.String()
		if colorize {
			switch d.Severity {
			case SevError:
				sev = errColor.Sprint(sev)
			case SevWarning:
				sev = warnColor.Sprint(sev)
			default:
				sev = noteColor.Sprint(sev)
			}
		}
		fmt.Fprintf(w, "%s: %s[%s]: %d:%d: %s\n", path, sev, d.Code, d.Pos.Line, d.Pos.Column, d.Message)
	}
}

// RenderErr renders a runtime failure the same way Render renders a bag:
// if err carries a Diagnostic (the evaluator and VM always return one),
// its Severity/Code/Pos drive the rendering; otherwise err's plain message
// is printed as a fallback for failures that never passed through this
// package (e.g. an I/O error from an Importer).
func RenderErr(w io.Writer, path string, err error, colorize bool) {
	var d Diagnostic
	if errors.As(err, &d) {
		Render(w, path, []Diagnostic{d}, colorize)
		return
	}
	fmt.Fprintf(w, "%s: %v\n", path, err)
}
