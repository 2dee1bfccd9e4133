package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"lmtk/internal/types"
)

// FormatDiagnostics prints one line per diagnostic, ERRORs in red and
// WARNINGs in yellow, followed by a count line.  Nothing is printed for an
// empty list.
func FormatDiagnostics(w io.Writer, source string, diagnostics []types.Diagnostic, noColor bool) {
	if len(diagnostics) == 0 {
		return
	}
	errorsSeen, warnings := 0, 0
	for _, diagnostic := range diagnostics {
		label := paint(noColor, color.FgYellow, color.Bold)
		if diagnostic.Severity == types.SeverityError {
			label = paint(noColor, color.FgRed, color.Bold)
			errorsSeen++
		} else {
			warnings++
		}
		label.Fprintf(w, "%-7s ", diagnostic.Severity)
		if diagnostic.Path != "" {
			paint(noColor, color.FgHiBlack).Fprintf(w, "%s: ", diagnostic.Path)
		}
		fmt.Fprintln(w, diagnostic.Message)
	}
	fmt.Fprintf(w, "%s: %d error(s), %d warning(s)\n", source, errorsSeen, warnings)
}
