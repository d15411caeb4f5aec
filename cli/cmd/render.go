package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/halmstraw/finance-app-dsl/lang"
)

var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleRule    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleRef     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleSuggest = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleSnippet = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderDiagnostics writes one block per diagnostic, with a source excerpt
// for positioned findings, followed by a severity tally.
func renderDiagnostics(w io.Writer, src string, diags []lang.Diagnostic) {
	errors, warnings := 0, 0

	for _, d := range diags {
		if d.Severity == lang.SeverityError {
			errors++
		} else {
			warnings++
		}

		fmt.Fprintln(w, renderDiagnostic(src, d))
	}

	if len(diags) > 0 {
		fmt.Fprintln(w)
	}

	switch {
	case errors > 0:
		fmt.Fprintf(w, "%s: %d error(s), %d warning(s)\n",
			styleError.Render("FAIL"), errors, warnings)
	case warnings > 0:
		fmt.Fprintf(w, "%s: %d warning(s)\n", styleWarning.Render("OK"), warnings)
	default:
		fmt.Fprintf(w, "%s: no problems found\n", styleSuggest.Render("OK"))
	}
}

func renderDiagnostic(src string, d lang.Diagnostic) string {
	var b strings.Builder

	severity := styleWarning
	if d.Severity == lang.SeverityError {
		severity = styleError
	}

	b.WriteString(severity.Render(d.Severity.String()))
	b.WriteString(styleRule.Render("[" + d.Rule + "]"))

	if d.Ref != "" {
		b.WriteString(" " + styleRef.Render(d.Ref))
	}

	if d.Pos.Line > 0 {
		fmt.Fprintf(&b, " %d:%d", d.Pos.Line, d.Pos.Column)
	}

	b.WriteString(": " + d.Message)

	if len(d.Suggest) > 0 {
		b.WriteString("\n  " + styleSuggest.Render(
			"did you mean: "+strings.Join(d.Suggest, ", ")))
	}

	if snippet := lang.Snippet(src, d.Pos); snippet != "" {
		b.WriteString("\n" + styleSnippet.Render(indent(snippet, "  ")))
	}

	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")

	for i, line := range lines {
		lines[i] = prefix + line
	}

	return strings.Join(lines, "\n")
}
