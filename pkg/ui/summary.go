package ui

import (
	"fmt"
	"strings"

	"github.com/strapkit/strap/pkg/state"
	"github.com/strapkit/strap/pkg/steps"
	"github.com/strapkit/strap/pkg/ui/styles"
)

// RenderReceipt renders a past run for the status command. Styled
// output uses the lipgloss registry; plain output carries the same
// information without escape codes.
func RenderReceipt(r *state.Receipt, format Format) string {
	var b strings.Builder

	header := fmt.Sprintf("last run %s", r.StartedAt.Format("2006-01-02 15:04:05"))
	if r.DryRun {
		header += " (dry run)"
	}
	if format == FormatTerminal {
		if r.Success {
			header = styles.GetStyle("Success").Render(header)
		} else {
			header = styles.GetStyle("Error").Render(header)
		}
	}
	b.WriteString(header + "\n")

	for _, s := range r.Steps {
		line := fmt.Sprintf("%-10s %-10s %6.2fs", s.Name, s.Status, s.Duration)
		if s.Detail != "" {
			line += "  " + s.Detail
		}
		if format == FormatTerminal {
			switch steps.Status(s.Status) {
			case steps.StatusFailed:
				line = styles.GetStyle("Error").Render(line)
			case steps.StatusSkipped:
				line = styles.GetStyle("Muted").Render(line)
			}
		}
		b.WriteString("  " + line + "\n")
	}

	if !r.Success {
		footer := "run halted on first failure; fix the step above and re-run"
		if format == FormatTerminal {
			footer = styles.GetStyle("Warning").Render(footer)
		}
		b.WriteString(footer + "\n")
	}

	return b.String()
}
