package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/strapkit/strap/pkg/steps"
)

// statusStyle returns the pterm style for a step status
func statusStyle(status steps.Status) *pterm.Style {
	switch status {
	case steps.StatusApplied:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case steps.StatusFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	case steps.StatusSkipped:
		return pterm.NewStyle(pterm.FgGray)
	default:
		return pterm.NewStyle(pterm.FgCyan)
	}
}

// statusGlyph returns the marker printed before a finished step
func statusGlyph(status steps.Status) string {
	switch status {
	case steps.StatusApplied:
		return "✓"
	case steps.StatusFailed:
		return "✗"
	case steps.StatusSkipped:
		return "-"
	default:
		return "·"
	}
}

// Progress prints one line per step as the runner works through the
// sequence. It satisfies the runner's Reporter interface.
type Progress struct {
	out   io.Writer
	plain bool
}

// NewProgress creates a Progress reporter writing to out. Plain mode
// drops colors and glyphs for pipes and NO_COLOR terminals.
func NewProgress(out io.Writer, format Format) *Progress {
	return &Progress{out: out, plain: format != FormatTerminal}
}

// StepStarted announces a step before it runs
func (p *Progress) StepStarted(name, description string) {
	if p.plain {
		fmt.Fprintf(p.out, "%s: %s\n", name, description)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", pterm.Bold.Sprint(name), pterm.FgGray.Sprint(description))
}

// StepFinished reports a step's outcome
func (p *Progress) StepFinished(name string, result steps.Result, err error) {
	status := result.Status
	detail := result.Detail
	if err != nil {
		status = steps.StatusFailed
		detail = err.Error()
	}

	if p.plain {
		if detail != "" {
			fmt.Fprintf(p.out, "  %s: %s (%s)\n", name, status, detail)
		} else {
			fmt.Fprintf(p.out, "  %s: %s\n", name, status)
		}
		return
	}

	line := fmt.Sprintf("  %s %s",
		statusStyle(status).Sprint(statusGlyph(status)),
		statusStyle(status).Sprint(string(status)))
	if detail != "" {
		line += " " + pterm.FgGray.Sprint(detail)
	}
	fmt.Fprintln(p.out, line)
}
