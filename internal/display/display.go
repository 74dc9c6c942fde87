// Package display provides shared display utilities for terminal output.
package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/gitvitae/gitvitae/internal/commit"
	"github.com/gitvitae/gitvitae/internal/report"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	hashStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// StdoutIsTerminal reports whether stdout is attached to a terminal.
// Styled and interactive output is only used when it is.
func StdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Truncate truncates text to maxLen runes, replacing newlines with spaces.
// If truncated, adds "..." suffix; below 4 runes there is no room for the
// suffix, so the text is simply cut.
func Truncate(s string, maxLen int) string {
	text := strings.ReplaceAll(s, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(runes[:max(maxLen, 0)])
	}
	return string(runes[:maxLen-3]) + "..."
}

// CommitLine renders one commit as a single listing line.
func CommitLine(r commit.Record, styled bool) string {
	short := r.Hash
	if len(short) > 7 {
		short = short[:7]
	}
	if !styled {
		return fmt.Sprintf("%s %s %s (%s)", short, r.Date, Truncate(r.Subject, 80), r.AuthorName)
	}
	return fmt.Sprintf("%s %s %s %s",
		hashStyle.Render(short),
		dimStyle.Render(r.Date),
		Truncate(r.Subject, 80),
		dimStyle.Render("("+r.AuthorName+")"))
}

// RenderReport renders the merged report for the terminal. With styled off
// it falls back to the plain formatter shared with the HTTP API.
func RenderReport(a report.Analysis, styled bool) string {
	if !styled {
		return report.FormatText(a)
	}
	var b strings.Builder
	for _, line := range strings.Split(report.FormatText(a), "\n") {
		switch line {
		case "Summary", "Key Achievements", "Technical Skills", "Business Impact", "Problem Solving", "Leadership":
			b.WriteString(headerStyle.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
