package report

import (
	"fmt"
	"strings"
)

// sections pairs each list field with its display heading, in render order.
var sections = []struct {
	title string
	field func(Analysis) []string
}{
	{"Key Achievements", func(a Analysis) []string { return a.KeyAchievements }},
	{"Technical Skills", func(a Analysis) []string { return a.TechnicalSkills }},
	{"Business Impact", func(a Analysis) []string { return a.BusinessImpact }},
	{"Problem Solving", func(a Analysis) []string { return a.ProblemSolving }},
	{"Leadership", func(a Analysis) []string { return a.Leadership }},
}

// FormatText renders the report as plain text, one section per list field.
// Empty sections are skipped.
func FormatText(a Analysis) string {
	var b strings.Builder

	if a.Summary != "" {
		b.WriteString("Summary\n\n")
		b.WriteString(a.Summary)
		b.WriteString("\n")
	}

	for _, sec := range sections {
		entries := sec.field(a)
		if len(entries) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n\n", sec.title)
		for _, entry := range entries {
			fmt.Fprintf(&b, "  - %s\n", entry)
		}
	}

	return b.String()
}
