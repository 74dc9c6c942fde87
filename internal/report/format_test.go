package report

import (
	"strings"
	"testing"
)

func TestFormatText(t *testing.T) {
	a := Analysis{
		Summary:         "Delivered the upload pipeline.",
		KeyAchievements: []string{"shipped resumable uploads", "cut p99 latency by 40%"},
		TechnicalSkills: []string{"Go", "PostgreSQL"},
	}

	got := FormatText(a)
	for _, want := range []string{
		"Summary",
		"Delivered the upload pipeline.",
		"Key Achievements",
		"  - shipped resumable uploads",
		"  - cut p99 latency by 40%",
		"Technical Skills",
		"  - Go",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatText missing %q:\n%s", want, got)
		}
	}

	if strings.Contains(got, "Business Impact") {
		t.Errorf("empty section rendered:\n%s", got)
	}
}

func TestFormatTextEmptyReport(t *testing.T) {
	if got := FormatText(Analysis{}); got != "" {
		t.Errorf("FormatText(empty) = %q, want empty string", got)
	}
}
