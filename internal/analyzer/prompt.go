package analyzer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gitvitae/gitvitae/internal/commit"
	"github.com/gitvitae/gitvitae/internal/display"
	"github.com/gitvitae/gitvitae/internal/report"
)

const (
	maxSubjectLen = 100
	maxBodyLen    = 150
)

const systemPrompt = `You are a career coach who turns raw git commit history into resume-ready
experience descriptions. Respond with a single JSON object with exactly these
fields: "summary" (string), "keyAchievements", "technicalSkills",
"businessImpact", "problemSolving", "leadership" (each an array of short
strings). Do not include any text outside the JSON object.`

// BuildPrompt renders one batch of commits plus the shared project context
// as the user prompt. Subjects and bodies are truncated so a full batch
// stays inside the model's input limit.
func BuildPrompt(batch []commit.Record, projectContext string) string {
	var b strings.Builder

	b.WriteString("Project context:\n")
	b.WriteString(projectContext)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Commits (%d):\n", len(batch))

	for i, r := range batch {
		fmt.Fprintf(&b, "%d. [%s] %s", i+1, r.Date, display.Truncate(r.Subject, maxSubjectLen))
		if body := strings.TrimSpace(r.Body); body != "" {
			fmt.Fprintf(&b, "\n   %s", display.Truncate(body, maxBodyLen))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nAnalyze these commits and produce the experience report JSON.")
	return b.String()
}

// ParseResponse parses the model's text into a partial report. Code fences
// around the JSON are tolerated; anything else that fails to unmarshal is an
// error, which aborts the whole run.
func ParseResponse(text string) (report.Analysis, error) {
	cleaned := stripFences(text)
	if cleaned == "" {
		return report.Analysis{}, errors.New("empty model response")
	}
	var partial report.Analysis
	if err := json.Unmarshal([]byte(cleaned), &partial); err != nil {
		return report.Analysis{}, fmt.Errorf("parse model response: %w", err)
	}
	return partial, nil
}

// stripFences removes a surrounding markdown code fence, if present.
func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		// Drop the language tag line (e.g. "json").
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
