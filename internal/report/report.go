// Package report defines the experience report shape and the merge step that
// combines per-batch partial reports into the final result.
package report

import "strings"

// Analysis is the structured experience report. The same shape is used for
// per-batch partials and for the merged final report.
type Analysis struct {
	Summary         string   `json:"summary"`
	KeyAchievements []string `json:"keyAchievements"`
	TechnicalSkills []string `json:"technicalSkills"`
	BusinessImpact  []string `json:"businessImpact"`
	ProblemSolving  []string `json:"problemSolving"`
	Leadership      []string `json:"leadership"`
}

// maxListEntries caps each list field of the merged report.
const maxListEntries = 5

// Merge combines partial reports in batch order: summaries are joined with a
// single space, list fields are concatenated, deduplicated preserving
// first-seen order, and truncated. An empty input yields a valid empty
// report with non-nil lists.
func Merge(partials []Analysis) Analysis {
	var summaries []string
	for _, p := range partials {
		if s := strings.TrimSpace(p.Summary); s != "" {
			summaries = append(summaries, s)
		}
	}

	return Analysis{
		Summary:         strings.Join(summaries, " "),
		KeyAchievements: mergeLists(partials, func(a Analysis) []string { return a.KeyAchievements }),
		TechnicalSkills: mergeLists(partials, func(a Analysis) []string { return a.TechnicalSkills }),
		BusinessImpact:  mergeLists(partials, func(a Analysis) []string { return a.BusinessImpact }),
		ProblemSolving:  mergeLists(partials, func(a Analysis) []string { return a.ProblemSolving }),
		Leadership:      mergeLists(partials, func(a Analysis) []string { return a.Leadership }),
	}
}

// mergeLists concatenates one list field across partials, keeping the first
// occurrence of each entry, then truncates to maxListEntries.
func mergeLists(partials []Analysis, field func(Analysis) []string) []string {
	merged := []string{}
	seen := make(map[string]struct{})
	for _, p := range partials {
		for _, entry := range field(p) {
			if _, ok := seen[entry]; ok {
				continue
			}
			seen[entry] = struct{}{}
			merged = append(merged, entry)
		}
	}
	if len(merged) > maxListEntries {
		merged = merged[:maxListEntries]
	}
	return merged
}
