// Package commit defines the commit record type and the filtering rules
// applied to raw git log exports before analysis.
package commit

import "strings"

// Record is a single commit parsed from the tab-delimited log export.
type Record struct {
	Hash        string `json:"hash"`
	Date        string `json:"date"`
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
}

// minSubjectLen is the minimum trimmed subject length for a commit to be
// worth analyzing.
const minSubjectLen = 3

// bareSubjects are lower-cased subjects that carry no information on their
// own: a lone asterisk or a conventional-commit prefix with nothing after it.
var bareSubjects = []string{
	"*",
	"feat:",
	"fix:",
	"chore:",
	"docs:",
	"style:",
	"refactor:",
	"test:",
}

// ParseLog parses raw tab-delimited log output into commit records, dropping
// blank lines, structurally broken records, and meaningless commits. Input
// order is preserved; malformed records are skipped, never an error.
func ParseLog(raw string) []Record {
	var records []Record
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec := parseLine(line)
		if !keep(rec) {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// parseLine splits one record into its six positional fields. The body is
// everything past the fifth tab, rejoined, since commit bodies may contain
// tabs themselves.
func parseLine(line string) Record {
	fields := strings.Split(line, "\t")
	field := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}
	rec := Record{
		Hash:        field(0),
		Date:        field(1),
		AuthorName:  field(2),
		AuthorEmail: field(3),
		Subject:     field(4),
	}
	if len(fields) > 5 {
		rec.Body = strings.Join(fields[5:], "\t")
	}
	return rec
}

// keep reports whether a parsed record survives filtering.
func keep(r Record) bool {
	if r.Hash == "" || r.Date == "" || r.AuthorName == "" || r.Subject == "" {
		return false
	}
	if len(strings.TrimSpace(r.Subject)) < minSubjectLen {
		return false
	}
	if strings.TrimSpace(r.AuthorName) == "" || strings.TrimSpace(r.AuthorEmail) == "" {
		return false
	}
	return !Meaningless(r.Subject)
}

// Meaningless reports whether a subject carries no analyzable content.
func Meaningless(subject string) bool {
	s := strings.ToLower(strings.TrimSpace(subject))
	if s == "" {
		return true
	}
	for _, bare := range bareSubjects {
		if s == bare {
			return true
		}
	}
	return false
}
