package commit

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseLogKeepsValidRecord(t *testing.T) {
	raw := "a1b2c3\t2023-06-01\tJane Doe\tjane@x.com\tAdd retry logic to uploader\tHandles transient 5xx errors"
	records := ParseLog(raw)
	if len(records) != 1 {
		t.Fatalf("ParseLog returned %d records, want 1", len(records))
	}
	want := Record{
		Hash:        "a1b2c3",
		Date:        "2023-06-01",
		AuthorName:  "Jane Doe",
		AuthorEmail: "jane@x.com",
		Subject:     "Add retry logic to uploader",
		Body:        "Handles transient 5xx errors",
	}
	if records[0] != want {
		t.Errorf("ParseLog = %+v, want %+v", records[0], want)
	}
}

func TestParseLogDrops(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"blank line", "   "},
		{"missing hash", "\t2023-06-01\tJane\tjane@x.com\tFix the thing"},
		{"missing date", "a1b2c3\t\tJane\tjane@x.com\tFix the thing"},
		{"missing author name", "a1b2c3\t2023-06-01\t\tjane@x.com\tFix the thing"},
		{"missing author email", "a1b2c3\t2023-06-01\tJane\t\tFix the thing"},
		{"whitespace email", "a1b2c3\t2023-06-01\tJane\t   \tFix the thing"},
		{"missing subject", "a1b2c3\t2023-06-01\tJane\tjane@x.com\t"},
		{"short subject", "a1b2c3\t2023-06-01\tJane\tjane@x.com\tok"},
		{"bare asterisk", "a1b2c3\t2023-06-01\tJane\tjane@x.com\t*"},
		{"bare fix prefix", "a1b2c3\t2023-06-01\tJane Doe\tjane@x.com\tfix: \t"},
		{"bare chore prefix", "a1b2c3\t2023-06-01\tJane\tjane@x.com\tchore:"},
		{"too few fields", "a1b2c3\t2023-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLog(tt.line); len(got) != 0 {
				t.Errorf("ParseLog(%q) kept %d records, want 0", tt.line, len(got))
			}
		})
	}
}

func TestParseLogBodyRejoinsTabs(t *testing.T) {
	raw := "a1b2c3\t2023-06-01\tJane\tjane@x.com\tAdd config loader\tsupports\tnested\tkeys"
	records := ParseLog(raw)
	if len(records) != 1 {
		t.Fatalf("ParseLog returned %d records, want 1", len(records))
	}
	if want := "supports\tnested\tkeys"; records[0].Body != want {
		t.Errorf("Body = %q, want %q", records[0].Body, want)
	}
}

func TestParseLogPreservesOrder(t *testing.T) {
	raw := strings.Join([]string{
		"c3\t2023-06-03\tJane\tjane@x.com\tThird change here",
		"",
		"c2\t2023-06-02\tJane\tjane@x.com\tSecond change here",
		"c1\t2023-06-01\tJane\tjane@x.com\tFirst change here",
	}, "\n")
	records := ParseLog(raw)
	var hashes []string
	for _, r := range records {
		hashes = append(hashes, r.Hash)
	}
	if want := []string{"c3", "c2", "c1"}; !reflect.DeepEqual(hashes, want) {
		t.Errorf("hashes = %v, want %v", hashes, want)
	}
}

func TestParseLogIdempotent(t *testing.T) {
	raw := strings.Join([]string{
		"c1\t2023-06-01\tJane\tjane@x.com\tAdd retry logic\tbody text",
		"bad\t\t\t\t",
		"c2\t2023-06-02\tJoe\tjoe@x.com\tRemove dead code",
	}, "\n")
	first := ParseLog(raw)

	// Re-serialize the filtered records and filter again.
	var lines []string
	for _, r := range first {
		lines = append(lines, strings.Join([]string{r.Hash, r.Date, r.AuthorName, r.AuthorEmail, r.Subject, r.Body}, "\t"))
	}
	second := ParseLog(strings.Join(lines, "\n"))

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass = %+v, want %+v", second, first)
	}
}

func TestMeaningless(t *testing.T) {
	tests := []struct {
		subject string
		want    bool
	}{
		{"", true},
		{"   ", true},
		{"*", true},
		{" * ", true},
		{"feat:", true},
		{"FIX:  ", true},
		{"refactor:", true},
		{"fix: handle empty input", false},
		{"Add retry logic", false},
		{"docs: update readme", false},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			if got := Meaningless(tt.subject); got != tt.want {
				t.Errorf("Meaningless(%q) = %v, want %v", tt.subject, got, tt.want)
			}
		})
	}
}
