// Package git shells out to the git executable for repository checks and
// the filtered history export.
package git

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/gitvitae/gitvitae/internal/commit"
)

// DefaultSince is the default inclusive lower date bound for log queries.
const DefaultSince = "2023-05-01"

// ErrInvalidRepo marks validation failures: the path does not exist or is
// not inside a git work tree. Callers map it to a 400 over HTTP.
var ErrInvalidRepo = errors.New("not a git repository")

// logFormat produces one tab-delimited record per commit:
// hash, date, author name, author email, subject, body.
const logFormat = "%H%x09%ad%x09%an%x09%ae%x09%s%x09%b"

// LogQuery describes a filtered history export.
type LogQuery struct {
	RepoPath string // repository root; "." when empty
	Author   string // author substring filter; empty matches all
	Since    string // inclusive lower date bound; empty means no bound
}

// IsInsideWorkTree checks if path is inside a git repository.
func IsInsideWorkTree(path string) bool {
	cmd := exec.Command("git", "-C", path, "rev-parse", "--is-inside-work-tree")
	out, err := cmd.Output()
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(out)) == "true"
}

// Log runs the filtered log export and returns the surviving commit records,
// most recent first. Path problems return ErrInvalidRepo; a failing git
// invocation is wrapped as an execution error.
func Log(q LogQuery) ([]commit.Record, error) {
	repoPath := q.RepoPath
	if repoPath == "" {
		repoPath = "."
	}
	if _, err := os.Stat(repoPath); err != nil {
		return nil, fmt.Errorf("%s: %w", repoPath, ErrInvalidRepo)
	}
	if !IsInsideWorkTree(repoPath) {
		return nil, fmt.Errorf("%s: %w", repoPath, ErrInvalidRepo)
	}

	args := []string{"-C", repoPath, "log", "--date=short", "--pretty=format:" + logFormat}
	if q.Author != "" {
		args = append(args, "--author="+q.Author)
	}
	if q.Since != "" {
		args = append(args, "--since="+q.Since)
	}

	cmd := exec.Command("git", args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log: %w", err)
	}
	return commit.ParseLog(string(out)), nil
}
