// Package projectctx renders a short description of the host project used to
// prime the analysis prompt.
package projectctx

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Fallback is returned whenever project metadata cannot be read or parsed.
const Fallback = "context unavailable"

const (
	maxRuntimeDeps = 10
	maxDevDeps     = 5
)

type packageManifest struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Build reads the repository's package manifest and renders it as a text
// block. Any read or parse failure degrades to Fallback; Build never fails.
func Build(repoPath string) string {
	if repoPath == "" {
		repoPath = "."
	}
	data, err := os.ReadFile(filepath.Join(repoPath, "package.json"))
	if err != nil {
		return Fallback
	}
	var pkg packageManifest
	if err := json.Unmarshal(data, &pkg); err != nil {
		return Fallback
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\n", pkg.Name)
	if pkg.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", pkg.Description)
	}
	if deps := sortedNames(pkg.Dependencies, maxRuntimeDeps); len(deps) > 0 {
		fmt.Fprintf(&b, "Dependencies: %s\n", strings.Join(deps, ", "))
	}
	if deps := sortedNames(pkg.DevDependencies, maxDevDeps); len(deps) > 0 {
		fmt.Fprintf(&b, "Dev dependencies: %s\n", strings.Join(deps, ", "))
	}
	return b.String()
}

// sortedNames returns up to limit dependency names in a stable order.
func sortedNames(deps map[string]string, limit int) []string {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > limit {
		names = names[:limit]
	}
	return names
}
