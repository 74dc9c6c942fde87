package main

import (
	_ "embed"
	"strings"

	"github.com/gitvitae/gitvitae/cmd"
)

//go:embed VERSION
var version string

func main() {
	cmd.SetVersion(strings.TrimSpace(version))
	cmd.Execute()
}
