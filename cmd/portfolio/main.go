package main

import (
	"os"

	"github.com/Zachkp/portfolio/cmd/portfolio/commands"
)

// Set at build time with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// errors are already printed by the printer package
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
