// cmd/benchcsv/main.go
package main

import (
	cmd "github.com/mwiater/benchcsv/internal/commands"
)

// Set by -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main starts the benchcsv CLI application by delegating to the
// cobra root command defined in the commands package.
func main() {
	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
