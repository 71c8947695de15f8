package main

import (
	"fmt"
	"os"

	"github.com/ppiankov/floodspectre/internal/commands"
	"github.com/ppiankov/floodspectre/internal/logging"
)

// Set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	logging.Init(false)
	if err := commands.Execute(version, commit, date); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
