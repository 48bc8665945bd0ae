package main

import (
	"os"

	"github.com/pondmetrics/capcast/cmd/capcast/commands"
)

// main is the entry point for the capcast CLI
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
