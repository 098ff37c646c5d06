// Package main is the entry point for the keyfold CLI.
package main

import (
	"os"

	"github.com/keyfold/keyfold/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
