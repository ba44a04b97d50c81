// Package main is the entry point for the mfbldr CLI.
package main

import (
	"os"

	"github.com/0x1723/mfbldr/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
