// Package main provides the testbridge CLI.
package main

import (
	"os"

	"github.com/bridgeworks-labs/testbridge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
