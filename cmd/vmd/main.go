// Package main is the entry point for the vmd CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/vaultmend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
