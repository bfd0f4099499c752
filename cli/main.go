// Package main is the entry point for the quarry CLI.
package main

import (
	"fmt"
	"os"

	"github.com/quarrydb/quarry/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
