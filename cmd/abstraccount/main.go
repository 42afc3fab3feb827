// Package main is the entry point for the abstraccount CLI.
package main

import (
	"os"

	"github.com/abstratium-dev/abstraccount/cmd/abstraccount/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
