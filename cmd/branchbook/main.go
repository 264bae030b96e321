package main

import (
	"os"

	"github.com/branchbook-dev/branchbook/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
