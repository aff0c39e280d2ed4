package main

import (
	"os"

	"github.com/financellm/financellm/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
