package main

import (
	"os"

	"shodan-inspector/cmd/inspector/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
