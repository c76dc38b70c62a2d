package main

import (
	"os"

	"bakkey/cmd/bakkey/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
