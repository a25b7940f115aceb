// Package main is the entry point for the stockctl operator CLI.
package main

import (
	"os"

	"github.com/mamadbah2/stockbot/cmd/stockctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
