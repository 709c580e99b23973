package main

import (
	"os"

	"github.com/rustyeddy/expenses/cmd/expenses/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
