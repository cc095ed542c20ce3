package main

import (
	"os"

	"github.com/msto63/gdsh/cmd/gdsh/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
