package main

import (
	"os"

	"github.com/msto63/kairos/cmd/kairos/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
