package main

import (
	"os"

	"github.com/dieledev/showcase/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
