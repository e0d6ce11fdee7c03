package main

import (
	"os"

	"github.com/byterings/gus/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
