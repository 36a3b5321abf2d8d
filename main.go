package main

import (
	"os"

	"github.com/whiterosearts/petalsite/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
