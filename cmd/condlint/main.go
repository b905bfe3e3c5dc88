package main

import (
	"os"

	"github.com/cfglab/condlint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
