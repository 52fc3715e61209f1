package main

import (
	"os"

	"github.com/tanklogix/loadplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
