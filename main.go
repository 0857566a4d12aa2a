package main

import (
	"os"

	"github.com/abhisek/lsatarcade/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
