package main

import (
	"os"

	"github.com/abhisek/masterly/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
