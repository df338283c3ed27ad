package main

import (
	"os"

	"github.com/hadeslang/hades/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
