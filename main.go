package main

import (
	"os"

	"github.com/mvchuu/planetary-rover/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
