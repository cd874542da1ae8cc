package main

import (
	"os"

	"github.com/msto63/radscene/cmd/radscene/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
