package main

import (
	"os"

	"github.com/teenfaith/teenfaith/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
