package main

import (
	"os"

	"github.com/hooksentry/hooksentry/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
