package main

import (
	"os"

	"github.com/forkline-dev/forkline/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
