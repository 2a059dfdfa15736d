package main

import (
	"os"

	"github.com/tunerelay/tunerelay/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
