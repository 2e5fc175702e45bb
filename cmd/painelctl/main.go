package main

import (
	"os"

	"github.com/painel-dev/painelctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
