package main

import (
	"os"

	"github.com/MimeLyc/deepl-cli/internal/cli"
)

// Version information (set via -ldflags during build)
var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
