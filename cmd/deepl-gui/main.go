package main

import (
	"log"

	"github.com/MimeLyc/deepl-cli/internal/gui"
)

// Version information (set via -ldflags during build)
var version = "dev"

func main() {
	if err := gui.Run(version); err != nil {
		log.Fatal("Failed to start GUI:", err)
	}
}
