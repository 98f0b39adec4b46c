package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/genforge-labs/genforge/internal/cli"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	// A .env in the working directory feeds the GENFORGE_* overrides.
	_ = godotenv.Load()

	if err := cli.Execute(version, commit, date); err != nil {
		os.Exit(1)
	}
}
