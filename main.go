// Command viberextractor extracts messages from a Viber desktop
// message-log database and prints them as a readable chat log.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/gsakkis/ViberExtractor/internal/cli"
)

func main() {
	// Best effort: defaults may come from a .env next to the binary.
	_ = godotenv.Load()

	os.Exit(cli.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
