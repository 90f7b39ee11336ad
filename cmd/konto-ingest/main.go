package main

import (
	"os"

	"github.com/kontolab/konto-ingest/internal/adapters/driving/cli"
)

func main() {
	os.Exit(cli.Execute())
}
