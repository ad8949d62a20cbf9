// Command chunkstore is a thin inspection and scripting CLI over the
// chunkstore library. It never reaches past the public chunkstore API: no
// feature here is implemented twice.
package main

import (
	"log/slog"
	"os"

	"github.com/mveety/chunkstore/cmd/chunkstore/cli"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if err := cli.NewRootCommand(logger).Execute(); err != nil {
		os.Exit(1)
	}
}
