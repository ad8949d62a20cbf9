// Package cli implements the chunkstore command-line tool: a thin
// exerciser for the chunkstore library, not a second implementation of it.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand returns the "chunkstore" command with all subcommands
// wired in. logger is passed down to every subcommand as a constructor
// argument rather than a package global.
func NewRootCommand(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chunkstore",
		Short: "Inspect and manipulate chunkstore files",
	}

	cmd.PersistentFlags().StringP("file", "f", "", "path to the store file (required)")
	_ = cmd.MarkPersistentFlagRequired("file")

	cmd.AddCommand(
		newCreateCmd(logger),
		newStatCmd(logger),
		newLsCmd(logger),
		newGetCmd(logger),
		newPutCmd(logger),
		newResizeCmd(logger),
	)

	return cmd
}

// openFile opens path for reading and writing, creating it only when
// create is true (used by the create subcommand).
func openFile(path string, create bool) (*os.File, error) {
	flags := os.O_RDWR
	if create {
		flags |= os.O_CREATE | os.O_EXCL
	}
	return os.OpenFile(path, flags, 0o644)
}
