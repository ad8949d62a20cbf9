package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mveety/chunkstore"
)

func newResizeCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "resize <n>",
		Short: "Grow the store to n chunk slots and commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")

			n, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid slot count %q: %w", args[0], err)
			}

			f, err := openFile(path, false)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()

			s, err := chunkstore.Open(f, chunkstore.Options{Logger: logger})
			if err != nil {
				return err
			}

			if err := s.Resize(n); err != nil {
				s.DestroyUnsafe()
				return err
			}
			if err := s.Commit(); err != nil {
				s.DestroyUnsafe()
				return err
			}
			return s.Destroy()
		},
	}
}
