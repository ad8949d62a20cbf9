package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mveety/chunkstore"
)

func newPutCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "put <slot> <path>",
		Short: "Chunkify a file's contents into slot and commit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")

			slot, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid slot %q: %w", args[0], err)
			}
			payload, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[1], err)
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

			c, err := s.Chunkify(slot, payload)
			if err != nil {
				s.DestroyUnsafe()
				return err
			}
			if err := c.Commit(); err != nil {
				s.DestroyUnsafe()
				return err
			}
			if err := s.Commit(); err != nil {
				s.DestroyUnsafe()
				return err
			}
			c.Destroy()
			return s.Destroy()
		},
	}
}
