package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mveety/chunkstore"
)

func newGetCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "get <slot>",
		Short: "Print a slot's committed payload to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")

			slot, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid slot %q: %w", args[0], err)
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
			defer s.DestroyUnsafe()

			buf, err := s.AllocateChunkBuffer(slot)
			if err != nil {
				return err
			}
			c, err := s.OpenChunk(slot, buf)
			if err != nil {
				return err
			}
			defer c.Destroy()

			_, err = cmd.OutOrStdout().Write(c.Buffer())
			return err
		},
	}
}
