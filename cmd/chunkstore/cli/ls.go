package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mveety/chunkstore"
)

func newLsCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List every slot's committed payload length",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")

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

			out := cmd.OutOrStdout()
			for slot := uint64(0); slot < s.SlotCount(); slot++ {
				size, err := s.ChunkSize(slot)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d\t%d\n", slot, size)
			}
			return nil
		},
	}
}
