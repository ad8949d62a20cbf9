package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mveety/chunkstore"
)

func newStatCmd(logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "stat",
		Short: "Print the store's identity, label and slot count",
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

			label, err := s.Label()
			if err != nil {
				return err
			}
			id, err := s.StoreID()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "store_id:  %s\n", id)
			fmt.Fprintf(out, "label:     %s\n", label)
			fmt.Fprintf(out, "slots:     %d\n", s.SlotCount())
			return nil
		},
	}
}
