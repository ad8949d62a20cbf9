package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mveety/chunkstore"
)

func newCreateCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <slots>",
		Short: "Create a new store file with the given number of chunk slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")
			label, _ := cmd.Flags().GetString("label")

			n, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid slot count %q: %w", args[0], err)
			}

			f, err := openFile(path, true)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			defer f.Close()

			s, err := chunkstore.Create(f, n, chunkstore.Options{Logger: logger, Label: label})
			if err != nil {
				return err
			}
			defer s.Destroy()

			fmt.Fprintf(cmd.OutOrStdout(), "created %s with %d slots\n", path, n)
			return nil
		},
	}
	cmd.Flags().String("label", "", "human-readable label stored in the aux metadata")
	return cmd
}
