package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/rolenav/pkg/snapshot"
)

// NewTreeCommand creates the tree subcommand.
func NewTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <snapshot.json[.lz4]>",
		Short: "Pretty-print a snapshot",
		Args:  cobra.ExactArgs(snapshotArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			root, err := snapshot.DecodeFile(args[0])
			if err != nil {
				return fmt.Errorf("load snapshot: %w", err)
			}

			return snapshot.Render(os.Stdout, root)
		},
	}
}
