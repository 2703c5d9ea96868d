package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/rolenav/pkg/snapshot"
)

// Generator defaults.
const (
	genDefaultNodes       = 10_000
	genDefaultMaxChildren = 8
)

// ErrNoOutputPath is returned when the --output flag is not set.
var ErrNoOutputPath = errors.New("output path is required (use --output)")

// NewGenCommand creates the gen subcommand.
func NewGenCommand() *cobra.Command {
	var (
		seed        uint64
		nodes       int
		maxChildren int
		output      string
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a random snapshot",
		Long: `Generate a deterministic pseudo-random snapshot. The same seed
always yields the same tree. A .lz4 output suffix enables compression.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if output == "" {
				return ErrNoOutputPath
			}

			root := snapshot.Generate(seed, nodes, maxChildren)

			writeErr := snapshot.EncodeFile(output, root)
			if writeErr != nil {
				return fmt.Errorf("write snapshot: %w", writeErr)
			}

			fmt.Fprintf(os.Stdout, "wrote %s nodes to %s (seed %d)\n", humanize.Comma(int64(root.Len())), output, seed)

			return nil
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 1, "generator seed")
	cmd.Flags().IntVarP(&nodes, "nodes", "n", genDefaultNodes, "node count")
	cmd.Flags().IntVar(&maxChildren, "max-children", genDefaultMaxChildren, "maximum fanout")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .json.lz4)")

	return cmd
}
