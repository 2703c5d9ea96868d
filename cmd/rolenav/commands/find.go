package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/rolenav/pkg/atree"
	"github.com/Sumatoshi-tech/rolenav/pkg/role"
)

// exitCodeNotFound is the exit code when no node carries the requested role.
const exitCodeNotFound = 2

// NewFindCommand creates the find subcommand.
func NewFindCommand() *cobra.Command {
	var flags engineFlags

	var roleName, method string

	cmd := &cobra.Command{
		Use:   "find <snapshot.json[.lz4]>",
		Short: "Locate the first node with a role in reading order",
		Long: `Find the first node carrying a role. Reading order is pre-order:
a node precedes its descendants, earlier siblings precede later ones.

Methods:
  seq          linear arena scan (default)
  roleset      subtree-bitset pruned descent
  stack        explicit-stack pruned descent
  par          parallel arena scan
  par-roleset  parallel pruned descent

All methods return the same node.`,
		Args: cobra.ExactArgs(snapshotArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			return runFind(&flags, args[0], roleName, method)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&roleName, "role", "r", "", "role to find (required)")
	cmd.Flags().StringVarP(&method, "method", "m", methodSeq, "traversal method")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func runFind(flags *engineFlags, path, roleName, method string) error {
	cfg, err := flags.resolve()
	if err != nil {
		return err
	}

	target, err := role.FromName(roleName)
	if err != nil {
		return err
	}

	tree, err := buildTree(cfg, path)
	if err != nil {
		return err
	}

	var (
		id    atree.NodeID
		found bool
	)

	switch method {
	case methodSeq:
		id, found = tree.FindFirst(target)
	case methodRoleset:
		id, found = tree.FindFirstRoleset(target)
	case methodStack:
		id, found = tree.FindFirstStack(target)
	case methodPar:
		id, found = tree.Parallel(cfg.Engine.Workers, cfg.Engine.ForkThreshold).FindFirst(target)
	case methodParRoleset:
		id, found = tree.Parallel(cfg.Engine.Workers, cfg.Engine.ForkThreshold).FindFirstRoleset(target)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}

	if !found {
		color.New(color.FgYellow).Fprintf(os.Stdout, "no %s in %s\n", roleName, path)
		os.Exit(exitCodeNotFound)
	}

	color.New(color.FgGreen).Fprintf(os.Stdout, "%s at node %d\n", roleName, id)

	return nil
}
