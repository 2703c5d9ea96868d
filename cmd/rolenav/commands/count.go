package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/rolenav/pkg/role"
)

// Traversal method names shared by count and find.
const (
	methodSeq        = "seq"
	methodRoleset    = "roleset"
	methodStack      = "stack"
	methodPar        = "par"
	methodParRoleset = "par-roleset"
)

// ErrUnknownMethod indicates a traversal method name this command does not dispatch.
var ErrUnknownMethod = errors.New("unknown method")

// NewCountCommand creates the count subcommand.
func NewCountCommand() *cobra.Command {
	var flags engineFlags

	var roleName, method string

	cmd := &cobra.Command{
		Use:   "count <snapshot.json[.lz4]>",
		Short: "Count nodes with a role",
		Long: `Count the nodes carrying a role.

Methods:
  seq          flat arena scan (default)
  roleset      subtree-bitset pruned descent
  par          parallel arena scan
  par-roleset  parallel pruned descent`,
		Args: cobra.ExactArgs(snapshotArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCount(&flags, args[0], roleName, method)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&roleName, "role", "r", "", "role to count (required)")
	cmd.Flags().StringVarP(&method, "method", "m", methodSeq, "traversal method")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func runCount(flags *engineFlags, path, roleName, method string) error {
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

	var count int

	switch method {
	case methodSeq:
		count = tree.HowMany(target)
	case methodRoleset:
		count = tree.HowManyRoleset(target)
	case methodPar:
		count = tree.Parallel(cfg.Engine.Workers, cfg.Engine.ForkThreshold).HowMany(target)
	case methodParRoleset:
		count = tree.Parallel(cfg.Engine.Workers, cfg.Engine.ForkThreshold).HowManyRoleset(target)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}

	fmt.Fprintf(os.Stdout, "%s %s\n", humanize.Comma(int64(count)), roleName)

	return nil
}
