// Package commands implements CLI command handlers for rolenav.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/rolenav/internal/config"
	"github.com/Sumatoshi-tech/rolenav/internal/server"
	"github.com/Sumatoshi-tech/rolenav/pkg/atree"
	"github.com/Sumatoshi-tech/rolenav/pkg/snapshot"
)

// snapshotArgCount is the positional arg count for commands taking one snapshot.
const snapshotArgCount = 1

// engineFlags holds the knobs shared by every tree-building command.
// Unset flags defer to the config file and its defaults.
type engineFlags struct {
	configPath  string
	workers     int
	threshold   int
	layout      string
	maxDepth    int
	maxChildren int
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "path to config file (default: .rolenav.yaml in CWD or $HOME)")
	cmd.Flags().IntVar(&f.workers, "workers", -1, "parallel query workers (0 = one per CPU)")
	cmd.Flags().IntVar(&f.threshold, "threshold", -1, "subtree size below which parallel queries run sequentially")
	cmd.Flags().StringVar(&f.layout, "layout", "", "arena layout: plain or counting")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", -1, "snapshot nesting limit")
	cmd.Flags().IntVar(&f.maxChildren, "max-children", -1, "per-node fanout limit")
}

// resolve loads the config and overlays any flags the user set.
func (f *engineFlags) resolve() (*config.Config, error) {
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}

	if f.workers >= 0 {
		cfg.Engine.Workers = f.workers
	}

	if f.threshold >= 0 {
		cfg.Engine.ForkThreshold = f.threshold
	}

	if f.layout != "" {
		cfg.Engine.Layout = f.layout
	}

	if f.maxDepth > 0 {
		cfg.Engine.MaxDepth = f.maxDepth
	}

	if f.maxChildren > 0 {
		cfg.Engine.MaxChildren = f.maxChildren
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return cfg, nil
}

// buildTree decodes a snapshot file and builds the configured arena flavor.
func buildTree(cfg *config.Config, path string) (server.Queryable, error) {
	root, err := snapshot.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	opts := []atree.Option{
		atree.WithMaxDepth(cfg.Engine.MaxDepth),
		atree.WithMaxChildren(cfg.Engine.MaxChildren),
	}

	if cfg.Engine.Layout == config.LayoutCounting {
		tree, buildErr := atree.BuildCounting(root, opts...)
		if buildErr != nil {
			return nil, fmt.Errorf("build tree: %w", buildErr)
		}

		return tree, nil
	}

	tree, buildErr := atree.Build(root, opts...)
	if buildErr != nil {
		return nil, fmt.Errorf("build tree: %w", buildErr)
	}

	return tree, nil
}
