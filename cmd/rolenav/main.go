// Package main provides the entry point for the rolenav CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/rolenav/cmd/rolenav/commands"
	"github.com/Sumatoshi-tech/rolenav/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rolenav",
		Short: "Rolenav - role-aware accessibility tree queries",
		Long: `Rolenav loads accessibility tree snapshots and answers role queries over them.

Commands:
  stats     Summarize a snapshot (nodes, depth, role distribution)
  count     Count nodes with a role
  find      Locate the first node with a role in reading order
  tree      Pretty-print a snapshot
  gen       Generate a random snapshot
  validate  Check a snapshot against the document schema
  serve     Serve queries over HTTP`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewCountCommand())
	rootCmd.AddCommand(commands.NewFindCommand())
	rootCmd.AddCommand(commands.NewTreeCommand())
	rootCmd.AddCommand(commands.NewGenCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "rolenav %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
