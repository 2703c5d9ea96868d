package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// percentageValue converts a ratio to a percentage.
const percentageValue = 100

// statsTopDefault is the default row cap for the per-role table.
const statsTopDefault = 20

// NewStatsCommand creates the stats subcommand.
func NewStatsCommand() *cobra.Command {
	var flags engineFlags

	var top int

	cmd := &cobra.Command{
		Use:   "stats <snapshot.json[.lz4]>",
		Short: "Summarize a snapshot (nodes, depth, role distribution)",
		Args:  cobra.ExactArgs(snapshotArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			return runStats(&flags, args[0], top)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&top, "top", statsTopDefault, "rows in the per-role table (0 = all)")

	return cmd
}

func runStats(flags *engineFlags, path string, top int) error {
	cfg, err := flags.resolve()
	if err != nil {
		return err
	}

	tree, err := buildTree(cfg, path)
	if err != nil {
		return err
	}

	stats := tree.Stats()

	summary := table.NewWriter()
	summary.SetStyle(table.StyleLight)
	summary.AppendRows([]table.Row{
		{"Nodes", humanize.Comma(int64(stats.Nodes))},
		{"Leaves", humanize.Comma(int64(stats.Leaves))},
		{"Max depth", stats.MaxDepth},
		{"Max children", stats.MaxChildren},
		{"Distinct roles", len(stats.UniqueRoles)},
	})
	fmt.Fprintln(os.Stdout, summary.Render())

	perRole := stats.PerRole
	sort.Slice(perRole, func(i, j int) bool {
		if perRole[i].Count != perRole[j].Count {
			return perRole[i].Count > perRole[j].Count
		}

		return perRole[i].Role < perRole[j].Role
	})

	if top > 0 && len(perRole) > top {
		perRole = perRole[:top]
	}

	roles := table.NewWriter()
	roles.SetStyle(table.StyleLight)
	roles.AppendHeader(table.Row{"Role", "Count", "Share"})

	for _, tally := range perRole {
		share := float64(tally.Count) / float64(stats.Nodes) * percentageValue
		roles.AppendRow(table.Row{tally.Role.String(), humanize.Comma(int64(tally.Count)), fmt.Sprintf("%.1f%%", share)})
	}

	roles.AppendFooter(table.Row{"Total", humanize.Comma(int64(stats.Nodes)), ""})
	fmt.Fprintln(os.Stdout, roles.Render())

	return nil
}
