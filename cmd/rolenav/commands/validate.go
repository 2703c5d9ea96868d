package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/rolenav/pkg/snapshot"
)

// exitCodeValidationFailure is the exit code for schema violations.
const exitCodeValidationFailure = 2

// NewValidateCommand creates the validate subcommand.
func NewValidateCommand() *cobra.Command {
	var colorize, nocolor bool

	cmd := &cobra.Command{
		Use:   "validate <snapshot.json>",
		Short: "Check a snapshot against the document schema",
		Long: `Validate a snapshot file against the canonical document schema:
every node is an object with a "role" string and an optional "children"
array, and nothing else.`,
		Args: cobra.ExactArgs(snapshotArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0], colorize, nocolor)
		},
	}

	cmd.Flags().BoolVar(&colorize, "color", false, "force colored output")
	cmd.Flags().BoolVar(&nocolor, "no-color", false, "disable colored output")

	return cmd
}

func runValidate(path string, colorize, nocolor bool) error {
	if nocolor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	} else if colorize {
		color.NoColor = false //nolint:reassign // intentional override of library global
	}

	raw, readErr := os.ReadFile(path)
	if readErr != nil {
		return fmt.Errorf("read snapshot: %w", readErr)
	}

	validateErr := snapshot.Validate(raw)
	if validateErr == nil {
		color.New(color.FgGreen).Fprintf(os.Stdout, "snapshot is valid (%s)\n", path)

		return nil
	}

	if !errors.Is(validateErr, snapshot.ErrSchemaViolation) {
		return validateErr
	}

	color.New(color.FgRed).Fprintf(os.Stdout, "snapshot validation failed (%s)\n", path)
	color.New(color.FgRed).Fprintf(os.Stdout, "  %v\n", validateErr)
	os.Exit(exitCodeValidationFailure)

	return nil
}
