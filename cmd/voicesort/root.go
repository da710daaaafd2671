package main

import (
	"github.com/spf13/cobra"
)

// version is stamped by the release build; "dev" otherwise.
var version = "dev"

// projectFlag overrides the last-used project for a single invocation.
var projectFlag string

// newRootCmd creates the root voicesort command with all subcommands
// attached.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "voicesort",
		Short:         "Route audio files into per-character folders",
		Long:          "voicesort helps an operator classify audio files one at a time,\nwith a durable audit trail and persistent undo/redo.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("voicesort {{.Version}}\n")
	cmd.PersistentFlags().StringVarP(&projectFlag, "project", "p", "",
		"project to operate on (default: last used)")

	cmd.AddCommand(
		newProjectCmd(),
		newInputsCmd(),
		newSetCmd(),
		newScanCmd(),
		newClassifyCmd(),
		newExcludeCmd(),
		newDeferCmd(),
		newUndoCmd(),
		newRedoCmd(),
		newStatusCmd(),
		newAuditCmd(),
		newNamesCmd(),
		newSortCmd(),
	)

	return cmd
}
