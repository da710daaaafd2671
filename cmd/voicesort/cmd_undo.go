package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"voicesort/pkg/engine"
)

// newUndoCmd creates "voicesort undo": reverse the most recently applied
// classification. An empty history is a friendly no-op, not an error.
func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the most recent classification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			restored, err := a.eng.Undo(ctx)
			if errors.Is(err, engine.ErrNothingToUndo) {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to undo")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", restored)
			return nil
		},
	}
}

// newRedoCmd creates "voicesort redo": re-apply the most recently undone
// classification.
func newRedoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Redo the most recently undone classification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			dest, err := a.eng.Redo(ctx)
			if errors.Is(err, engine.ErrNothingToRedo) {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to redo")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reapplied -> %s\n", dest)
			return nil
		},
	}
}
