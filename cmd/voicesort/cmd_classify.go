package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// newClassifyCmd creates "voicesort classify": confirm the file at the head
// of the queue under a character name.
func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <character>",
		Short: "Move the next queued file into the character's folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.eng.LoadFiles(ctx); err != nil {
				return err
			}
			src, ok := a.eng.Current()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no files left")
				return nil
			}
			dest, err := a.eng.ConfirmMove(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", src, dest)
			return nil
		},
	}
}

// newExcludeCmd creates "voicesort exclude": stage the next queued file
// into the local exclude folder.
func newExcludeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exclude",
		Short: "Exclude the next queued file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return stageHead(cmd, func(ctx context.Context, a *app) (string, error) {
				return a.eng.ExcludeCurrent(ctx)
			})
		},
	}
}

// newDeferCmd creates "voicesort defer": stage the next queued file into
// the local defer folder; it comes back once the queue empties.
func newDeferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defer",
		Short: "Defer the next queued file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return stageHead(cmd, func(ctx context.Context, a *app) (string, error) {
				return a.eng.DeferCurrent(ctx)
			})
		},
	}
}

// stageHead is the shared exclude/defer command body.
func stageHead(cmd *cobra.Command, op func(context.Context, *app) (string, error)) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.eng.LoadFiles(ctx); err != nil {
		return err
	}
	src, ok := a.eng.Current()
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "no files left")
		return nil
	}
	dest, err := op(ctx, a)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", src, dest)
	return nil
}
