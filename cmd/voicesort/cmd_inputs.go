package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// newInputsCmd creates the "voicesort inputs" command group for input-root
// CRUD. Removing a root only deletes its record; files stay where they are.
func newInputsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inputs",
		Short: "Manage input folders",
	}
	cmd.AddCommand(
		newInputsListCmd(),
		newInputsAddCmd(),
		newInputsRemoveCmd(),
		newInputsFlagCmd("enable", "Enable an input folder for scanning", func(ctx context.Context, a *app, path string) error {
			return a.eng.SetEnabled(ctx, path, true)
		}),
		newInputsFlagCmd("disable", "Disable an input folder", func(ctx context.Context, a *app, path string) error {
			return a.eng.SetEnabled(ctx, path, false)
		}),
		newInputsFlagCmd("done", "Tag an input folder as done", func(ctx context.Context, a *app, path string) error {
			return a.eng.SetDone(ctx, path, true)
		}),
		newInputsFlagCmd("undone", "Remove the done tag from an input folder", func(ctx context.Context, a *app, path string) error {
			return a.eng.SetDone(ctx, path, false)
		}),
	)
	return cmd
}

func newInputsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List input folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			roots, err := a.eng.InputRoots(ctx)
			if err != nil {
				return err
			}
			if len(roots) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no input folders")
				return nil
			}
			for _, r := range roots {
				state := "enabled"
				if !r.Enabled {
					state = "disabled"
				}
				if r.Done {
					state += ", done"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  [%s]\n", r.Path, state)
			}
			return nil
		},
	}
}

func newInputsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <dir>",
		Short: "Add an input folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			info, err := os.Stat(abs)
			if err != nil || !info.IsDir() {
				return fmt.Errorf("%s is not a directory", abs)
			}

			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.eng.AddInputRoot(ctx, abs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", abs)
			return nil
		},
	}
}

func newInputsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <dir>",
		Short: "Remove an input folder record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.eng.RemoveInputRoot(ctx, abs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", abs)
			return nil
		},
	}
}

// newInputsFlagCmd builds the enable/disable/done/undone variants, which
// differ only in the engine call.
func newInputsFlagCmd(use, short string, apply func(context.Context, *app, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <dir>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := apply(ctx, a, abs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", abs)
			return nil
		},
	}
}
