package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
)

// newSetCmd creates the "voicesort set" command group for per-project
// settings.
func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change project settings",
	}
	cmd.AddCommand(newSetRecursiveCmd(), newSetOutputCmd())
	return cmd
}

func newSetRecursiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recursive <true|false>",
		Short: "Toggle recursive scanning of input folders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseBool(args[0])
			if err != nil {
				return fmt.Errorf("set recursive: invalid value %q", args[0])
			}

			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.eng.SetRecursive(ctx, v); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "recursive = %v\n", v)
			return nil
		},
	}
}

func newSetOutputCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "output <dir>",
		Short: "Set the output folder for confirmed moves",
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

			if err := a.eng.SetOutputDir(ctx, abs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "output = %s\n", abs)
			return nil
		},
	}
}
