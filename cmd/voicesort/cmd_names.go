package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newNamesCmd creates the "voicesort names" command group for the
// per-project character name list used by completion.
func newNamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "names",
		Short: "Manage the character name list",
	}
	cmd.AddCommand(newNamesListCmd(), newNamesImportCmd(), newNamesExportCmd())
	return cmd
}

func newNamesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the character names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			names, err := a.eng.Names(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no names")
				return nil
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

func newNamesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the name list from a YAML file",
		Long:  "The file is a YAML sequence of names:\n\n  - Arlan\n  - Asta\n  - Dan Heng\n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read names file: %w", err)
			}
			var names []string
			if err := yaml.Unmarshal(raw, &names); err != nil {
				return fmt.Errorf("parse names file: %w", err)
			}

			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.eng.SetNames(ctx, names); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d names\n", len(names))
			return nil
		},
	}
}

func newNamesExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the name list as YAML (stdout by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			names, err := a.eng.Names(ctx)
			if err != nil {
				return err
			}
			raw, err := yaml.Marshal(names)
			if err != nil {
				return fmt.Errorf("marshal names: %w", err)
			}
			if len(args) == 0 {
				fmt.Fprint(cmd.OutOrStdout(), string(raw))
				return nil
			}
			if err := os.WriteFile(args[0], raw, 0o644); err != nil {
				return fmt.Errorf("write names file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d names to %s\n", len(names), args[0])
			return nil
		},
	}
}
