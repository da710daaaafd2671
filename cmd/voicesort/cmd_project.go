package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"voicesort/pkg/config"
	"voicesort/pkg/project"
)

// newProjectCmd creates the "voicesort project" command group.
func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
		Long:  "Each project keeps its own input roots, character names, history and audit logs.",
	}
	cmd.AddCommand(
		newProjectListCmd(),
		newProjectCreateCmd(),
		newProjectUseCmd(),
		newProjectRenameCmd(),
		newProjectDeleteCmd(),
	)
	return cmd
}

// openRegistry loads the registry and app config for project commands,
// which do not need an open store.
func openRegistry() (*project.Registry, config.Config, error) {
	reg, err := project.NewRegistry()
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("resolve app home: %w", err)
	}
	cfg, err := config.Load(reg.ConfigPath())
	if err != nil {
		return nil, config.Config{}, err
	}
	return reg, cfg, nil
}

func newProjectListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, cfg, err := openRegistry()
			if err != nil {
				return err
			}
			keys, err := reg.List()
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no projects")
				return nil
			}
			for _, k := range keys {
				marker := "  "
				if k == cfg.LastProject {
					marker = "* "
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", marker, k)
			}
			return nil
		},
	}
}

func newProjectCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project and switch to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, cfg, err := openRegistry()
			if err != nil {
				return err
			}
			key, err := reg.Create(args[0])
			if err != nil {
				return err
			}
			cfg.LastProject = key
			if err := config.Save(reg.ConfigPath(), cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Using project %s\n", key)
			return nil
		},
	}
}

func newProjectUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <key>",
		Short: "Switch to an existing project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, cfg, err := openRegistry()
			if err != nil {
				return err
			}
			key := args[0]
			if !reg.Exists(key) {
				return fmt.Errorf("project %s not found", key)
			}
			cfg.LastProject = key
			if err := config.Save(reg.ConfigPath(), cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Using project %s\n", key)
			return nil
		},
	}
}

func newProjectRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, cfg, err := openRegistry()
			if err != nil {
				return err
			}
			newKey, err := reg.Rename(args[0], args[1])
			if err != nil {
				return err
			}
			if cfg.LastProject == args[0] {
				cfg.LastProject = newKey
				if err := config.Save(reg.ConfigPath(), cfg); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s -> %s\n", args[0], newKey)
			return nil
		},
	}
}

func newProjectDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a project and its stored state",
		Long:  "Removes the project's storage directory (history, audit, settings).\nClassified audio files on disk are not touched.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, cfg, err := openRegistry()
			if err != nil {
				return err
			}
			if err := reg.Delete(args[0]); err != nil {
				return err
			}
			if cfg.LastProject == args[0] {
				cfg.LastProject = ""
				if err := config.Save(reg.ConfigPath(), cfg); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
			return nil
		},
	}
}
