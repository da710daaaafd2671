package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// newSortCmd creates "voicesort sort": the interactive sorting session.
// The TUI is a thin shell over the engine; every gesture maps to one engine
// call.
func newSortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Interactively classify the queued files",
		Long: "Type a character name and press enter to classify the current file.\n" +
			"A prefix matching exactly one known name completes and locks the field.\n\n" +
			"Keys:\n" +
			"  enter    classify under the typed name\n" +
			"  ctrl+x   exclude the current file\n" +
			"  ctrl+d   defer the current file\n" +
			"  ctrl+z   undo\n" +
			"  ctrl+y   redo\n" +
			"  esc      quit",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			m, err := newSortModel(ctx, a)
			if err != nil {
				return err
			}
			if _, err := tea.NewProgram(m).Run(); err != nil {
				return fmt.Errorf("run sort ui: %w", err)
			}
			return nil
		},
	}
}
