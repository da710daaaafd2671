package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// newScanCmd creates "voicesort scan": rebuild and print the working queue.
func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Rebuild and print the working file queue",
		Args:  cobra.NoArgs,
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
			queue := a.eng.Queue()
			if len(queue) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no files left")
				return nil
			}
			for i, f := range queue {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", i+1, f)
			}
			return nil
		},
	}
}
