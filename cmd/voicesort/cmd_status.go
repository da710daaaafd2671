package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// newStatusCmd creates "voicesort status": one line summarizing the
// session, mirroring what the sorting UI shows.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show queue position and project settings",
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
			st, err := a.eng.Status(ctx)
			if err != nil {
				return err
			}

			rec := "off"
			if st.Recursive {
				rec = "on"
			}
			out := st.OutputDir
			if out == "" {
				out = "(not set)"
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"%d/%d files | project:%s | enabled inputs:%d | recursive:%s | output:%s\n",
				st.Position, st.Total, st.ProjectKey, st.EnabledInputs, rec, out)

			if cur, ok := a.eng.Current(); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "current: %s\n", cur)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "no files left")
			}
			return nil
		},
	}
}
