package main

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"voicesort/pkg/hasher"
	"voicesort/pkg/protocol"
)

// newAuditCmd creates the "voicesort audit" command group over the
// append-only audit log of confirmed operations.
func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the audit log of confirmed operations",
	}
	cmd.AddCommand(newAuditListCmd(), newAuditVerifyCmd())
	return cmd
}

func newAuditListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print confirmed move/exclude/defer records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.store.Audit(ctx, limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "audit log is empty")
				return nil
			}
			for _, r := range records {
				line := fmt.Sprintf("%s  %-7s  %s -> %s", r.TS, r.Op, r.Src, r.Dst)
				if r.Character != "" {
					line += fmt.Sprintf("  [%s]", r.Character)
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum records to print (0 = all)")
	return cmd
}

// newAuditVerifyCmd re-hashes classified files against the checksums
// recorded at confirmation time. Files that were since undone or moved
// out-of-band are reported as missing, content drift as a mismatch.
func newAuditVerifyCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify classified files against recorded checksums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.store.Audit(ctx, 0)
			if err != nil {
				return err
			}

			fs := afero.NewOsFs()
			var checked []protocol.AuditRecord
			var paths []string
			missing := 0
			for _, r := range records {
				if r.Checksum == "" {
					continue
				}
				if ok, err := afero.Exists(fs, r.Dst); err != nil || !ok {
					missing++
					continue
				}
				checked = append(checked, r)
				paths = append(paths, r.Dst)
			}

			results, err := hasher.SumAll(fs, paths, workers)
			if err != nil {
				return err
			}

			mismatched := 0
			for i, res := range results {
				if res.Err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "ERROR     %s: %v\n", res.Path, res.Err)
					mismatched++
					continue
				}
				if res.Sum != checked[i].Checksum {
					fmt.Fprintf(cmd.OutOrStdout(), "MISMATCH  %s\n", res.Path)
					mismatched++
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "checked %d, mismatched %d, missing %d\n",
				len(paths), mismatched, missing)
			if mismatched > 0 {
				return fmt.Errorf("%d files failed verification", mismatched)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", hasher.DefaultWorkers, "hash worker pool size")
	return cmd
}
