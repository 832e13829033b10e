package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"blockcheck/feature/integrity"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd lists recorded compare and sync-list runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded compare and sync-list runs",
	Long: `List runs recorded with --record, newest first.
Requires DATABASE_DRIVER (mysql or sqlite) to be configured.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		repo, err := openHistory(cfg)
		if err != nil {
			return err
		}

		svc := integrity.NewService(nil, repo, logg)
		return runHistory(cmd.Context(), svc, historyLimit, cmd.OutOrStdout())
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to list (0 lists all)")

	RootCmd.AddCommand(historyCmd)
}

func runHistory(ctx context.Context, svc *integrity.Service, limit int, stdout io.Writer) error {
	runs, err := svc.History(ctx, limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tCOMMAND\tREFERENCE\tCOMPARISON\tMATCHED\tMISMATCHED\tONLY_REF\tONLY_CMP\tSYNC\tNON_CRITICAL")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%t\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), r.Command, r.Reference, r.Comparison,
			r.Matched, r.Mismatched, r.OnlyInReference, r.OnlyInComparison, r.SyncTotal, r.NonCritical)
	}
	return tw.Flush()
}
