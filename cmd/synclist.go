package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"blockcheck/core/config"
	"blockcheck/core/history"
	"blockcheck/core/metrics"
	"blockcheck/core/report"
	"blockcheck/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync-list command
	syncOutput string
	syncRecord bool
)

// syncListCmd derives the worklist that brings a local node in line with a donor.
var syncListCmd = &cobra.Command{
	Use:   "sync-list <donor> <local>",
	Short: "List block files to fetch from a donor",
	Long: `Compare a donor fingerprint file with a local one and write the paths
that must be fetched from the donor: paths missing locally first, then paths
whose digest differs, each group sorted.

Examples:
  sync-list s3://fingerprints/node-a.txt local.txt
  sync-list donor.txt local.txt --output fetch.txt`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		if cmd.Flags().Changed("output") {
			cfg.Sync.Output = syncOutput
		}

		svc, err := newService(cfg, logg, syncRecord, args[0], args[1])
		if err != nil {
			return err
		}

		return runSyncList(cmd.Context(), cfg, logg, svc, args[0], args[1], syncRecord, cmd.OutOrStdout())
	},
}

func init() {
	syncListCmd.Flags().StringVarP(&syncOutput, "output", "o", "to_sync.txt", "Worklist file")
	syncListCmd.Flags().BoolVar(&syncRecord, "record", false, "Record the run in the history database")

	RootCmd.AddCommand(syncListCmd)
}

func runSyncList(ctx context.Context, cfg *config.Config, logg *zap.Logger, svc *integrity.Service, donor, local string, record bool, stdout io.Writer) error {
	plan, err := svc.SyncPlan(ctx, donor, local)
	if err != nil {
		return err
	}

	output := cfg.Sync.Output
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create worklist %s: %w", output, err)
	}
	defer f.Close()

	if err := report.WriteSyncList(f, plan); err != nil {
		return fmt.Errorf("failed to write worklist %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close worklist %s: %w", output, err)
	}

	logg.Info("Worklist written", zap.String("path", output), zap.Int("paths", plan.Summary.Total))
	fmt.Fprintf(stdout, "%d files to sync (%d missing, %d mismatched) written to %s\n",
		plan.Summary.Total, plan.Summary.Missing, plan.Summary.Drifted, output)

	if cfg.Metrics.Textfile != "" {
		rec := metrics.NewRecorder()
		rec.ObservePlan(plan)
		if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return err
		}
	}

	if record {
		if err := svc.Record(ctx, history.NewSyncRun(donor, local, plan)); err != nil {
			return err
		}
	}

	return nil
}
