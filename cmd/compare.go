package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"blockcheck/core/config"
	"blockcheck/core/histogram"
	"blockcheck/core/history"
	"blockcheck/core/metrics"
	"blockcheck/core/report"
	"blockcheck/feature/integrity"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the compare command
	compareOutput      string
	compareThreshold   int
	comparePlot        bool
	compareBins        int
	compareFormat      string
	compareMetricsFile string
	compareRecord      bool
)

// compareCmd reports drift between two fingerprint files.
var compareCmd = &cobra.Command{
	Use:   "compare <reference> <comparison>",
	Short: "Compare two fingerprint files",
	Long: `Compare a reference fingerprint file with a comparison file.

Prints matched and mismatched counts with their block ranges, then a detailed
report listing one-sided and mismatched paths. When every drifted block sits in
the last --threshold-blocks blocks the drift is reported as not critical.

Examples:
  compare node-a.txt node-b.txt
  compare s3://fingerprints/node-a.txt node-b.txt --plot
  compare node-a.txt node-b.txt --output report.yaml --format yaml`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		if err := applyCompareFlags(cmd, cfg); err != nil {
			return err
		}

		svc, err := newService(cfg, logg, compareRecord, args[0], args[1])
		if err != nil {
			return err
		}

		opts := compareOptions{
			Reference:  args[0],
			Comparison: args[1],
			Output:     compareOutput,
			Plot:       comparePlot,
			Record:     compareRecord,
		}
		return runCompare(cmd.Context(), cfg, logg, svc, opts, cmd.OutOrStdout())
	},
}

func init() {
	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "", "Write the detailed report to this file instead of stdout")
	compareCmd.Flags().IntVar(&compareThreshold, "threshold-blocks", 20000, "Drift confined to this many trailing blocks is not critical")
	compareCmd.Flags().BoolVar(&comparePlot, "plot", false, "Print a histogram of matched and mismatched blocks")
	compareCmd.Flags().IntVar(&compareBins, "bins", 50, "Number of histogram buckets")
	compareCmd.Flags().StringVar(&compareFormat, "format", "text", "Detailed report format (text, json, yaml)")
	compareCmd.Flags().StringVar(&compareMetricsFile, "metrics-file", "", "Write drift metrics to this node_exporter textfile")
	compareCmd.Flags().BoolVar(&compareRecord, "record", false, "Record the run in the history database")

	RootCmd.AddCommand(compareCmd)
}

// compareOptions carries the positional arguments and run-only flags.
type compareOptions struct {
	Reference  string
	Comparison string
	Output     string
	Plot       bool
	Record     bool
}

// applyCompareFlags overrides configuration with explicitly set flags.
func applyCompareFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("threshold-blocks") {
		cfg.Compare.ThresholdBlocks = compareThreshold
	}
	if flags.Changed("bins") {
		cfg.Compare.Histogram.Bins = compareBins
	}
	if flags.Changed("format") {
		cfg.Compare.Format = compareFormat
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.Textfile = compareMetricsFile
	}

	if _, err := report.ParseFormat(cfg.Compare.Format); err != nil {
		return err
	}
	if cfg.Compare.Histogram.Bins < 1 {
		return fmt.Errorf("--bins must be at least 1, got %d", cfg.Compare.Histogram.Bins)
	}
	return nil
}

func runCompare(ctx context.Context, cfg *config.Config, logg *zap.Logger, svc *integrity.Service, opts compareOptions, stdout io.Writer) error {
	format, err := report.ParseFormat(cfg.Compare.Format)
	if err != nil {
		return err
	}

	result, err := svc.Compare(ctx, opts.Reference, opts.Comparison)
	if err != nil {
		return err
	}

	threshold := cfg.Compare.ThresholdBlocks
	doc := report.NewDocument(result, report.Sources{Reference: opts.Reference, Comparison: opts.Comparison}, threshold)

	if err := report.WriteSummary(stdout, doc); err != nil {
		return err
	}

	if opts.Plot {
		if err := plot(stdout, result.MatchedIndices, result.MismatchedIndices, cfg.Compare.Histogram); err != nil {
			return err
		}
	}

	if opts.Output != "" {
		if err := writeReportFile(opts.Output, doc, format); err != nil {
			return err
		}
		logg.Info("Report written", zap.String("path", opts.Output), zap.String("format", string(format)))
	} else if err := report.Write(stdout, doc, format); err != nil {
		return err
	}

	if doc.NonCritical {
		logg.Info("Drift is confined to trailing blocks", zap.Int("threshold_blocks", threshold))
	}

	if cfg.Metrics.Textfile != "" {
		rec := metrics.NewRecorder()
		rec.ObserveReconcile(result, threshold)
		if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return err
		}
	}

	if opts.Record {
		if err := svc.Record(ctx, history.NewCompareRun(opts.Reference, opts.Comparison, result, threshold)); err != nil {
			return err
		}
	}

	return nil
}

// plot renders the positional histogram. Missing index data is reported
// instead of drawing an empty chart.
func plot(w io.Writer, matched, mismatched []int, cfg histogram.Config) error {
	buckets, err := histogram.Build(matched, mismatched, cfg.Bins)
	if errors.Is(err, histogram.ErrNoData) {
		_, err = fmt.Fprintln(w, "No indexed blocks to plot.")
		return err
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Block histogram (matched/mismatched):")
	r := histogram.Renderer{Width: cfg.Width, Color: w == io.Writer(os.Stdout) && !color.NoColor}
	if err := r.Render(w, buckets); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}

func writeReportFile(path string, doc *report.Document, format report.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	defer f.Close()

	if err := report.Write(f, doc, format); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return f.Close()
}
