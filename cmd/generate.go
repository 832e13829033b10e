package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"blockcheck/core/config"
	"blockcheck/core/fingerprint"
	"blockcheck/core/generator"
	"blockcheck/core/metrics"
	"blockcheck/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the generate command
	generateWorkers     int
	generateSuffix      string
	generateAlgorithm   string
	generateUpload      string
	generateMetricsFile string
)

// generateCmd hashes every block file under a directory.
var generateCmd = &cobra.Command{
	Use:   "generate <root> <output>",
	Short: "Fingerprint the block files under a directory",
	Long: `Walk <root>, hash every block file in parallel and write one
"<digest>  <relative-path>" line per file to <output>.

Lines are written as hashes complete, so an interrupted run leaves a valid
partial file. Any unreadable file aborts the run.

Examples:
  generate /var/lib/node/blocks hashes.txt
  generate /var/lib/node/blocks hashes.txt --workers 8
  generate /var/lib/node/blocks hashes.txt --upload s3://fingerprints/node-a.txt`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		applyGenerateFlags(cmd, cfg)

		var client storage.Client
		if generateUpload != "" {
			client, err = storage.NewClient(cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
		}

		return runGenerate(cmd.Context(), cfg, logg, client, args[0], args[1], generateUpload)
	},
}

func init() {
	generateCmd.Flags().IntVar(&generateWorkers, "workers", 0, "Number of hashing workers (default: number of CPUs)")
	generateCmd.Flags().StringVar(&generateSuffix, "suffix", ".dat", "Suffix of block files to hash")
	generateCmd.Flags().StringVar(&generateAlgorithm, "algorithm", "sha256", "Digest algorithm (sha256, sha512, sha1, md5)")
	generateCmd.Flags().StringVar(&generateUpload, "upload", "", "Upload the result to s3://bucket/key (a bare key uses the configured bucket)")
	generateCmd.Flags().StringVar(&generateMetricsFile, "metrics-file", "", "Write run metrics to this node_exporter textfile")

	RootCmd.AddCommand(generateCmd)
}

// applyGenerateFlags overrides configuration with explicitly set flags.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Generate.Workers = generateWorkers
	}
	if flags.Changed("suffix") {
		cfg.Generate.Suffix = generateSuffix
	}
	if flags.Changed("algorithm") {
		cfg.Generate.Algorithm = generateAlgorithm
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.Textfile = generateMetricsFile
	}
}

func runGenerate(ctx context.Context, cfg *config.Config, logg *zap.Logger, client storage.Client, root, output, upload string) error {
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", output, err)
	}
	defer f.Close()

	logg.Info("Generating fingerprints",
		zap.String("root", root),
		zap.String("output", output),
		zap.String("algorithm", cfg.Generate.Algorithm),
		zap.Int("workers", cfg.Generate.Workers),
	)

	w := fingerprint.NewWriter(f)
	stats, err := generator.Generate(ctx, generator.OptionsFromConfig(root, cfg.Generate), func(r generator.Result) error {
		logg.Debug("Hashed", zap.String("path", r.Path), zap.Int64("size", r.Size))
		return w.WriteEntry(r.Entry)
	})
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file %s: %w", output, err)
	}

	logg.Info("Fingerprints written",
		zap.Int("files", stats.Files),
		zap.Int64("bytes", stats.Bytes),
		zap.Duration("duration", stats.Duration),
	)

	if upload != "" {
		loc, err := uploadLocation(upload, cfg.Storage.Bucket)
		if err != nil {
			return err
		}
		info, err := storage.UploadFile(ctx, client, loc, output)
		if err != nil {
			return err
		}
		logg.Info("Fingerprints uploaded", zap.String("location", loc.String()), zap.Int64("size", info.Size))
	}

	if cfg.Metrics.Textfile != "" {
		rec := metrics.NewRecorder()
		rec.ObserveGenerate(stats)
		if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return err
		}
	}

	return nil
}

// uploadLocation resolves the --upload value. A bare key is placed in the
// configured bucket.
func uploadLocation(raw, bucket string) (storage.Location, error) {
	if storage.IsRemote(raw) {
		return storage.ParseLocation(raw)
	}
	key := strings.TrimPrefix(raw, "/")
	if key == "" || bucket == "" {
		return storage.Location{}, fmt.Errorf("invalid upload target %q", raw)
	}
	return storage.Location{Bucket: bucket, Key: key}, nil
}
