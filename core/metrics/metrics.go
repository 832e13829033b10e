package metrics

import (
	"fmt"

	"blockcheck/core/generator"
	"blockcheck/core/position"
	"blockcheck/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config holds configuration for metrics export.
type Config struct {
	// Textfile is the node_exporter textfile collector target. Empty disables export.
	Textfile string `mapstructure:"textfile" default:""`
}

// Recorder collects the metrics of a single command run on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	// Generation
	filesHashed  prometheus.Counter
	bytesHashed  prometheus.Counter
	hashDuration prometheus.Gauge

	// Reconciliation
	entries     *prometheus.GaugeVec
	paths       *prometheus.GaugeVec
	indexBounds *prometheus.GaugeVec
	nonCritical prometheus.Gauge

	// Sync plans
	syncActions *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,

		filesHashed: factory.NewCounter(prometheus.CounterOpts{
			Name: "blockcheck_files_hashed_total",
			Help: "Total number of files fingerprinted",
		}),
		bytesHashed: factory.NewCounter(prometheus.CounterOpts{
			Name: "blockcheck_bytes_hashed_total",
			Help: "Total number of bytes read while fingerprinting",
		}),
		hashDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "blockcheck_generate_duration_seconds",
			Help: "Wall time of the last fingerprint generation",
		}),

		entries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "blockcheck_store_entries",
			Help: "Number of entries per loaded fingerprint store",
		}, []string{"store"}),
		paths: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "blockcheck_reconcile_paths",
			Help: "Number of paths per reconciliation class",
		}, []string{"class"}),
		indexBounds: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "blockcheck_mismatched_index",
			Help: "Lowest and highest positional index with a digest mismatch",
		}, []string{"bound"}),
		nonCritical: factory.NewGauge(prometheus.GaugeOpts{
			Name: "blockcheck_drift_non_critical",
			Help: "1 if all drift is confined to the trailing blocks",
		}),

		syncActions: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "blockcheck_sync_actions",
			Help: "Number of planned transfers per action type",
		}, []string{"type"}),
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveGenerate records a finished generation run.
func (r *Recorder) ObserveGenerate(stats generator.Stats) {
	r.filesHashed.Add(float64(stats.Files))
	r.bytesHashed.Add(float64(stats.Bytes))
	r.hashDuration.Set(stats.Duration.Seconds())
}

// ObserveReconcile records a reconciliation result.
func (r *Recorder) ObserveReconcile(result *reconcile.Result, threshold int) {
	s := result.Summary
	r.entries.WithLabelValues("reference").Set(float64(s.TotalReference))
	r.entries.WithLabelValues("comparison").Set(float64(s.TotalComparison))

	r.paths.WithLabelValues("matched").Set(float64(s.Matched))
	r.paths.WithLabelValues("mismatched").Set(float64(s.Mismatched))
	r.paths.WithLabelValues("only_in_reference").Set(float64(s.OnlyInReference))
	r.paths.WithLabelValues("only_in_comparison").Set(float64(s.OnlyInComparison))

	if lo, hi, ok := position.Range(result.MismatchedIndices); ok {
		r.indexBounds.WithLabelValues("min").Set(float64(lo))
		r.indexBounds.WithLabelValues("max").Set(float64(hi))
	}

	if result.NonCritical(threshold) {
		r.nonCritical.Set(1)
	} else {
		r.nonCritical.Set(0)
	}
}

// ObservePlan records a sync plan.
func (r *Recorder) ObservePlan(plan *reconcile.Plan) {
	r.syncActions.WithLabelValues(string(reconcile.ActionFetchMissing)).Set(float64(plan.Summary.Missing))
	r.syncActions.WithLabelValues(string(reconcile.ActionRefetchDrifted)).Set(float64(plan.Summary.Drifted))
}

// WriteTextfile writes all metrics in the text exposition format to path,
// atomically replacing any previous file.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
