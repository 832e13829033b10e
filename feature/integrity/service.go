package integrity

import (
	"context"
	"errors"
	"fmt"

	"blockcheck/core/fingerprint"
	"blockcheck/core/history"
	"blockcheck/core/reconcile"

	"go.uber.org/zap"
)

// ErrEmptyStore is returned when a fingerprint location holds no entries.
var ErrEmptyStore = errors.New("fingerprint store is empty")

// Service handles drift checks between fingerprint stores.
type Service struct {
	loader  *fingerprint.Loader
	history *history.Repository
	logger  *zap.Logger
}

// NewService creates a new integrity service. repo may be nil when history
// recording is disabled.
func NewService(loader *fingerprint.Loader, repo *history.Repository, logger *zap.Logger) *Service {
	if repo == nil {
		repo = history.NewRepository(nil)
	}
	return &Service{
		loader:  loader,
		history: repo,
		logger:  logger,
	}
}

// Compare loads both stores and reconciles them.
func (s *Service) Compare(ctx context.Context, reference, comparison string) (*reconcile.Result, error) {
	ref, cmp, err := s.loadPair(ctx, reference, comparison)
	if err != nil {
		return nil, err
	}

	result := reconcile.Reconcile(ref, cmp)
	s.logger.Info("Reconciliation complete",
		zap.Int("reference", result.Summary.TotalReference),
		zap.Int("comparison", result.Summary.TotalComparison),
		zap.Int("common", result.Summary.Common),
		zap.Int("mismatched", result.Summary.Mismatched),
	)
	return result, nil
}

// SyncPlan loads the donor and local stores and derives the worklist that
// brings local in line with donor.
func (s *Service) SyncPlan(ctx context.Context, donor, local string) (*reconcile.Plan, error) {
	d, l, err := s.loadPair(ctx, donor, local)
	if err != nil {
		return nil, err
	}

	plan := reconcile.BuildPlan(d, l)
	s.logger.Info("Sync plan built",
		zap.Int("missing", plan.Summary.Missing),
		zap.Int("drifted", plan.Summary.Drifted),
		zap.Int("total", plan.Summary.Total),
	)
	return plan, nil
}

// Record persists run in the history database.
func (s *Service) Record(ctx context.Context, run *history.Run) error {
	if err := s.history.Record(ctx, run); err != nil {
		return err
	}
	s.logger.Debug("Run recorded", zap.String("id", run.ID), zap.String("command", string(run.Command)))
	return nil
}

// History returns the most recent recorded runs.
func (s *Service) History(ctx context.Context, limit int) ([]history.Run, error) {
	return s.history.List(ctx, limit)
}

func (s *Service) loadPair(ctx context.Context, first, second string) (*fingerprint.Store, *fingerprint.Store, error) {
	s.logger.Debug("Loading fingerprint stores", zap.String("first", first), zap.String("second", second))

	a, b, err := s.loader.LoadPair(ctx, first, second)
	if err != nil {
		return nil, nil, err
	}
	if a.Len() == 0 {
		return nil, nil, fmt.Errorf("%s: %w", first, ErrEmptyStore)
	}
	if b.Len() == 0 {
		return nil, nil, fmt.Errorf("%s: %w", second, ErrEmptyStore)
	}
	return a, b, nil
}
