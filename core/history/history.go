package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blockcheck/core/reconcile"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned when history is used without a connection.
var ErrNoDatabase = errors.New("history database is not configured")

// Command names the operation a Run was recorded for.
type Command string

const (
	CommandCompare  Command = "compare"
	CommandSyncList Command = "sync-list"
)

// Run is a single recorded compare or sync-list execution.
type Run struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	Command          Command   `gorm:"size:16;index" json:"command"`
	Reference        string    `gorm:"size:1024" json:"reference"`
	Comparison       string    `gorm:"size:1024" json:"comparison"`
	Matched          int       `json:"matched"`
	Mismatched       int       `json:"mismatched"`
	OnlyInReference  int       `json:"only_in_reference"`
	OnlyInComparison int       `json:"only_in_comparison"`
	SyncTotal        int       `json:"sync_total"`
	NonCritical      bool      `json:"non_critical"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

// TableName pins the table name.
func (Run) TableName() string {
	return "blockcheck_runs"
}

// NewCompareRun builds a Run from a reconciliation.
func NewCompareRun(reference, comparison string, result *reconcile.Result, threshold int) *Run {
	s := result.Summary
	return &Run{
		ID:               uuid.NewString(),
		Command:          CommandCompare,
		Reference:        reference,
		Comparison:       comparison,
		Matched:          s.Matched,
		Mismatched:       s.Mismatched,
		OnlyInReference:  s.OnlyInReference,
		OnlyInComparison: s.OnlyInComparison,
		NonCritical:      result.NonCritical(threshold),
	}
}

// NewSyncRun builds a Run from a sync plan.
func NewSyncRun(donor, local string, plan *reconcile.Plan) *Run {
	return &Run{
		ID:              uuid.NewString(),
		Command:         CommandSyncList,
		Reference:       donor,
		Comparison:      local,
		Mismatched:      plan.Summary.Drifted,
		OnlyInReference: plan.Summary.Missing,
		SyncTotal:       plan.Summary.Total,
	}
}

// Repository persists runs.
type Repository struct {
	db *gorm.DB
}

// NewRepository wraps db. A nil db yields a repository whose calls fail with
// ErrNoDatabase.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the runs table.
func (r *Repository) Migrate() error {
	if r.db == nil {
		return ErrNoDatabase
	}
	if err := r.db.AutoMigrate(&Run{}); err != nil {
		return fmt.Errorf("failed to migrate history table: %w", err)
	}
	return nil
}

// Record stores run.
func (r *Repository) Record(ctx context.Context, run *Run) error {
	if r.db == nil {
		return ErrNoDatabase
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]Run, error) {
	if r.db == nil {
		return nil, ErrNoDatabase
	}

	var runs []Run
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
