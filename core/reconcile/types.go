package reconcile

// Mismatch describes a path present in both stores with differing digests.
type Mismatch struct {
	// Path is the relative file path.
	Path string `json:"path" yaml:"path"`

	// Reference is the digest recorded in the reference store.
	Reference string `json:"reference" yaml:"reference"`

	// Comparison is the digest recorded in the comparison store.
	Comparison string `json:"comparison" yaml:"comparison"`

	// Index is the positional index of Path; only valid if HasIndex.
	Index int `json:"index,omitempty" yaml:"index,omitempty"`

	// HasIndex reports whether Path carries a parsable positional index.
	HasIndex bool `json:"has_index" yaml:"has_index"`
}

// Result is the classified diff of two fingerprint stores.
// OnlyInReference, OnlyInComparison, Matched and Mismatched partition the
// union of both key sets.
type Result struct {
	// OnlyInReference holds paths present only in the reference store, sorted.
	OnlyInReference []string `json:"only_in_reference" yaml:"only_in_reference"`

	// OnlyInComparison holds paths present only in the comparison store, sorted.
	OnlyInComparison []string `json:"only_in_comparison" yaml:"only_in_comparison"`

	// Matched holds common paths with equal digests, sorted.
	Matched []string `json:"matched" yaml:"matched"`

	// Mismatched holds common paths with unequal digests, ordered by
	// positional index. Paths without an index sort as index 0.
	Mismatched []Mismatch `json:"mismatched" yaml:"mismatched"`

	// MatchedIndices is the ascending positional projection of Matched.
	// Paths without an index are dropped.
	MatchedIndices []int `json:"matched_indices" yaml:"matched_indices"`

	// MismatchedIndices is the ascending positional projection of Mismatched.
	MismatchedIndices []int `json:"mismatched_indices" yaml:"mismatched_indices"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary" yaml:"summary"`
}

// Summary provides aggregate statistics for a reconciliation.
type Summary struct {
	// TotalReference is the number of entries in the reference store.
	TotalReference int `json:"total_reference" yaml:"total_reference"`

	// TotalComparison is the number of entries in the comparison store.
	TotalComparison int `json:"total_comparison" yaml:"total_comparison"`

	// Common counts paths present in both stores.
	Common int `json:"common" yaml:"common"`

	// OnlyInReference counts paths missing from the comparison store.
	OnlyInReference int `json:"only_in_reference" yaml:"only_in_reference"`

	// OnlyInComparison counts paths missing from the reference store.
	OnlyInComparison int `json:"only_in_comparison" yaml:"only_in_comparison"`

	// Matched counts common paths with equal digests.
	Matched int `json:"matched" yaml:"matched"`

	// Mismatched counts common paths with unequal digests.
	Mismatched int `json:"mismatched" yaml:"mismatched"`
}

// ActionType represents the kind of transfer a sync plan asks for.
type ActionType string

const (
	// ActionFetchMissing transfers a path the local copy does not have.
	ActionFetchMissing ActionType = "fetch_missing"
	// ActionRefetchDrifted re-transfers a path whose local content drifted.
	ActionRefetchDrifted ActionType = "refetch_drifted"
)

// Action represents a single planned transfer.
type Action struct {
	// Type specifies the transfer kind.
	Type ActionType `json:"type" yaml:"type"`

	// Path is the relative path to transfer.
	Path string `json:"path" yaml:"path"`

	// Reason explains why this transfer is needed.
	Reason string `json:"reason" yaml:"reason"`
}

// Plan is the minimal ordered transfer worklist derived from a donor and a
// local store.
type Plan struct {
	// Actions lists missing paths first, then drifted paths, each group
	// sorted lexicographically.
	Actions []Action `json:"actions" yaml:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary" yaml:"summary"`
}

// PlanSummary provides aggregate statistics for a sync plan.
type PlanSummary struct {
	// Missing counts donor paths absent locally.
	Missing int `json:"missing" yaml:"missing"`

	// Drifted counts common paths whose digests differ.
	Drifted int `json:"drifted" yaml:"drifted"`

	// Total is the worklist length.
	Total int `json:"total" yaml:"total"`
}
