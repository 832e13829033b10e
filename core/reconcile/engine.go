package reconcile

import (
	"sort"

	"blockcheck/core/fingerprint"
	"blockcheck/core/position"
)

// Reconcile classifies every path of reference and comparison.
// Digests are compared for exact, case-sensitive equality.
func Reconcile(reference, comparison *fingerprint.Store) *Result {
	result := &Result{
		OnlyInReference:   []string{},
		OnlyInComparison:  []string{},
		Matched:           []string{},
		Mismatched:        []Mismatch{},
		MatchedIndices:    []int{},
		MismatchedIndices: []int{},
	}

	// Paths() is sorted, so every path list below is built in order
	for _, path := range reference.Paths() {
		refDigest, _ := reference.Digest(path)
		cmpDigest, common := comparison.Digest(path)

		switch {
		case !common:
			result.OnlyInReference = append(result.OnlyInReference, path)
		case refDigest == cmpDigest:
			result.Matched = append(result.Matched, path)
			if idx, ok := position.Index(path); ok {
				result.MatchedIndices = append(result.MatchedIndices, idx)
			}
		default:
			idx, ok := position.Index(path)
			result.Mismatched = append(result.Mismatched, Mismatch{
				Path:       path,
				Reference:  refDigest,
				Comparison: cmpDigest,
				Index:      idx,
				HasIndex:   ok,
			})
			if ok {
				result.MismatchedIndices = append(result.MismatchedIndices, idx)
			}
		}
	}

	for _, path := range comparison.Paths() {
		if !reference.Has(path) {
			result.OnlyInComparison = append(result.OnlyInComparison, path)
		}
	}

	// Index is 0 when absent, so unindexed drift sorts with index zero
	sort.SliceStable(result.Mismatched, func(i, j int) bool {
		return result.Mismatched[i].Index < result.Mismatched[j].Index
	})
	sort.Ints(result.MatchedIndices)
	sort.Ints(result.MismatchedIndices)

	result.Summary = Summary{
		TotalReference:   reference.Len(),
		TotalComparison:  comparison.Len(),
		Common:           len(result.Matched) + len(result.Mismatched),
		OnlyInReference:  len(result.OnlyInReference),
		OnlyInComparison: len(result.OnlyInComparison),
		Matched:          len(result.Matched),
		Mismatched:       len(result.Mismatched),
	}

	return result
}

// MismatchedPaths returns the mismatched paths in report order.
func (r *Result) MismatchedPaths() []string {
	paths := make([]string, 0, len(r.Mismatched))
	for _, m := range r.Mismatched {
		paths = append(paths, m.Path)
	}
	return paths
}

// NonCritical reports whether all indexed drift is confined to the last
// threshold indices of the mismatched range, i.e.
// min(mismatched) >= max(mismatched) - threshold + 1.
// A non-positive threshold disables the classification.
func (r *Result) NonCritical(threshold int) bool {
	if threshold <= 0 {
		return false
	}

	lo, hi, ok := position.Range(r.MismatchedIndices)
	if !ok {
		return false
	}
	return lo >= hi-threshold+1
}

// Clean reports whether both stores agree on every path.
func (r *Result) Clean() bool {
	return len(r.Mismatched) == 0 && len(r.OnlyInReference) == 0 && len(r.OnlyInComparison) == 0
}
