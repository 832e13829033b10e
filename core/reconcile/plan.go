package reconcile

import (
	"sort"

	"blockcheck/core/fingerprint"
)

// BuildPlan derives the transfer worklist that brings local in line with
// donor: paths only the donor has, then common paths whose digests differ.
// Both groups are sorted lexicographically. Paths only local has are ignored.
func BuildPlan(donor, local *fingerprint.Store) *Plan {
	var (
		missing []string
		drifted []string
	)

	for _, path := range donor.Paths() {
		donorDigest, _ := donor.Digest(path)
		localDigest, present := local.Digest(path)

		switch {
		case !present:
			missing = append(missing, path)
		case donorDigest != localDigest:
			drifted = append(drifted, path)
		}
	}

	return planFromGroups(missing, drifted)
}

// PlanFromResult derives the worklist from an existing reconciliation where
// the reference store is the donor.
func PlanFromResult(r *Result) *Plan {
	drifted := r.MismatchedPaths()
	sort.Strings(drifted)
	return planFromGroups(r.OnlyInReference, drifted)
}

func planFromGroups(missing, drifted []string) *Plan {
	plan := &Plan{
		Actions: make([]Action, 0, len(missing)+len(drifted)),
	}

	for _, path := range missing {
		plan.Actions = append(plan.Actions, Action{
			Type:   ActionFetchMissing,
			Path:   path,
			Reason: "missing locally",
		})
	}
	for _, path := range drifted {
		plan.Actions = append(plan.Actions, Action{
			Type:   ActionRefetchDrifted,
			Path:   path,
			Reason: "digest mismatch",
		})
	}

	plan.Summary = PlanSummary{
		Missing: len(missing),
		Drifted: len(drifted),
		Total:   len(plan.Actions),
	}

	return plan
}

// Paths returns the worklist in transfer order.
func (p *Plan) Paths() []string {
	paths := make([]string, 0, len(p.Actions))
	for _, a := range p.Actions {
		paths = append(paths, a.Path)
	}
	return paths
}
