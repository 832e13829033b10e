// Package reconcile compares two fingerprint stores and derives the
// transfer worklist that eliminates the detected drift.
//
// # Reconciliation
//
// Reconcile partitions the union of both key sets into four disjoint groups:
//   - OnlyInReference: present in the reference store only
//   - OnlyInComparison: present in the comparison store only
//   - Matched: present in both with equal digests
//   - Mismatched: present in both with different digests
//
// Matched and mismatched paths are also projected onto their positional
// index (see package position). Mismatches are reported by ascending index;
// a path without an index sorts as index 0, so unindexed drift is listed
// first instead of being hidden at the end of the report.
//
// # Trailing Blocks
//
// In append-only block stores the newest blocks are often still being
// written. NonCritical(n) flags a result whose mismatched indices all fit in
// the last n indices of the mismatched range. The flag is advisory only.
//
// # Sync Plans
//
// BuildPlan turns a donor/local pair into an ordered list of transfer actions:
// missing paths first, then drifted ones, each group sorted. The plan never
// touches paths that exist only locally.
//
//	result := reconcile.Reconcile(reference, comparison)
//	if result.NonCritical(20000) {
//	    // drift confined to the tail
//	}
//
//	plan := reconcile.BuildPlan(donor, local)
//	for _, path := range plan.Paths() {
//	    fmt.Println(path)
//	}
package reconcile
