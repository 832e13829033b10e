// Package integrity ties the fingerprint loader, the reconciliation engine
// and the run history together.
//
// Commands go through Service rather than calling the core packages
// directly, so location handling (local path or s3://bucket/key), empty
// store rejection and history recording behave the same for compare and
// sync-list.
//
// # Operations
//
//   - Compare: loads a reference and a comparison store and reconciles them.
//   - SyncPlan: loads a donor and a local store and derives the sync worklist.
//   - Record / History: persist and list runs when a database is configured.
package integrity
