// Package generator fingerprints a block tree.
//
// Discovery is a sequential walk that keeps files ending in the block suffix
// and drops side-car files (e.g. "-wal" and "-shm" journals) that would
// record transient state. Hashing runs on a bounded pool of goroutines, one
// file per task. Each result travels back to the caller's goroutine in
// completion order, so output can be written incrementally while only one
// goroutine ever touches the output file.
//
// Any unreadable file aborts the run: a silently missing digest would make the
// resulting fingerprint file look complete when it is not.
//
//	stats, err := generator.Generate(ctx, opts, func(r generator.Result) error {
//	    return w.WriteEntry(r.Entry)
//	})
package generator
