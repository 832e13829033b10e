// Package report renders reconciliation results for operators and tools.
//
// The text report lists counts, store-exclusive paths and every mismatch with
// both digests, annotated when drift is confined to the trailing blocks. The
// same content is available as JSON or YAML through Document.
package report
