// Package history records compare and sync-list runs in a database so that
// drift can be tracked across successive verifications of the same replica.
//
// History is optional: commands only touch it when a database is configured
// and --record is given.
package history
