// Package repositories implements SQLite persistence for restoration history.
//
// Key Implementations:
//   - [JobRepository] : Restoration job snapshots with status lookups and soft deletes
//
// Sequence numbers provide stable ordering independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
