// Package tasks runs the backup and restore pipelines against a playlist gateway with a shared activity log.
//
// # Core Operations
//
//  1. [Extractor.Extract] : Backup selected playlists
//     - Fetches each selected playlist's items through the gateway
//     - Encodes them as a CSV record named after the playlist title and id
//     - Writes one file per playlist into the destination folder
//     - A failing playlist is logged and reported in its [PlaylistOutcome]; the rest still run
//
//  2. [Queue] : Restore playlists from records
//     - [Queue.Enqueue] / [Queue.EnqueueFolder] decode records into pending [models.RestorationJob]s
//     - [Queue.ProcessQueue] creates one playlist at a time and adds its videos in order
//     - Jobs move pending → creating → done | error; item failures are logged and skipped
//
// Both pipelines take the session-bound gateway as an argument and check for cancellation only between playlists.
//
// # Activity Log
//
// [EventLog] is append-only and ordered oldest first. Every event is mirrored to the charmbracelet logger and
// delivered to subscribers without blocking; a slow subscriber misses events instead of stalling a pipeline.
//
// # Pacing
//
// Item additions wait on a [Pacer] built from a [PacingPolicy] (golang.org/x/time/rate token bucket). The default
// spaces calls 500ms apart.
package tasks
