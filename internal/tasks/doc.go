// Package tasks orchestrates long-running curation operations with real-time progress reporting.
//
// # Core Operations
//
// The [Engine] provides two operations:
//
//  1. [Engine.Export] : Write the like history to one or more formats
//     - Reads the history from the store
//     - Fans the requested formats out over a worker pool
//     - Writes an export manifest summarizing the run
//
//  2. [Engine.Snapshot] : Dump the full curation state to a JSON file
//     - Fetches the track and album inboxes from the sheet endpoints
//     - Reads the like history
//     - Writes a single timestamped snapshot for backup or analysis
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
package tasks
