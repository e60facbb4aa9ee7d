// Package database implements the durable event store for the media scan
// service on top of SQLite.
//
// Discovered media items are stored as events: one row per unique path within
// the plugin's namespace. The scan engine talks to this package through two
// batched operations that mirror its dedup-and-insert pipeline:
//
//   - FindExistingPaths answers "which of these paths are already indexed"
//     with a single set-membership query per batch, never per-item lookups.
//   - InsertEvents commits the unseen delta in one transaction.
//
// The package also owns the single-user session tables backing the
// host-level authentication on the status and query endpoints.
//
// The database uses WAL mode for better concurrency. All operations carry
// timeouts and are instrumented with Prometheus metrics.
package database
