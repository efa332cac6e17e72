// Package journal provides a SQLite-backed archive of rotation state files.
//
// Each session end can append the primary state file of a save game as a
// Snapshot. Snapshots are content-addressed: writing the same bytes for the
// same game twice is a no-op. The archive lets a player inspect how the
// persisted rotation state evolved and restore an older file after a bad
// revert.
//
// # Ordering
//
//   - Every snapshot gets a seq from a logical counter, never from wall time
//   - List queries use ORDER BY seq ASC, id ASC COLLATE BINARY
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks instead of failing
//   - foreign_keys=ON
package journal
