// Package store keeps an optional SQLite history of rotate runs.
//
// Each run gets a UUIDv7 id and a row in runs; every record it emits is
// appended to records with a 1-based sequence number. A run is written
// inside a single transaction, so an interrupted run leaves nothing behind.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// All queries order by seq so reads are deterministic.
package store
