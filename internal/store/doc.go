// Package store provides the SQLite-backed post repository behind the news
// endpoint.
//
// The repository holds exactly one corpus at a time. ReplacePosts swaps the
// whole collection in a single transaction and records each post's position
// in a seq column; every read orders by that column so the endpoint serves
// posts in the order they were imported.
//
// # Ordering
//
// All list queries use: ORDER BY seq ASC, id COLLATE BINARY ASC
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
