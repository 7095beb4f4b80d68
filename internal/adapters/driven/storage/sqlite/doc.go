// Package sqlite is the default cache driver: one cache.db file, opened in
// WAL mode through the cgo-free modernc.org/sqlite driver.
//
// cache_slots holds the snapshot and the session token as opaque bytes.
// pull_jobs and pull_runs hold the background pull schedule and its history.
// Schema changes are numbered NNN_name.up.sql files under migrations/,
// applied in order on open, each in its own transaction.
package sqlite
