// Package results persists interpretation results and serves them back as a
// TTL-keyed cache. Evaluation itself is pure and cheap, but callers batching
// the same property data repeatedly (survey pipelines re-running overnight)
// can skip re-evaluation when a fresh record exists for the same
// interpretation and canonical data hash.
//
// Two store backends exist: an in-memory store for tests and short-lived
// runs, and a SQLite store with a selectable driver (cgo sqlite3 or the pure
// Go modernc driver). Retention is enforced by a Pruner, either on demand or
// on a cron schedule.
package results
