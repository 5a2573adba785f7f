// Package sqlite provides a SQLite-backed driven.KeyValueStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Profiles, document lists and the session
// reference are stored as JSON snapshots in a single kv table.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.lexdraft/data/lexdraft.db
//
// # Thread Safety
//
// All operations are thread-safe. The pool is limited to one connection so
// read-modify-write transactions are serialised.
package sqlite
