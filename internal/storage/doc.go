// Package storage provides durable client-side key/value storage.
//
// It is the Go counterpart of browser local storage: a small set of string
// keys mapping to opaque byte values that survive restarts. The session
// store keeps the serialized current user here. Nothing else is persisted;
// workspace caches and project state are rebuilt from the network on each
// session.
//
// # Implementations
//
//   - SQLite: a single-table database file (WAL mode, NORMAL sync).
//   - Memory: a map for tests and ephemeral sessions.
//
// Both satisfy KV.
package storage
