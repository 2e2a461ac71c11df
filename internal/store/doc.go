// Package store persists compositor project documents in SQLite.
//
// The store holds opaque project documents (the JSON the loader decodes)
// keyed by a sanitized project id with a display name. It replaces the
// flat projects/*.json directory earlier builds used with a single
// durable database: one writer at a time, WAL mode for concurrent
// reads.
//
// The store is authoring-side infrastructure. It is never touched by the
// evaluation path - determinism there forbids I/O.
package store
