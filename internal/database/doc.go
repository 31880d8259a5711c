// Package database provides the SQLite-backed key-value store the playlist
// manager persists into.
//
// The store holds opaque values under string keys in a single table. Callers
// read and write whole values; there are no partial updates. SQLite runs in
// WAL mode with a busy timeout so concurrent readers never block the writer
// for long.
//
// Every operation is timed and counted in the metrics package.
package database
