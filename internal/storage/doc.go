// Package storage defines the transactional engine boundary for KVArea
// and provides the Badger-based implementation.
//
// The engine model:
//
//   - Engine opens connections to named store locations and can
//     destroy a location's entire store.
//   - Conn begins transactions scoped to a set of logical tables.
//   - Txn exposes tables and ends in exactly one of three terminal
//     outcomes: complete (Commit returns nil), error (Commit returns a
//     non-conflict error), or abort (Commit returns ErrTxnConflict).
//   - Table carries the per-table get/put/delete/scan requests.
//
// Callers above this package never see Badger types; everything is
// expressed through these interfaces so tests can substitute an
// instrumented fake engine.
package storage
