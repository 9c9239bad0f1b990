// Package storage defines the transactional engine boundary for KVArea.
package storage

import (
	"context"
	"errors"
)

// Common errors.
var (
	// ErrKeyNotFound indicates the requested key has no entry.
	ErrKeyNotFound = errors.New("storage: key not found")

	// ErrClosed indicates the engine or connection has been closed.
	ErrClosed = errors.New("storage: engine closed")

	// ErrTxnConflict indicates the engine aborted the transaction,
	// typically on a write conflict. This is the abort outcome; other
	// commit errors are the error outcome.
	ErrTxnConflict = errors.New("storage: transaction conflict")

	// ErrReadOnlyTxn indicates a write request in a read-only transaction.
	ErrReadOnlyTxn = errors.New("storage: write in read-only transaction")

	// ErrUnknownTable indicates a table outside the transaction's scope.
	ErrUnknownTable = errors.New("storage: unknown table")

	// ErrLocationBusy indicates the store location is held by another
	// open connection.
	ErrLocationBusy = errors.New("storage: location busy")
)

// TxnMode selects the access mode of a transaction.
type TxnMode int

const (
	ReadOnly TxnMode = iota
	ReadWrite
)

func (m TxnMode) String() string {
	if m == ReadWrite {
		return "read-write"
	}
	return "read-only"
}

// Engine opens and destroys named store locations.
type Engine interface {
	// Open establishes a connection to the store at location, creating
	// it if absent. At most one connection per location may be open;
	// a second Open fails with ErrLocationBusy.
	Open(ctx context.Context, location string) (Conn, error)

	// DestroyStore removes the entire store at location. The location
	// must not have an open connection.
	DestroyStore(ctx context.Context, location string) error

	// Close shuts down the engine and every open connection.
	Close() error
}

// Conn is an open connection to one store location.
type Conn interface {
	// Begin starts a transaction scoped to the named tables.
	Begin(mode TxnMode, tables ...string) (Txn, error)

	// Location returns the store location this connection is bound to.
	Location() string

	// Close releases the connection. In-flight transactions fail.
	Close() error
}

// Txn is a single transaction. It must end in exactly one call to
// Commit or Discard; Discard after Commit is a no-op, so `defer
// txn.Discard()` is always safe.
type Txn interface {
	// Table returns the named table. The table must be in the set the
	// transaction was begun with.
	Table(name string) (Table, error)

	// Commit applies the transaction. A nil return is the complete
	// outcome; ErrTxnConflict is the abort outcome; any other error is
	// the error outcome. For read-only transactions Commit just
	// releases the snapshot.
	Commit() error

	// Discard abandons the transaction and any buffered writes.
	Discard()
}

// Table issues requests against one logical table within a transaction.
type Table interface {
	// Get fetches the value stored under key, or ErrKeyNotFound.
	Get(key []byte) ([]byte, error)

	// Put stores value under key, replacing any existing entry.
	Put(key, value []byte) error

	// Delete removes the entry under key. Deleting an absent key is
	// not an error.
	Delete(key []byte) error

	// Scan visits entries whose key starts with prefix, in key order.
	// The callback returns false to stop early.
	Scan(prefix []byte, fn func(key, value []byte) bool) error
}
