package area

import (
	"context"
	"sort"
	"sync"

	"github.com/yndnr/kvarea-go/internal/storage"
)

// fakeEngine is an in-memory engine with call-order instrumentation.
// Tests use it to observe opens, destroys, and their relative order,
// and to inject failures or hold an open in flight.
type fakeEngine struct {
	mu    sync.Mutex
	data  map[string]map[string][]byte // location -> flat key -> value
	calls []string                     // chronological call log

	opens    int
	destroys int

	openGate   chan struct{} // when set, Open blocks until closed
	openErr    error
	commitErr  error
	destroyErr error
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{data: map[string]map[string][]byte{}}
}

func (e *fakeEngine) record(call string) {
	e.mu.Lock()
	e.calls = append(e.calls, call)
	e.mu.Unlock()
}

func (e *fakeEngine) callLog() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

func (e *fakeEngine) openCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opens
}

func (e *fakeEngine) destroyCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.destroys
}

func (e *fakeEngine) Open(ctx context.Context, location string) (storage.Conn, error) {
	e.mu.Lock()
	e.opens++
	e.calls = append(e.calls, "open "+location)
	gate := e.openGate
	openErr := e.openErr
	e.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	e.record("open-settled " + location)
	if openErr != nil {
		return nil, openErr
	}

	e.mu.Lock()
	if _, ok := e.data[location]; !ok {
		e.data[location] = map[string][]byte{}
	}
	e.mu.Unlock()

	return &fakeConn{engine: e, location: location}, nil
}

func (e *fakeEngine) DestroyStore(ctx context.Context, location string) error {
	e.mu.Lock()
	e.destroys++
	e.calls = append(e.calls, "destroy "+location)
	err := e.destroyErr
	if err == nil {
		delete(e.data, location)
	}
	e.mu.Unlock()
	return err
}

func (e *fakeEngine) Close() error { return nil }

type fakeConn struct {
	engine   *fakeEngine
	location string
	closed   bool
}

func (c *fakeConn) Begin(mode storage.TxnMode, tables ...string) (storage.Txn, error) {
	if c.closed {
		return nil, storage.ErrClosed
	}
	scope := map[string]bool{}
	for _, t := range tables {
		scope[t] = true
	}
	return &fakeTxn{conn: c, mode: mode, scope: scope}, nil
}

func (c *fakeConn) Location() string { return c.location }

func (c *fakeConn) Close() error {
	c.engine.record("close " + c.location)
	c.closed = true
	return nil
}

type fakeTxn struct {
	conn   *fakeConn
	mode   storage.TxnMode
	scope  map[string]bool
	writes []func(store map[string][]byte)
	done   bool
}

func (t *fakeTxn) Table(name string) (storage.Table, error) {
	if !t.scope[name] {
		return nil, storage.ErrUnknownTable
	}
	return &fakeTable{txn: t, prefix: name + "\x00"}, nil
}

func (t *fakeTxn) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	if t.mode == storage.ReadOnly {
		return nil
	}

	e := t.conn.engine
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.commitErr != nil {
		return e.commitErr
	}

	store, ok := e.data[t.conn.location]
	if !ok {
		return storage.ErrClosed
	}
	for _, w := range t.writes {
		w(store)
	}
	return nil
}

func (t *fakeTxn) Discard() { t.done = true }

type fakeTable struct {
	txn    *fakeTxn
	prefix string
}

func (tb *fakeTable) Get(key []byte) ([]byte, error) {
	e := tb.txn.conn.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	store, ok := e.data[tb.txn.conn.location]
	if !ok {
		return nil, storage.ErrClosed
	}
	value, ok := store[tb.prefix+string(key)]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (tb *fakeTable) Put(key, value []byte) error {
	if tb.txn.mode != storage.ReadWrite {
		return storage.ErrReadOnlyTxn
	}
	k := tb.prefix + string(key)
	v := append([]byte(nil), value...)
	tb.txn.writes = append(tb.txn.writes, func(store map[string][]byte) {
		store[k] = v
	})
	return nil
}

func (tb *fakeTable) Delete(key []byte) error {
	if tb.txn.mode != storage.ReadWrite {
		return storage.ErrReadOnlyTxn
	}
	k := tb.prefix + string(key)
	tb.txn.writes = append(tb.txn.writes, func(store map[string][]byte) {
		delete(store, k)
	})
	return nil
}

func (tb *fakeTable) Scan(prefix []byte, fn func(key, value []byte) bool) error {
	e := tb.txn.conn.engine
	e.mu.Lock()
	store, ok := e.data[tb.txn.conn.location]
	if !ok {
		e.mu.Unlock()
		return storage.ErrClosed
	}
	full := tb.prefix + string(prefix)
	var keys []string
	for k := range store {
		if len(k) >= len(full) && k[:len(full)] == full {
			keys = append(keys, k)
		}
	}
	snapshot := make(map[string][]byte, len(keys))
	for _, k := range keys {
		snapshot[k] = store[k]
	}
	e.mu.Unlock()

	sort.Strings(keys)
	for _, k := range keys {
		if !fn([]byte(k[len(tb.prefix):]), snapshot[k]) {
			break
		}
	}
	return nil
}

var _ storage.Engine = (*fakeEngine)(nil)
