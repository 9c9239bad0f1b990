// Package storage defines the transactional engine boundary for KVArea.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/kvarea-go/pkg/cmap"
)

// Config configures the Badger engine.
type Config struct {
	// Dir is the root directory; each store location gets its own
	// subdirectory beneath it.
	Dir string

	// InMemory keeps all stores in memory. Nothing is persisted;
	// intended for tests and ephemeral use.
	InMemory bool

	// Badger holds Badger-specific tuning parameters.
	Badger BadgerOptions
}

// BadgerOptions contains Badger-specific tuning parameters.
type BadgerOptions struct {
	// CacheSize is the block cache size in bytes. Default: 64MB.
	CacheSize int64

	// ValueLogFileSize is the max value log file size in bytes.
	// Default: 256MB.
	ValueLogFileSize int64

	// NumMemtables is the number of memtables. Default: 2.
	NumMemtables int

	// SyncWrites enables fsync after each write. Default: false.
	SyncWrites bool

	// DisableConflictDetection turns off transaction conflict
	// detection. Detection must stay on for the abort outcome to be
	// reported; disabling it trades that for write throughput.
	// Default: false (detection on).
	DisableConflictDetection bool
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig(dir string) Config {
	return Config{
		Dir: dir,
		Badger: BadgerOptions{
			CacheSize:        64 << 20,
			ValueLogFileSize: 256 << 20,
			NumMemtables:     2,
		},
	}
}

// BadgerEngine implements Engine using Badger v3. Each store location
// maps to its own Badger database directory.
type BadgerEngine struct {
	cfg    Config
	logger *slog.Logger

	conns  *cmap.Map[*badgerConn]
	closed atomic.Bool

	// Prometheus metrics, nil until RegisterMetrics.
	metricsOpens     prometheus.Counter
	metricsDestroys  prometheus.Counter
	metricsOpenConns prometheus.Gauge
}

// NewBadgerEngine creates a new Badger-based engine.
func NewBadgerEngine(cfg Config, logger *slog.Logger) (*BadgerEngine, error) {
	if cfg.Dir == "" && !cfg.InMemory {
		return nil, fmt.Errorf("badger: dir is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Zero tuning fields take the documented defaults so a bare
	// Config{InMemory: true} is usable; Badger itself rejects a zero
	// value log file size.
	def := DefaultConfig(cfg.Dir)
	if cfg.Badger.CacheSize == 0 {
		cfg.Badger.CacheSize = def.Badger.CacheSize
	}
	if cfg.Badger.ValueLogFileSize == 0 {
		cfg.Badger.ValueLogFileSize = def.Badger.ValueLogFileSize
	}
	if cfg.Badger.NumMemtables == 0 {
		cfg.Badger.NumMemtables = def.Badger.NumMemtables
	}

	return &BadgerEngine{
		cfg:    cfg,
		logger: logger,
		conns:  cmap.New[*badgerConn](),
	}, nil
}

// Open implements Engine.
func (e *BadgerEngine) Open(ctx context.Context, location string) (Conn, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn := &badgerConn{engine: e, location: location}

	// Reserve the location before the (slow) open so a concurrent
	// caller fails fast instead of racing Badger's directory lock.
	if _, loaded := e.conns.GetOrSet(location, conn); loaded {
		return nil, fmt.Errorf("open %q: %w", location, ErrLocationBusy)
	}

	// Badger rejects disk paths in in-memory mode.
	dir := ""
	if !e.cfg.InMemory {
		dir = e.dirFor(location)
	}
	opts := badger.DefaultOptions(dir)
	opts.InMemory = e.cfg.InMemory
	opts.Logger = &badgerLogger{logger: e.logger}
	opts.BlockCacheSize = e.cfg.Badger.CacheSize
	opts.ValueLogFileSize = e.cfg.Badger.ValueLogFileSize
	opts.NumMemtables = e.cfg.Badger.NumMemtables
	opts.SyncWrites = e.cfg.Badger.SyncWrites
	opts.DetectConflicts = !e.cfg.Badger.DisableConflictDetection

	db, err := badger.Open(opts)
	if err != nil {
		e.conns.Delete(location)
		return nil, fmt.Errorf("open %q: %w", location, err)
	}
	conn.db = db

	if e.metricsOpens != nil {
		e.metricsOpens.Inc()
		e.metricsOpenConns.Inc()
	}
	e.logger.Debug("store opened", "location", location)

	return conn, nil
}

// DestroyStore implements Engine.
func (e *BadgerEngine) DestroyStore(ctx context.Context, location string) error {
	if e.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.conns.Has(location) {
		return fmt.Errorf("destroy %q: %w", location, ErrLocationBusy)
	}

	// In-memory stores vanish when their connection closes; there is
	// nothing on disk to remove.
	if !e.cfg.InMemory {
		if err := os.RemoveAll(e.dirFor(location)); err != nil {
			return fmt.Errorf("destroy %q: %w", location, err)
		}
	}

	if e.metricsDestroys != nil {
		e.metricsDestroys.Inc()
	}
	e.logger.Info("store destroyed", "location", location)
	return nil
}

// Close implements Engine.
func (e *BadgerEngine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}

	// Collect first: conn.Close deletes from the map, and Range holds
	// the shard lock while invoking the callback.
	var open []*badgerConn
	e.conns.Range(func(_ string, conn *badgerConn) bool {
		open = append(open, conn)
		return true
	})

	var firstErr error
	for _, conn := range open {
		if err := conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	e.logger.Info("badger engine closed")
	return firstErr
}

// RegisterMetrics registers engine metrics with Prometheus. Call once
// during initialization. Returns the engine for chaining.
func (e *BadgerEngine) RegisterMetrics(registry *prometheus.Registry) *BadgerEngine {
	e.metricsOpens = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "kvarea",
		Subsystem: "badger",
		Name:      "opens_total",
		Help:      "Total store open calls that succeeded",
	})
	e.metricsDestroys = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "kvarea",
		Subsystem: "badger",
		Name:      "destroys_total",
		Help:      "Total destroy-store calls that succeeded",
	})
	e.metricsOpenConns = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "kvarea",
		Subsystem: "badger",
		Name:      "open_connections",
		Help:      "Currently open store connections",
	})

	registry.MustRegister(e.metricsOpens, e.metricsDestroys, e.metricsOpenConns)
	return e
}

// dirFor maps a store location onto a filesystem directory. Location
// strings may contain characters the filesystem can't take, so those
// are hex-escaped to keep distinct locations distinct.
func (e *BadgerEngine) dirFor(location string) string {
	var sb strings.Builder
	for _, b := range []byte(location) {
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9', b == '.', b == '-', b == '_':
			sb.WriteByte(b)
		default:
			fmt.Fprintf(&sb, "%%%02x", b)
		}
	}
	return filepath.Join(e.cfg.Dir, sb.String())
}

// badgerConn is an open connection to one location's Badger database.
type badgerConn struct {
	engine   *BadgerEngine
	location string
	db       *badger.DB
	closed   atomic.Bool
}

// Begin implements Conn.
func (c *badgerConn) Begin(mode TxnMode, tables ...string) (Txn, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	scope := make(map[string]struct{}, len(tables))
	for _, name := range tables {
		scope[name] = struct{}{}
	}

	return &badgerTxn{
		txn:   c.db.NewTransaction(mode == ReadWrite),
		mode:  mode,
		scope: scope,
	}, nil
}

// Location implements Conn.
func (c *badgerConn) Location() string {
	return c.location
}

// Close implements Conn.
func (c *badgerConn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	c.engine.conns.Delete(c.location)
	if c.engine.metricsOpenConns != nil {
		c.engine.metricsOpenConns.Dec()
	}

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close %q: %w", c.location, err)
	}
	return nil
}

// badgerTxn wraps a *badger.Txn with table scoping and outcome mapping.
type badgerTxn struct {
	txn   *badger.Txn
	mode  TxnMode
	done  bool
	scope map[string]struct{}
}

// Table implements Txn.
func (t *badgerTxn) Table(name string) (Table, error) {
	if _, ok := t.scope[name]; !ok {
		return nil, fmt.Errorf("table %q: %w", name, ErrUnknownTable)
	}
	return &badgerTable{txn: t, prefix: append([]byte(name), 0x00)}, nil
}

// Commit implements Txn.
func (t *badgerTxn) Commit() error {
	if t.done {
		return nil
	}
	t.done = true

	if t.mode == ReadOnly {
		t.txn.Discard()
		return nil
	}

	if err := t.txn.Commit(); err != nil {
		if errors.Is(err, badger.ErrConflict) {
			return ErrTxnConflict
		}
		return err
	}
	return nil
}

// Discard implements Txn.
func (t *badgerTxn) Discard() {
	t.done = true
	t.txn.Discard()
}

// badgerTable namespaces keys within the transaction by table prefix.
type badgerTable struct {
	txn    *badgerTxn
	prefix []byte
}

func (tb *badgerTable) fullKey(key []byte) []byte {
	full := make([]byte, 0, len(tb.prefix)+len(key))
	full = append(full, tb.prefix...)
	return append(full, key...)
}

// Get implements Table.
func (tb *badgerTable) Get(key []byte) ([]byte, error) {
	item, err := tb.txn.txn.Get(tb.fullKey(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return item.ValueCopy(nil)
}

// Put implements Table.
func (tb *badgerTable) Put(key, value []byte) error {
	if tb.txn.mode != ReadWrite {
		return ErrReadOnlyTxn
	}
	return tb.txn.txn.Set(tb.fullKey(key), value)
}

// Delete implements Table.
func (tb *badgerTable) Delete(key []byte) error {
	if tb.txn.mode != ReadWrite {
		return ErrReadOnlyTxn
	}
	return tb.txn.txn.Delete(tb.fullKey(key))
}

// Scan implements Table.
func (tb *badgerTable) Scan(prefix []byte, fn func(key, value []byte) bool) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = tb.fullKey(prefix)

	it := tb.txn.txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		key := item.KeyCopy(nil)[len(tb.prefix):]
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if !fn(key, value) {
			break
		}
	}
	return nil
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
