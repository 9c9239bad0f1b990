package area

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/yndnr/kvarea-go/internal/codec"
	"github.com/yndnr/kvarea-go/internal/core/domain"
	"github.com/yndnr/kvarea-go/internal/storage"
	"github.com/yndnr/kvarea-go/internal/telemetry/logger"
	"github.com/yndnr/kvarea-go/internal/telemetry/metric"
)

// StorageArea is a key/value abstraction over one logical table in
// the storage engine. The zero value is not usable; construct with
// New. All methods are safe for concurrent use.
type StorageArea struct {
	name   string
	engine storage.Engine

	codec   codec.Codec
	logger  logger.Logger
	metrics *metric.Registry
	limiter *rate.Limiter

	handle *handleCache

	descOnce sync.Once
	desc     Descriptor

	closed atomic.Bool
}

// Option configures a StorageArea.
type Option func(*StorageArea)

// WithLogger sets the area's logger.
func WithLogger(l logger.Logger) Option {
	return func(a *StorageArea) {
		a.logger = l
	}
}

// WithCodec sets the value codec, e.g. an encrypting codec.
func WithCodec(c codec.Codec) Option {
	return func(a *StorageArea) {
		a.codec = c
	}
}

// WithMetrics attaches a metrics registry.
func WithMetrics(m *metric.Registry) Option {
	return func(a *StorageArea) {
		a.metrics = m
	}
}

// WithRateLimit caps operation admission at limit ops/sec with the
// given burst.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(a *StorageArea) {
		a.limiter = rate.NewLimiter(limit, burst)
	}
}

// New creates a storage area named name backed by engine. The area's
// store is opened lazily on first use.
func New(engine storage.Engine, name string, opts ...Option) (*StorageArea, error) {
	if engine == nil {
		return nil, domain.ErrMissingArgument.WithDetails("engine")
	}
	if name == "" {
		return nil, domain.ErrMissingArgument.WithDetails("area name")
	}

	a := &StorageArea{
		name:   name,
		engine: engine,
		codec:  codec.NewStructured(),
		logger: logger.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.handle = newHandleCache(func(ctx context.Context) (storage.Conn, error) {
		conn, err := engine.Open(ctx, a.location())
		a.metrics.ObserveOpen(a.name, err)
		return conn, err
	})

	return a, nil
}

// Name returns the area's immutable name.
func (a *StorageArea) Name() string {
	return a.name
}

// BackingStore returns the descriptor identifying the area's
// underlying table. It is computed at most once per area instance and
// identical for the area's lifetime, across any Clear calls.
func (a *StorageArea) BackingStore() Descriptor {
	a.descOnce.Do(func() {
		a.desc = Descriptor{
			Location: a.location(),
			Table:    tableName,
			Version:  schemaVersion,
		}
	})
	return a.desc
}

// Get returns the value stored under key, or nil if no entry exists.
// Invalid keys fail with domain.ErrInvalidKey before any engine
// interaction.
func (a *StorageArea) Get(ctx context.Context, key any) (any, error) {
	if a.closed.Load() {
		return nil, domain.ErrAreaClosed
	}

	ek, err := codec.EncodeKey(key)
	if err != nil {
		return nil, err
	}

	return a.run(ctx, storage.ReadOnly, "get", func(_ storage.Txn, tbl storage.Table) (any, error) {
		raw, err := tbl.Get(ek)
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil // absent
		}
		if err != nil {
			return nil, err
		}
		return a.codec.DecodeValue(raw)
	})
}

// Set stores value under key, replacing any existing entry. A nil
// value is the absent sentinel and deletes the entry. Serialization
// failures surface synchronously, before any transaction is created.
func (a *StorageArea) Set(ctx context.Context, key, value any) error {
	if a.closed.Load() {
		return domain.ErrAreaClosed
	}

	ek, err := codec.EncodeKey(key)
	if err != nil {
		return err
	}

	var ev []byte
	if value != nil {
		ev, err = a.codec.EncodeValue(value)
		if err != nil {
			return err
		}
	}

	_, err = a.run(ctx, storage.ReadWrite, "set", func(_ storage.Txn, tbl storage.Table) (any, error) {
		if value == nil {
			return nil, tbl.Delete(ek)
		}
		return nil, tbl.Put(ek, ev)
	})
	return err
}

// Delete removes the entry under key. Deleting an absent key
// succeeds.
func (a *StorageArea) Delete(ctx context.Context, key any) error {
	return a.Set(ctx, key, nil)
}

// Clear destroys the area's entire backing store. If an open is in
// flight it first waits for that open to settle, then invalidates the
// cached handle, and only then destroys the store; the next operation
// after Clear triggers a fresh open.
func (a *StorageArea) Clear(ctx context.Context) error {
	if a.closed.Load() {
		return domain.ErrAreaClosed
	}

	conn, err := a.handle.invalidate(ctx)
	if err != nil {
		return err
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			a.logger.Warn("close connection during clear", "area", a.name, "error", err)
		}
	}

	if err := a.engine.DestroyStore(ctx, a.location()); err != nil {
		a.metrics.ObserveClear(a.name, err)
		return domain.ErrDestroyFailure.WithCause(err)
	}

	a.metrics.ObserveClear(a.name, nil)
	a.logger.Info("area cleared", "area", a.name)
	return nil
}

// Close releases the area's cached connection, waiting for any
// in-flight open to settle first. Further operations fail with
// domain.ErrAreaClosed. Close does not destroy stored data.
func (a *StorageArea) Close(ctx context.Context) error {
	if !a.closed.CompareAndSwap(false, true) {
		return nil
	}

	conn, err := a.handle.invalidate(ctx)
	if err != nil {
		return err
	}
	if conn != nil {
		return conn.Close()
	}
	return nil
}

func (a *StorageArea) location() string {
	return locationPrefix + a.name
}
