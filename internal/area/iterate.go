package area

import (
	"context"

	"github.com/yndnr/kvarea-go/internal/codec"
	"github.com/yndnr/kvarea-go/internal/core/domain"
	"github.com/yndnr/kvarea-go/internal/storage"
)

// Entries visits every entry in the area in key order, inside one
// fresh read-only transaction. The callback returns false to stop
// early. Each call starts a new iteration; there is no cursor carried
// across calls.
func (a *StorageArea) Entries(ctx context.Context, fn func(key, value any) bool) error {
	if a.closed.Load() {
		return domain.ErrAreaClosed
	}

	_, err := a.run(ctx, storage.ReadOnly, "entries", func(_ storage.Txn, tbl storage.Table) (any, error) {
		var decodeErr error
		err := tbl.Scan(nil, func(k, v []byte) bool {
			key, err := codec.DecodeKey(k)
			if err != nil {
				decodeErr = err
				return false
			}
			value, err := a.codec.DecodeValue(v)
			if err != nil {
				decodeErr = err
				return false
			}
			return fn(key, value)
		})
		if err != nil {
			return nil, err
		}
		return nil, decodeErr
	})
	return err
}

// Keys returns every key in the area, in key order.
func (a *StorageArea) Keys(ctx context.Context) ([]any, error) {
	keys := []any{}
	err := a.Entries(ctx, func(key, _ any) bool {
		keys = append(keys, key)
		return true
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Values returns every value in the area, in key order.
func (a *StorageArea) Values(ctx context.Context) ([]any, error) {
	values := []any{}
	err := a.Entries(ctx, func(_, value any) bool {
		values = append(values, value)
		return true
	})
	if err != nil {
		return nil, err
	}
	return values, nil
}
