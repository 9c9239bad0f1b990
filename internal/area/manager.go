package area

import (
	"context"

	"github.com/yndnr/kvarea-go/internal/core/domain"
	"github.com/yndnr/kvarea-go/internal/storage"
	"github.com/yndnr/kvarea-go/pkg/cmap"
)

// DefaultAreaName is the name of the default storage area.
const DefaultAreaName = "default"

// Manager hands out storage areas by name, caching one instance per
// name so concurrent callers share the same handle cache.
type Manager struct {
	engine storage.Engine
	areas  *cmap.Map[*StorageArea]
	opts   []Option
}

// NewManager creates a manager over engine. opts apply to every area
// the manager creates.
func NewManager(engine storage.Engine, opts ...Option) (*Manager, error) {
	if engine == nil {
		return nil, domain.ErrMissingArgument.WithDetails("engine")
	}
	return &Manager{
		engine: engine,
		areas:  cmap.New[*StorageArea](),
		opts:   opts,
	}, nil
}

// Area returns the storage area with the given name, creating it on
// first request. The same name always yields the same instance.
func (m *Manager) Area(name string) (*StorageArea, error) {
	if name == "" {
		return nil, domain.ErrMissingArgument.WithDetails("area name")
	}

	var createErr error
	a, _ := m.areas.GetOrCompute(name, func() *StorageArea {
		created, err := New(m.engine, name, m.opts...)
		if err != nil {
			createErr = err
			return nil
		}
		return created
	})
	if createErr != nil {
		m.areas.Delete(name)
		return nil, createErr
	}
	return a, nil
}

// Default returns the default storage area.
func (m *Manager) Default() (*StorageArea, error) {
	return m.Area(DefaultAreaName)
}

// Close closes every area the manager created. Stored data is kept.
func (m *Manager) Close(ctx context.Context) error {
	var firstErr error
	m.areas.Range(func(_ string, a *StorageArea) bool {
		if err := a.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
		return true
	})
	m.areas.Clear()
	return firstErr
}
