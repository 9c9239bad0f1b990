package area

import (
	"context"
	"sync"

	"github.com/yndnr/kvarea-go/internal/core/domain"
	"github.com/yndnr/kvarea-go/internal/storage"
)

// handleState tags the cache's lifecycle position. Exactly one
// non-absent state exists at a time.
type handleState int

const (
	stateAbsent  handleState = iota // no handle, no open in flight
	stateOpening                    // one shared open in flight
	stateOpen                       // handle cached
)

// openCall is one shared open attempt. All callers that observe it
// wait on done and read the same settlement.
type openCall struct {
	done chan struct{}
	conn storage.Conn
	err  error
}

// handleCache memoizes an area's engine connection. It guarantees at
// most one open attempt in flight per area, and lets clear wait for an
// in-flight open to settle before invalidating.
type handleCache struct {
	open func(ctx context.Context) (storage.Conn, error)

	mu      sync.Mutex
	state   handleState
	conn    storage.Conn
	pending *openCall
}

func newHandleCache(open func(ctx context.Context) (storage.Conn, error)) *handleCache {
	return &handleCache{open: open}
}

// acquire returns the cached connection, joins the in-flight open if
// one exists, or starts the single open otherwise.
//
// A failed open is delivered to every waiter and then forgotten: the
// cache returns to absent so the next caller retries instead of
// replaying the same failure forever.
func (h *handleCache) acquire(ctx context.Context) (storage.Conn, error) {
	h.mu.Lock()
	switch h.state {
	case stateOpen:
		conn := h.conn
		h.mu.Unlock()
		return conn, nil

	case stateOpening:
		call := h.pending
		h.mu.Unlock()
		select {
		case <-call.done:
			return call.conn, call.err
		case <-ctx.Done():
			// The caller gives up waiting; the open itself proceeds
			// and settles the shared call for everyone else.
			return nil, ctx.Err()
		}
	}

	call := &openCall{done: make(chan struct{})}
	h.state = stateOpening
	h.pending = call
	h.mu.Unlock()

	conn, err := h.open(ctx)

	h.mu.Lock()
	h.pending = nil
	if err != nil {
		call.err = domain.ErrOpenFailure.WithCause(err)
		h.state = stateAbsent
	} else {
		call.conn = conn
		h.conn = conn
		h.state = stateOpen
	}
	h.mu.Unlock()

	close(call.done)
	return call.conn, call.err
}

// invalidate resets the cache to absent and returns the connection
// that was cached, if any, for the caller to close. If an open is in
// flight, invalidate first waits for it to settle, whatever its
// outcome; destroying storage under a half-established handle is the
// race this ordering exists to prevent.
func (h *handleCache) invalidate(ctx context.Context) (storage.Conn, error) {
	for {
		h.mu.Lock()
		switch h.state {
		case stateAbsent:
			h.mu.Unlock()
			return nil, nil

		case stateOpen:
			conn := h.conn
			h.conn = nil
			h.state = stateAbsent
			h.mu.Unlock()
			return conn, nil

		default: // stateOpening
			call := h.pending
			h.mu.Unlock()
			select {
			case <-call.done:
				// Settled; re-examine the state. Another open may have
				// started meanwhile, in which case we wait again.
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
}
