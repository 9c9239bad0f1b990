package area

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/kvarea-go/internal/core/domain"
	"github.com/yndnr/kvarea-go/internal/storage"
	"github.com/yndnr/kvarea-go/internal/telemetry/metric"
)

// workFunc is one operation's unit of work against an open
// transaction and the area's table. It issues requests and returns the
// operation's result.
type workFunc func(txn storage.Txn, tbl storage.Table) (any, error)

// run wraps one unit of work in a fresh transaction: acquire the
// handle, begin, execute, and map the transaction's terminal outcome
// onto the operation's single result. Commit success is complete,
// a conflict is abort, anything else is error; a read-only commit just
// releases the snapshot. The result settles exactly once by
// construction.
func (a *StorageArea) run(ctx context.Context, mode storage.TxnMode, op string, work workFunc) (any, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	opID := ulid.Make().String()
	log := a.logger.WithContext(ctx).With("area", a.name, "op", op, "op_id", opID)
	defer func() {
		a.metrics.ObserveOp(a.name, op, time.Since(start))
	}()

	conn, err := a.handle.acquire(ctx)
	if err != nil {
		log.Warn("open failed", "error", err)
		return nil, err
	}

	txn, err := conn.Begin(mode, tableName)
	if err != nil {
		a.metrics.ObserveTxn(a.name, mode.String(), metric.OutcomeError)
		return nil, domain.ErrTransactionFailure.WithCause(err)
	}
	defer txn.Discard()

	tbl, err := txn.Table(tableName)
	if err != nil {
		a.metrics.ObserveTxn(a.name, mode.String(), metric.OutcomeError)
		return nil, domain.ErrTransactionFailure.WithCause(err)
	}

	result, err := work(txn, tbl)
	if err != nil {
		a.metrics.ObserveTxn(a.name, mode.String(), metric.OutcomeError)
		log.Debug("operation failed", "error", err)
		if domain.IsDomainError(err, "") {
			return nil, err
		}
		return nil, domain.ErrTransactionFailure.WithCause(err)
	}

	if err := txn.Commit(); err != nil {
		if errors.Is(err, storage.ErrTxnConflict) {
			a.metrics.ObserveTxn(a.name, mode.String(), metric.OutcomeAbort)
			log.Debug("transaction aborted", "error", err)
			return nil, domain.ErrTransactionAborted.WithCause(err)
		}
		a.metrics.ObserveTxn(a.name, mode.String(), metric.OutcomeError)
		log.Debug("transaction failed", "error", err)
		return nil, domain.ErrTransactionFailure.WithCause(err)
	}

	a.metrics.ObserveTxn(a.name, mode.String(), metric.OutcomeComplete)
	log.Debug("operation complete", "elapsed", time.Since(start))
	return result, nil
}
