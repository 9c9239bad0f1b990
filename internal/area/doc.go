// Package area implements the public storage-area abstraction.
//
// A StorageArea is a key/value surface over one logical table in the
// storage engine. Each area lazily opens its engine connection at most
// once concurrently, wraps every operation in its own transaction, and
// supports a destructive Clear that coexists safely with in-flight
// opens:
//
//   - The handle cache is a tagged state machine {absent, opening,
//     open}; all concurrent callers of an in-flight open share one
//     settlement, and a failed open resets the cache so the next
//     operation retries.
//   - The transaction runner maps a transaction's terminal outcome
//     (complete, error, abort) onto the operation's single result.
//   - Clear waits for any in-flight open to settle, invalidates the
//     cached handle, then destroys the backing store, in that order.
//
// Areas provide no ordering between independently issued operations
// beyond what the engine enforces for transactions on the same table;
// each operation owns its own transaction.
package area
