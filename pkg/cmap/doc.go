// Package cmap provides a concurrent-safe sharded map with string keys.
//
// Sharding spreads lock contention across independent buckets, which
// performs better than a single RWMutex-guarded map when many
// goroutines touch disjoint keys. The shard for a key is chosen by a
// seeded maphash of the key.
package cmap
