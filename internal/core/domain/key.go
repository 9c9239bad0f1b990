// Package domain defines the core domain models for KVArea.
package domain

import (
	"math"
	"time"
)

// maxKeyDepth bounds recursion through nested sequence keys. Cyclic
// sequences ([]any containing itself) exceed the bound and are rejected
// instead of recursing forever.
const maxKeyDepth = 64

// maxSafeInteger is the largest integer exactly representable in the
// engine's numeric key type (an IEEE 754 double).
const maxSafeInteger = 1 << 53

// ValidKey reports whether key is acceptable to the storage engine.
//
// Valid keys are strings, finite numbers, timestamps, byte buffers, and
// sequences ([]any) whose elements are all valid keys, nested to any
// reasonable depth. nil is never a valid key; it is the absent-value
// sentinel used by Set to mean "delete".
//
// ValidKey is pure and performs no engine interaction. Operations that
// take a key must check it first and fail fast on false.
func ValidKey(key any) bool {
	return validKey(key, 0)
}

func safeInteger(k int64) bool {
	return k >= -maxSafeInteger && k <= maxSafeInteger
}

func validKey(key any, depth int) bool {
	if depth >= maxKeyDepth {
		return false
	}

	switch k := key.(type) {
	case string:
		return true
	case []byte:
		return true
	case time.Time:
		return true
	case int8, int16, int32, uint8, uint16, uint32:
		return true
	case int:
		return safeInteger(int64(k))
	case int64:
		// Beyond ±2^53 the engine's numeric type loses precision and
		// two distinct keys could collide.
		return safeInteger(k)
	case uint:
		return uint64(k) <= maxSafeInteger
	case uint64:
		return k <= maxSafeInteger
	case float32:
		return !math.IsNaN(float64(k)) && !math.IsInf(float64(k), 0)
	case float64:
		return !math.IsNaN(k) && !math.IsInf(k, 0)
	case []any:
		for _, elem := range k {
			if !validKey(elem, depth+1) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
