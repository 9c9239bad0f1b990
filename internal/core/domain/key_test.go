// Package domain defines the core domain models for KVArea.
package domain

import (
	"math"
	"testing"
	"time"
)

func TestValidKey(t *testing.T) {
	tests := []struct {
		name  string
		key   any
		valid bool
	}{
		{"string", "session-a", true},
		{"empty string", "", true},
		{"int", 42, true},
		{"negative int", -7, true},
		{"int64", int64(1 << 40), true},
		{"int64 at bound", int64(maxSafeInteger), true},
		{"int64 out of range", int64(maxSafeInteger) + 1, false},
		{"int64 negative bound", int64(-maxSafeInteger), true},
		{"int64 below negative bound", int64(-maxSafeInteger) - 1, false},
		{"uint32", uint32(9), true},
		{"uint64 in range", uint64(maxSafeInteger), true},
		{"uint64 out of range", uint64(maxSafeInteger) + 1, false},
		{"uint out of range", uint(maxSafeInteger) + 1, false},
		{"float64", 3.14, true},
		{"float64 NaN", math.NaN(), false},
		{"float64 +Inf", math.Inf(1), false},
		{"float32", float32(1.5), true},
		{"float32 NaN", float32(math.NaN()), false},
		{"timestamp", time.Now(), true},
		{"byte buffer", []byte{0x01, 0x02}, true},
		{"empty byte buffer", []byte{}, true},
		{"nil", nil, false},
		{"bool", true, false},
		{"struct", struct{}{}, false},
		{"map", map[string]any{"a": 1}, false},
		{"sequence of valid keys", []any{"a", 1, []byte{0xff}}, true},
		{"empty sequence", []any{}, true},
		{"nested sequence", []any{"a", []any{1, []any{"b"}}}, true},
		{"sequence with invalid element", []any{"a", nil}, false},
		{"sequence with NaN", []any{math.NaN()}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidKey(tt.key); got != tt.valid {
				t.Errorf("ValidKey(%v) = %v, want %v", tt.key, got, tt.valid)
			}
		})
	}
}

func TestValidKey_CyclicSequence(t *testing.T) {
	cyclic := []any{"a"}
	cyclic[0] = cyclic

	if ValidKey(cyclic) {
		t.Error("cyclic sequence should be rejected")
	}
}

func TestValidKey_DeeplyNested(t *testing.T) {
	key := any("leaf")
	for i := 0; i < maxKeyDepth+8; i++ {
		key = []any{key}
	}

	if ValidKey(key) {
		t.Error("nesting beyond maxKeyDepth should be rejected")
	}
}
