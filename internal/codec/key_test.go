// Package codec serializes keys and values for the storage engine.
package codec

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/yndnr/kvarea-go/internal/core/domain"
)

func TestEncodeKey_RoundTrip(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 589000000, time.UTC)

	tests := []struct {
		name string
		key  any
		want any // decoded form: numbers as float64, timestamps UTC
	}{
		{"string", "sessions", "sessions"},
		{"string with NUL", "a\x00b", "a\x00b"},
		{"int", 42, float64(42)},
		{"negative", -1.5, float64(-1.5)},
		{"zero", 0, float64(0)},
		{"binary", []byte{0x00, 0xff}, []byte{0x00, 0xff}},
		{"timestamp", ts, ts},
		{"sequence", []any{"a", 2}, []any{"a", float64(2)}},
		{"empty sequence", []any{}, []any{}},
		{"nested sequence", []any{[]any{"x"}, 1}, []any{[]any{"x"}, float64(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := EncodeKey(tt.key)
			if err != nil {
				t.Fatalf("EncodeKey() error = %v", err)
			}

			decoded, err := DecodeKey(encoded)
			if err != nil {
				t.Fatalf("DecodeKey() error = %v", err)
			}

			if !reflect.DeepEqual(decoded, tt.want) {
				t.Errorf("round trip = %#v, want %#v", decoded, tt.want)
			}
		})
	}
}

func TestEncodeKey_Invalid(t *testing.T) {
	for _, key := range []any{nil, true, map[string]any{}, []any{nil}} {
		if _, err := EncodeKey(key); !errors.Is(err, domain.ErrInvalidKey) {
			t.Errorf("EncodeKey(%v) error = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestEncodeKey_Ordering(t *testing.T) {
	// Each pair must encode such that bytes.Compare(lo, hi) < 0.
	pairs := []struct {
		name   string
		lo, hi any
	}{
		{"numbers", -10, 3},
		{"negative numbers", -10.5, -2.25},
		{"fractions", 1.1, 1.2},
		{"strings", "abc", "abd"},
		{"string prefix", "ab", "abc"},
		{"string with NUL vs longer", "a", "a\x00"},
		{"number before timestamp", 1e15, time.Unix(0, 0)},
		{"timestamp before string", time.Now(), ""},
		{"string before binary", "\xff\xff", []byte{0x00}},
		{"binary before sequence", []byte{0xff}, []any{}},
		{"sequence prefix", []any{"a"}, []any{"a", "b"}},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			lo, err := EncodeKey(tt.lo)
			if err != nil {
				t.Fatal(err)
			}
			hi, err := EncodeKey(tt.hi)
			if err != nil {
				t.Fatal(err)
			}
			if bytes.Compare(lo, hi) >= 0 {
				t.Errorf("EncodeKey(%v) should sort before EncodeKey(%v)", tt.lo, tt.hi)
			}
		})
	}
}

func TestDecodeKey_Errors(t *testing.T) {
	tests := []struct {
		name string
		b    []byte
	}{
		{"empty", nil},
		{"unknown tag", []byte{0x99}},
		{"truncated number", []byte{keyTagNumber, 0x01}},
		{"unterminated string", []byte{keyTagString, 'a'}},
		{"unterminated sequence", []byte{keyTagSequence, keyTagNumber, 0, 0, 0, 0, 0, 0, 0, 0}},
		{"trailing bytes", append([]byte{keyTagString, 'a', 0x00}, 0xAA)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeKey(tt.b); err == nil {
				t.Error("DecodeKey() should fail")
			}
		})
	}
}
