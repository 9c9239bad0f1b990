// Package codec serializes keys and values for the storage engine.
package codec

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/yndnr/kvarea-go/internal/core/domain"
)

// Key type tags. Tag values follow the engine's key-type ordering
// contract, so encoded keys of different types compare correctly as
// raw bytes: number < timestamp < string < binary < sequence.
const (
	keyTagNumber   byte = 0x10
	keyTagTime     byte = 0x20
	keyTagString   byte = 0x30
	keyTagBinary   byte = 0x40
	keyTagSequence byte = 0x50
)

// keyTerminator ends escaped byte strings and sequences. Escaped
// payload bytes never produce a bare 0x00.
const keyTerminator byte = 0x00

// EncodeKey serializes key into an order-preserving byte form used as
// the engine-level key. Invalid keys fail with domain.ErrInvalidKey.
func EncodeKey(key any) ([]byte, error) {
	if !domain.ValidKey(key) {
		return nil, domain.ErrInvalidKey.WithDetails(fmt.Sprintf("type %T", key))
	}
	return appendKey(nil, key), nil
}

// DecodeKey deserializes a key previously produced by EncodeKey.
// Numbers decode as float64 and timestamps in UTC.
func DecodeKey(b []byte) (any, error) {
	key, n, err := decodeKey(b)
	if err != nil {
		return nil, err
	}
	if n != len(b) {
		return nil, fmt.Errorf("codec: trailing bytes after key")
	}
	return key, nil
}

// appendKey assumes key already passed domain.ValidKey.
func appendKey(dst []byte, key any) []byte {
	switch k := key.(type) {
	case string:
		dst = append(dst, keyTagString)
		dst = appendEscaped(dst, []byte(k))
	case []byte:
		dst = append(dst, keyTagBinary)
		dst = appendEscaped(dst, k)
	case time.Time:
		dst = append(dst, keyTagTime)
		dst = binary.BigEndian.AppendUint64(dst, uint64(k.UnixMicro())^(1<<63))
	case []any:
		dst = append(dst, keyTagSequence)
		for _, elem := range k {
			dst = appendKey(dst, elem)
		}
		dst = append(dst, keyTerminator)
	default:
		dst = append(dst, keyTagNumber)
		dst = binary.BigEndian.AppendUint64(dst, orderedFloatBits(toFloat(k)))
	}
	return dst
}

// appendEscaped writes payload with 0x00 escaped as 0x00 0xFF, then a
// bare 0x00 terminator. A longer string that extends a shorter one
// still sorts after it: the terminator's follow-up (end of key or a
// tag byte < 0xFF) orders below the escape byte.
func appendEscaped(dst, payload []byte) []byte {
	for _, b := range payload {
		if b == 0x00 {
			dst = append(dst, 0x00, 0xFF)
			continue
		}
		dst = append(dst, b)
	}
	return append(dst, keyTerminator)
}

// orderedFloatBits maps an IEEE 754 double onto uint64 such that the
// unsigned byte order of the result matches numeric order.
func orderedFloatBits(f float64) uint64 {
	bits := math.Float64bits(f)
	if bits&(1<<63) != 0 {
		return ^bits
	}
	return bits ^ (1 << 63)
}

func unorderedFloatBits(u uint64) float64 {
	if u&(1<<63) != 0 {
		return math.Float64frombits(u ^ (1 << 63))
	}
	return math.Float64frombits(^u)
}

func toFloat(k any) float64 {
	switch n := k.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

// decodeKey parses one key from the front of b and returns it with the
// number of bytes consumed.
func decodeKey(b []byte) (any, int, error) {
	if len(b) == 0 {
		return nil, 0, fmt.Errorf("codec: empty key payload")
	}

	switch b[0] {
	case keyTagNumber:
		if len(b) < 9 {
			return nil, 0, fmt.Errorf("codec: truncated number key")
		}
		return unorderedFloatBits(binary.BigEndian.Uint64(b[1:9])), 9, nil

	case keyTagTime:
		if len(b) < 9 {
			return nil, 0, fmt.Errorf("codec: truncated timestamp key")
		}
		micros := int64(binary.BigEndian.Uint64(b[1:9]) ^ (1 << 63))
		return time.UnixMicro(micros).UTC(), 9, nil

	case keyTagString:
		payload, n, err := decodeEscaped(b[1:])
		if err != nil {
			return nil, 0, err
		}
		return string(payload), 1 + n, nil

	case keyTagBinary:
		payload, n, err := decodeEscaped(b[1:])
		if err != nil {
			return nil, 0, err
		}
		return payload, 1 + n, nil

	case keyTagSequence:
		seq := []any{}
		pos := 1
		for {
			if pos >= len(b) {
				return nil, 0, fmt.Errorf("codec: unterminated sequence key")
			}
			if b[pos] == keyTerminator {
				return seq, pos + 1, nil
			}
			elem, n, err := decodeKey(b[pos:])
			if err != nil {
				return nil, 0, err
			}
			seq = append(seq, elem)
			pos += n
		}

	default:
		return nil, 0, fmt.Errorf("codec: unknown key tag 0x%02x", b[0])
	}
}

func decodeEscaped(b []byte) ([]byte, int, error) {
	payload := []byte{}
	pos := 0
	for pos < len(b) {
		if b[pos] != 0x00 {
			payload = append(payload, b[pos])
			pos++
			continue
		}
		if pos+1 < len(b) && b[pos+1] == 0xFF {
			payload = append(payload, 0x00)
			pos += 2
			continue
		}
		return payload, pos + 1, nil // terminator
	}
	return nil, 0, fmt.Errorf("codec: unterminated byte string")
}
