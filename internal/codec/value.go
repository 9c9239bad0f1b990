// Package codec serializes keys and values for the storage engine.
package codec

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/yndnr/kvarea-go/internal/core/domain"
)

// Value format tags. The first byte of every encoded value selects the
// payload format.
const (
	formatStructured byte = 0x01 // protobuf structpb payload
	formatBytes      byte = 0x02 // raw byte buffer
)

// maxValueDepth bounds recursion through nested values. Cyclic values
// exceed the bound and are rejected synchronously instead of recursing
// forever during encoding.
const maxValueDepth = 64

// Codec serializes application values for storage.
type Codec interface {
	// EncodeValue serializes v. Values the codec cannot represent fail
	// with domain.ErrUnserializableValue.
	EncodeValue(v any) ([]byte, error)

	// DecodeValue deserializes a previously encoded value.
	DecodeValue(b []byte) (any, error)
}

// Structured encodes JSON-like values (nil, bool, numbers, strings,
// []any, map[string]any) via protobuf structpb, and raw []byte buffers
// under their own format tag.
//
// Numbers decode as float64 regardless of the Go numeric type that was
// stored, matching the engine's structural-value semantics.
type Structured struct{}

// NewStructured creates the default value codec.
func NewStructured() *Structured {
	return &Structured{}
}

// EncodeValue implements Codec.
func (c *Structured) EncodeValue(v any) ([]byte, error) {
	// Top-level byte buffers are stored raw so they round-trip as bytes
	// instead of decaying to a base64 string inside the structured form.
	if b, ok := v.([]byte); ok {
		out := make([]byte, 1+len(b))
		out[0] = formatBytes
		copy(out[1:], b)
		return out, nil
	}

	if err := checkValue(v, 0); err != nil {
		return nil, err
	}

	pb, err := structpb.NewValue(v)
	if err != nil {
		return nil, domain.ErrUnserializableValue.WithCause(err)
	}

	payload, err := proto.Marshal(pb)
	if err != nil {
		return nil, domain.ErrUnserializableValue.WithCause(err)
	}

	out := make([]byte, 1+len(payload))
	out[0] = formatStructured
	copy(out[1:], payload)
	return out, nil
}

// DecodeValue implements Codec.
func (c *Structured) DecodeValue(b []byte) (any, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("codec: empty value payload")
	}

	switch b[0] {
	case formatBytes:
		out := make([]byte, len(b)-1)
		copy(out, b[1:])
		return out, nil

	case formatStructured:
		var pb structpb.Value
		if err := proto.Unmarshal(b[1:], &pb); err != nil {
			return nil, fmt.Errorf("codec: decode value: %w", err)
		}
		return pb.AsInterface(), nil

	default:
		return nil, fmt.Errorf("codec: unknown value format 0x%02x", b[0])
	}
}

// checkValue validates v before handing it to structpb, so unsupported
// and cyclic values fail with the domain error rather than a library
// error (or unbounded recursion).
func checkValue(v any, depth int) error {
	if depth >= maxValueDepth {
		return domain.ErrUnserializableValue.WithDetails("value too deeply nested or cyclic")
	}

	switch val := v.(type) {
	case nil, bool, string:
		return nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float32:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return domain.ErrUnserializableValue.WithDetails("non-finite number")
		}
		return nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return domain.ErrUnserializableValue.WithDetails("non-finite number")
		}
		return nil
	case []any:
		for _, elem := range val {
			if err := checkValue(elem, depth+1); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		for _, elem := range val {
			if err := checkValue(elem, depth+1); err != nil {
				return err
			}
		}
		return nil
	case []byte:
		// Only supported at the top level; nested buffers would decay
		// to base64 strings and break the round trip.
		return domain.ErrUnserializableValue.WithDetails("nested byte buffer")
	default:
		return domain.ErrUnserializableValue.WithDetails(fmt.Sprintf("unsupported type %T", v))
	}
}
