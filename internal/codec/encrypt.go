// Package codec serializes keys and values for the storage engine.
package codec

import (
	"fmt"

	"github.com/yndnr/kvarea-go/pkg/crypto/adaptive"
)

// Encrypted wraps an inner value codec with authenticated at-rest
// encryption. Keys remain plaintext; only value payloads are sealed.
type Encrypted struct {
	cipher adaptive.Cipher
	inner  Codec
}

// NewEncrypted creates an encrypting codec around inner.
func NewEncrypted(cipher adaptive.Cipher, inner Codec) *Encrypted {
	return &Encrypted{cipher: cipher, inner: inner}
}

// EncodeValue implements Codec.
func (c *Encrypted) EncodeValue(v any) ([]byte, error) {
	plain, err := c.inner.EncodeValue(v)
	if err != nil {
		return nil, err
	}
	sealed, err := c.cipher.Encrypt(plain, nil)
	if err != nil {
		return nil, fmt.Errorf("codec: encrypt value: %w", err)
	}
	return sealed, nil
}

// DecodeValue implements Codec.
func (c *Encrypted) DecodeValue(b []byte) (any, error) {
	plain, err := c.cipher.Decrypt(b, nil)
	if err != nil {
		return nil, fmt.Errorf("codec: decrypt value: %w", err)
	}
	return c.inner.DecodeValue(plain)
}
