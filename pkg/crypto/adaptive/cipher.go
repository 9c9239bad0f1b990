// Package adaptive provides authenticated encryption with automatic
// algorithm selection.
package adaptive

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/crypto/chacha20poly1305"
)

// CipherType identifies the cipher algorithm.
type CipherType string

const (
	CipherAESGCM   CipherType = "aes-gcm"
	CipherChaCha20 CipherType = "chacha20-poly1305"
)

// Cipher provides authenticated encryption.
type Cipher interface {
	// Type returns the cipher type.
	Type() CipherType

	// Encrypt seals plaintext with additional data.
	Encrypt(plaintext, additionalData []byte) ([]byte, error)

	// Decrypt opens ciphertext with additional data.
	Decrypt(ciphertext, additionalData []byte) ([]byte, error)

	// Overhead returns the per-message expansion in bytes (nonce + tag).
	Overhead() int
}

// New creates a cipher with the given key, selecting the algorithm
// best suited to the host hardware. Key must be 32 bytes.
func New(key []byte) (Cipher, error) {
	if hardwareAES() {
		return NewWithType(key, CipherAESGCM)
	}
	return NewWithType(key, CipherChaCha20)
}

// NewWithType creates a cipher of the specified type.
//
// AES-GCM accepts 16, 24, or 32 byte keys; ChaCha20-Poly1305 requires
// 32 bytes.
func NewWithType(key []byte, typ CipherType) (Cipher, error) {
	switch typ {
	case CipherAESGCM:
		switch len(key) {
		case 16, 24, 32:
		default:
			return nil, errors.New("adaptive: aes-gcm key must be 16, 24, or 32 bytes")
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, err
		}
		return &aeadCipher{typ: CipherAESGCM, aead: aead}, nil

	case CipherChaCha20:
		if len(key) != chacha20poly1305.KeySize {
			return nil, errors.New("adaptive: chacha20-poly1305 key must be 32 bytes")
		}
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, err
		}
		return &aeadCipher{typ: CipherChaCha20, aead: aead}, nil

	default:
		return nil, fmt.Errorf("adaptive: unknown cipher type %q", typ)
	}
}

// hardwareAES reports whether the architecture carries AES
// acceleration Go's crypto/aes will use.
func hardwareAES() bool {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return true
	default:
		return false
	}
}

// aeadCipher implements Cipher over any AEAD with nonce-prepended
// ciphertexts.
type aeadCipher struct {
	typ  CipherType
	aead cipher.AEAD
}

func (c *aeadCipher) Type() CipherType {
	return c.typ
}

func (c *aeadCipher) Overhead() int {
	return c.aead.NonceSize() + c.aead.Overhead()
}

func (c *aeadCipher) Encrypt(plaintext, additionalData []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return c.aead.Seal(nonce, nonce, plaintext, additionalData), nil
}

func (c *aeadCipher) Decrypt(ciphertext, additionalData []byte) ([]byte, error) {
	if len(ciphertext) < c.aead.NonceSize() {
		return nil, errors.New("adaptive: ciphertext too short")
	}
	nonce, sealed := ciphertext[:c.aead.NonceSize()], ciphertext[c.aead.NonceSize():]
	return c.aead.Open(nil, nonce, sealed, additionalData)
}
