// Package adaptive provides authenticated encryption with automatic
// algorithm selection.
//
// It picks the best available AEAD for the host:
//
//   - AES-GCM where hardware AES support is available (amd64, arm64)
//   - ChaCha20-Poly1305 otherwise
//
// Ciphertexts are self-contained: a random nonce is prepended, so a
// sealed payload can be opened with only the key. All cipher
// operations are safe for concurrent use.
package adaptive
