// Package codec serializes keys and values for the storage engine.
//
// Values are encoded structurally (deep, JSON-like) through protobuf's
// well-known Value type; raw byte buffers are carried under a separate
// format tag so they round-trip as bytes. Serialization failures are
// reported synchronously, before any transaction is created.
//
// Keys use an order-preserving tagged binary encoding so that the
// engine's byte ordering matches the key-type ordering contract:
// number < timestamp < string < binary < sequence.
//
// An optional encrypting codec wraps any value codec with authenticated
// at-rest encryption.
package codec
