// Package domain defines the core domain models for KVArea.
//
// Domain models are pure value objects without any IO dependencies
// or framework coupling. This package contains:
//
//   - Key validation against the storage engine's key-type contract
//   - Errors: domain-specific error definitions with structured codes
//
// Nothing in this package touches the storage engine; validation is
// synchronous and side-effect free.
package domain
