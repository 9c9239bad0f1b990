// Package logger provides structured logging for KVArea.
//
// It wraps the standard library log/slog to provide structured JSON
// logging with automatic redaction of sensitive configuration values.
//
// Features:
//
//   - JSON structured logging (default), text for consoles
//   - Automatic redaction of secret-bearing fields
//   - Context-aware logging with operation ID propagation
//   - Runtime log level adjustment
package logger
