// Package logger provides structured logging for KVArea.
package logger

import (
	"log/slog"
	"strings"
)

// Attribute key patterns whose values must never reach a log sink.
// The encryption key from the at-rest config is the main hazard.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"credential",
	"encryption_key",
	"cipher_key",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive replaces the values of secret-bearing attributes.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		keyLower := strings.ToLower(a.Key)
		for _, pattern := range sensitiveKeyPatterns {
			if strings.Contains(keyLower, pattern) {
				if a.Value.String() != "" {
					return slog.String(a.Key, redactedValue)
				}
				break
			}
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}
