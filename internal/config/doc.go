// Package config provides application configuration for KVArea.
//
// This package defines the configuration structure and validation:
//
//   - spec.go: AppConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Business validation (paths, key material, limits)
//   - sanitize.go: Log sanitization (hide sensitive values)
//
// Configuration is loaded via internal/infra/confloader and supports
// multiple sources: files, environment variables, and flags.
package config
