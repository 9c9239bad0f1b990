// Package config provides application configuration for KVArea.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
)

// Verify validates the configuration.
func Verify(cfg *AppConfig) error {
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	if err := verifySecurity(&cfg.Security); err != nil {
		return err
	}
	if err := verifyLimits(&cfg.Limits); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifyStorage(cfg *StorageSection) error {
	if cfg.InMemory {
		return nil
	}
	if cfg.DataDir == "" {
		return errors.New("storage.data_dir is required")
	}

	// Check if data directory exists or can be created
	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return errors.New("cannot create data directory: " + err.Error())
	}

	if cfg.Badger.NumMemtables < 1 {
		return errors.New("storage.badger.num_memtables must be at least 1")
	}
	return nil
}

func verifySecurity(cfg *SecuritySection) error {
	if !cfg.EncryptionEnabled {
		return nil
	}
	key, err := hex.DecodeString(cfg.EncryptionKey)
	if err != nil {
		return errors.New("security.encryption_key must be hex-encoded")
	}
	if len(key) != 16 && len(key) != 32 {
		return fmt.Errorf("security.encryption_key must be 16 or 32 bytes, got %d", len(key))
	}
	return nil
}

func verifyLimits(cfg *LimitsSection) error {
	if cfg.OpsPerSecond < 0 {
		return errors.New("limits.ops_per_second must not be negative")
	}
	if cfg.OpsPerSecond > 0 && cfg.Burst < 1 {
		return errors.New("limits.burst must be at least 1 when rate limiting is on")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}
	switch cfg.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format %q is not one of json, text", cfg.Format)
	}
	return nil
}

// EncryptionKeyBytes decodes the configured encryption key. Call only
// after Verify has succeeded.
func (s *SecuritySection) EncryptionKeyBytes() ([]byte, error) {
	return hex.DecodeString(s.EncryptionKey)
}
