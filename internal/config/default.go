// Package config provides application configuration for KVArea.
package config

// Default configuration values.
const (
	DefaultDataDir = "/var/lib/kvarea/data"

	DefaultCacheSizeMB        = 64
	DefaultValueLogFileSizeMB = 256
	DefaultNumMemtables       = 2

	DefaultBurst = 64

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default application configuration.
func Default() *AppConfig {
	return &AppConfig{
		Storage: StorageSection{
			DataDir: DefaultDataDir,
			Badger: BadgerSection{
				CacheSizeMB:        DefaultCacheSizeMB,
				ValueLogFileSizeMB: DefaultValueLogFileSizeMB,
				NumMemtables:       DefaultNumMemtables,
				SyncWrites:         false,
			},
		},
		Limits: LimitsSection{
			Burst: DefaultBurst,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
