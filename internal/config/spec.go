// Package config provides application configuration for KVArea.
package config

// AppConfig is the root configuration for kvarea.
type AppConfig struct {
	Storage  StorageSection  `koanf:"storage"`
	Security SecuritySection `koanf:"security"`
	Limits   LimitsSection   `koanf:"limits"`
	Log      LogSection      `koanf:"log"`
}

// StorageSection configures the storage engine.
type StorageSection struct {
	// DataDir is the root directory for store data. Each area gets its
	// own subdirectory beneath it.
	DataDir string `koanf:"data_dir"`

	// InMemory keeps all areas in memory; nothing is persisted.
	InMemory bool `koanf:"in_memory"`

	Badger BadgerSection `koanf:"badger"`
}

// BadgerSection holds Badger-specific tuning parameters.
type BadgerSection struct {
	// CacheSizeMB is the block cache size in megabytes.
	CacheSizeMB int64 `koanf:"cache_size_mb"`

	// ValueLogFileSizeMB is the max value log file size in megabytes.
	ValueLogFileSizeMB int64 `koanf:"value_log_file_size_mb"`

	// NumMemtables is the number of memtables.
	NumMemtables int `koanf:"num_memtables"`

	// SyncWrites enables fsync after each write.
	SyncWrites bool `koanf:"sync_writes"`
}

// SecuritySection configures value encryption at rest.
type SecuritySection struct {
	// EncryptionEnabled turns on value encryption for all areas.
	EncryptionEnabled bool `koanf:"encryption_enabled"`

	// EncryptionKey is the hex-encoded 128 or 256-bit key.
	EncryptionKey string `koanf:"encryption_key"`
}

// LimitsSection configures operation rate limiting.
type LimitsSection struct {
	// OpsPerSecond caps operations per second per area. Zero disables
	// the limiter.
	OpsPerSecond float64 `koanf:"ops_per_second"`

	// Burst is the limiter's burst size.
	Burst int `koanf:"burst"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
