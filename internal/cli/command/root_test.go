package command

import (
	"testing"
)

func TestApp_Commands(t *testing.T) {
	app := App()

	want := []string{
		"get", "set", "delete", "clear",
		"keys", "entries", "export", "import",
		"info", "config", "shell",
	}
	for _, name := range want {
		if app.Command(name) == nil {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestParseGlobalFlags(t *testing.T) {
	c := testContext(t,
		"--data-dir", "/tmp/kv",
		"--area", "sessions",
		"--in-memory",
		"--output", "json",
		"--verbose",
	)

	flags := ParseGlobalFlags(c)
	if flags.DataDir != "/tmp/kv" {
		t.Errorf("DataDir = %q, want %q", flags.DataDir, "/tmp/kv")
	}
	if flags.Area != "sessions" {
		t.Errorf("Area = %q, want %q", flags.Area, "sessions")
	}
	if !flags.InMemory {
		t.Error("InMemory should be set")
	}
	if flags.Output != "json" {
		t.Errorf("Output = %q, want %q", flags.Output, "json")
	}
	if !flags.Verbose {
		t.Error("Verbose should be set")
	}
}

func TestParseGlobalFlags_Defaults(t *testing.T) {
	c := testContext(t)

	flags := ParseGlobalFlags(c)
	if flags.Area != "default" {
		t.Errorf("Area = %q, want %q", flags.Area, "default")
	}
	if flags.Output != "table" {
		t.Errorf("Output = %q, want %q", flags.Output, "table")
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	dir := t.TempDir()
	c := testContext(t, "--data-dir", dir, "--verbose")

	cfg, err := LoadConfig(c)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Storage.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", cfg.Storage.DataDir, dir)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q (verbose)", cfg.Log.Level, "debug")
	}
}

func TestLoadConfig_InMemory(t *testing.T) {
	c := testContext(t, "--in-memory")

	cfg, err := LoadConfig(c)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !cfg.Storage.InMemory {
		t.Error("InMemory should be set from the flag")
	}
}

func TestEngineConfig(t *testing.T) {
	c := testContext(t, "--in-memory")
	cfg, err := LoadConfig(c)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Storage.Badger.CacheSizeMB = 8
	cfg.Storage.Badger.NumMemtables = 3
	cfg.Storage.Badger.SyncWrites = true

	ec := engineConfig(cfg)
	if !ec.InMemory {
		t.Error("InMemory not carried over")
	}
	if ec.Badger.CacheSize != 8<<20 {
		t.Errorf("CacheSize = %d, want %d", ec.Badger.CacheSize, 8<<20)
	}
	if ec.Badger.NumMemtables != 3 {
		t.Errorf("NumMemtables = %d, want 3", ec.Badger.NumMemtables)
	}
	if !ec.Badger.SyncWrites {
		t.Error("SyncWrites not carried over")
	}
}
