// Package command provides CLI command definitions for KVArea.
package command

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/kvarea-go/internal/area"
	"github.com/yndnr/kvarea-go/internal/codec"
	"github.com/yndnr/kvarea-go/internal/config"
	"github.com/yndnr/kvarea-go/internal/infra/buildinfo"
	"github.com/yndnr/kvarea-go/internal/infra/confloader"
	"github.com/yndnr/kvarea-go/internal/storage"
	"github.com/yndnr/kvarea-go/internal/telemetry/logger"
	"github.com/yndnr/kvarea-go/internal/telemetry/metric"
	"github.com/yndnr/kvarea-go/pkg/crypto/adaptive"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "kvarea",
		Usage:   "KVArea command-line storage tool",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			GetCommand(),
			SetCommand(),
			DeleteCommand(),
			ClearCommand(),
			KeysCommand(),
			EntriesCommand(),
			ExportCommand(),
			ImportCommand(),
			InfoCommand(),
			ConfigCommand(),
			ShellCommand(),
		},
		Metadata: map[string]any{},
	}

	return app
}

// CloseApp releases the engine and area manager an invocation opened.
// Call after app.Run returns; commands that never touched storage make
// this a no-op.
func CloseApp(app *cli.App) error {
	mgr, ok := app.Metadata["manager"].(*area.Manager)
	if !ok {
		return nil
	}
	delete(app.Metadata, "manager")

	err := mgr.Close(context.Background())
	if engine, ok := app.Metadata["engine"].(*storage.BadgerEngine); ok {
		delete(app.Metadata, "engine")
		if cerr := engine.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file (YAML)",
			EnvVars: []string{"KVAREA_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "data-dir",
			Aliases: []string{"d"},
			Usage:   "Data directory for store files",
			EnvVars: []string{"KVAREA_DATA_DIR"},
		},
		&cli.StringFlag{
			Name:    "area",
			Aliases: []string{"a"},
			Usage:   "Storage area name",
			Value:   area.DefaultAreaName,
		},
		&cli.BoolFlag{
			Name:  "in-memory",
			Usage: "Keep all data in memory (nothing is persisted)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable verbose output",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	ConfigFile string
	DataDir    string
	Area       string
	InMemory   bool

	// Output format
	Output string // table, json, yaml

	// Other
	Verbose bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		ConfigFile: c.String("config"),
		DataDir:    c.String("data-dir"),
		Area:       c.String("area"),
		InMemory:   c.Bool("in-memory"),
		Output:     c.String("output"),
		Verbose:    c.Bool("verbose"),
	}
}

// LoadConfig loads the application configuration honoring the source
// priority flag > env > file > default.
func LoadConfig(c *cli.Context) (*config.AppConfig, error) {
	flags := ParseGlobalFlags(c)

	cfg := config.Default()
	loader := confloader.NewLoader(confloader.WithConfigFile(flags.ConfigFile))
	if err := loader.Load(cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	// Flags take priority over every other source.
	if flags.DataDir != "" {
		cfg.Storage.DataDir = flags.DataDir
	}
	if flags.InMemory {
		cfg.Storage.InMemory = true
	}
	if flags.Verbose {
		cfg.Log.Level = "debug"
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// OpenManager builds the storage engine and area manager from the
// loaded configuration, caching them in the app metadata so commands
// share one engine per invocation.
func OpenManager(c *cli.Context) (*area.Manager, error) {
	if m, ok := c.App.Metadata["manager"].(*area.Manager); ok {
		return m, nil
	}

	cfg, err := LoadConfig(c)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	if err != nil {
		return nil, err
	}
	logger.SetDefault(log)

	metrics := metric.NewRegistry()
	engine, err := storage.NewBadgerEngine(engineConfig(cfg), nil)
	if err != nil {
		return nil, fmt.Errorf("open storage engine: %w", err)
	}
	engine.RegisterMetrics(metrics.Prometheus())

	opts := []area.Option{area.WithLogger(log), area.WithMetrics(metrics)}
	if cfg.Limits.OpsPerSecond > 0 {
		opts = append(opts, area.WithRateLimit(rate.Limit(cfg.Limits.OpsPerSecond), cfg.Limits.Burst))
	}
	if cfg.Security.EncryptionEnabled {
		key, err := cfg.Security.EncryptionKeyBytes()
		if err != nil {
			engine.Close()
			return nil, err
		}
		cipher, err := adaptive.New(key)
		if err != nil {
			engine.Close()
			return nil, fmt.Errorf("init cipher: %w", err)
		}
		opts = append(opts, area.WithCodec(codec.NewEncrypted(cipher, codec.NewStructured())))
	}

	mgr, err := area.NewManager(engine, opts...)
	if err != nil {
		engine.Close()
		return nil, err
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata["manager"] = mgr
	c.App.Metadata["engine"] = engine
	c.App.Metadata["appConfig"] = cfg
	return mgr, nil
}

// CurrentArea resolves the storage area selected by the --area flag.
func CurrentArea(c *cli.Context) (*area.StorageArea, error) {
	mgr, err := OpenManager(c)
	if err != nil {
		return nil, err
	}
	return mgr.Area(ParseGlobalFlags(c).Area)
}

func engineConfig(cfg *config.AppConfig) storage.Config {
	ec := storage.DefaultConfig(cfg.Storage.DataDir)
	ec.InMemory = cfg.Storage.InMemory
	if cfg.Storage.Badger.CacheSizeMB > 0 {
		ec.Badger.CacheSize = cfg.Storage.Badger.CacheSizeMB << 20
	}
	if cfg.Storage.Badger.ValueLogFileSizeMB > 0 {
		ec.Badger.ValueLogFileSize = cfg.Storage.Badger.ValueLogFileSizeMB << 20
	}
	if cfg.Storage.Badger.NumMemtables > 0 {
		ec.Badger.NumMemtables = cfg.Storage.Badger.NumMemtables
	}
	ec.Badger.SyncWrites = cfg.Storage.Badger.SyncWrites
	return ec
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
