// Package command provides CLI command definitions for KVArea.
package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kvarea-go/internal/cli/output"
	"github.com/yndnr/kvarea-go/internal/config"
	"github.com/yndnr/kvarea-go/internal/infra/confloader"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration (secrets masked)",
				Action: configShow,
			},
			{
				Name:      "test",
				Usage:     "Validate a configuration file",
				ArgsUsage: "FILE",
				Action:    configTest,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	cfg, err := LoadConfig(c)
	if err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	formatter := output.NewFormatter(output.Format(flags.Output))
	return formatter.Format(os.Stdout, config.Sanitize(cfg))
}

func configTest(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("config test expects exactly one FILE argument")
	}
	path := c.Args().Get(0)

	cfg := config.Default()
	loader := confloader.NewLoader(confloader.WithConfigFile(path))
	if err := loader.Load(cfg); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	if err := config.Verify(cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Printf("%s: OK\n", path)
	return nil
}
