// Package command provides CLI command definitions for KVArea.
package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/kvarea-go/internal/cli/repl"
)

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:    "shell",
		Aliases: []string{"repl"},
		Usage:   "Interactive shell against one storage area",
		Action:  runShell,
	}
}

func runShell(c *cli.Context) error {
	// Open the engine up front so every shell command shares it.
	if _, err := OpenManager(c); err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	globals := []string{"--area", flags.Area, "--output", flags.Output}

	r := repl.New(func(args []string) error {
		full := append([]string{c.App.Name}, globals...)
		return c.App.Run(append(full, args...))
	})
	return r.Run()
}
