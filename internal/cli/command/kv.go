// Package command provides CLI command definitions for KVArea.
package command

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kvarea-go/internal/cli/output"
)

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get the value stored under a key",
		ArgsUsage: "KEY",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json-key",
				Aliases: []string{"j"},
				Usage:   "Parse KEY as JSON (arrays become compound keys)",
			},
		},
		Action: kvGet,
	}
}

// SetCommand returns the set command.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Store a value under a key",
		ArgsUsage: "KEY VALUE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json-key",
				Aliases: []string{"j"},
				Usage:   "Parse KEY as JSON (arrays become compound keys)",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Store VALUE as a plain string without JSON parsing",
			},
		},
		Action: kvSet,
	}
}

// DeleteCommand returns the delete command.
func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"del", "rm"},
		Usage:     "Delete the entry under a key",
		ArgsUsage: "KEY",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json-key",
				Aliases: []string{"j"},
				Usage:   "Parse KEY as JSON (arrays become compound keys)",
			},
		},
		Action: kvDelete,
	}
}

func kvGet(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("get expects exactly one KEY argument")
	}
	key, err := parseKey(c, c.Args().Get(0))
	if err != nil {
		return err
	}

	a, err := CurrentArea(c)
	if err != nil {
		return err
	}

	value, err := a.Get(c.Context, key)
	if err != nil {
		return err
	}
	if value == nil {
		return fmt.Errorf("key not found")
	}

	flags := ParseGlobalFlags(c)
	formatter := output.NewFormatter(output.Format(flags.Output))
	return formatter.Format(os.Stdout, value)
}

func kvSet(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("set expects KEY and VALUE arguments")
	}
	key, err := parseKey(c, c.Args().Get(0))
	if err != nil {
		return err
	}

	var value any = c.Args().Get(1)
	if !c.Bool("raw") {
		value = parseValue(c.Args().Get(1))
	}

	a, err := CurrentArea(c)
	if err != nil {
		return err
	}
	if err := a.Set(c.Context, key, value); err != nil {
		return err
	}

	fmt.Println("OK")
	return nil
}

func kvDelete(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("delete expects exactly one KEY argument")
	}
	key, err := parseKey(c, c.Args().Get(0))
	if err != nil {
		return err
	}

	a, err := CurrentArea(c)
	if err != nil {
		return err
	}
	if err := a.Delete(c.Context, key); err != nil {
		return err
	}

	fmt.Println("OK")
	return nil
}

// parseKey interprets a command-line key argument. With --json-key the
// argument is decoded as JSON, so compound and numeric keys are
// expressible; otherwise it is taken as a plain string.
func parseKey(c *cli.Context, arg string) (any, error) {
	if !c.Bool("json-key") {
		return arg, nil
	}

	var key any
	if err := json.Unmarshal([]byte(arg), &key); err != nil {
		return nil, fmt.Errorf("parse key as JSON: %w", err)
	}
	return key, nil
}

// parseValue interprets a command-line value argument. Valid JSON is
// stored structurally; anything else is stored as a string, so plain
// words don't need quoting.
func parseValue(arg string) any {
	if v, err := strconv.ParseFloat(arg, 64); err == nil {
		return v
	}
	switch arg {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}

	var v any
	if err := json.Unmarshal([]byte(arg), &v); err == nil {
		return v
	}
	return arg
}
