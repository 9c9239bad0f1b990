// Package command provides CLI command definitions for KVArea.
package command

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/kvarea-go/internal/cli/output"
	"github.com/yndnr/kvarea-go/internal/infra/buildinfo"
)

// ClearCommand returns the clear command.
func ClearCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Remove every entry in the area and destroy its backing store",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Skip confirmation",
			},
		},
		Action: areaClear,
	}
}

// KeysCommand returns the keys command.
func KeysCommand() *cli.Command {
	return &cli.Command{
		Name:   "keys",
		Usage:  "List every key in the area, in key order",
		Action: areaKeys,
	}
}

// EntriesCommand returns the entries command.
func EntriesCommand() *cli.Command {
	return &cli.Command{
		Name:    "entries",
		Aliases: []string{"ls"},
		Usage:   "List every entry in the area, in key order",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Stop after this many entries (0 = all)",
			},
		},
		Action: areaEntries,
	}
}

// InfoCommand returns the info command.
func InfoCommand() *cli.Command {
	return &cli.Command{
		Name:   "info",
		Usage:  "Show area and build information",
		Action: areaInfo,
	}
}

func areaClear(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	if !c.Bool("force") {
		fmt.Printf("Clear area %q? This destroys all of its data. [y/N]: ", flags.Area)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	a, err := CurrentArea(c)
	if err != nil {
		return err
	}

	spinner := output.NewSpinner(os.Stderr, "clearing area "+flags.Area)
	spinner.Start()
	if err := a.Clear(c.Context); err != nil {
		spinner.Fail("clear failed")
		return err
	}
	spinner.Success(fmt.Sprintf("area %q cleared", flags.Area))
	return nil
}

func areaKeys(c *cli.Context) error {
	a, err := CurrentArea(c)
	if err != nil {
		return err
	}

	keys, err := a.Keys(c.Context)
	if err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	formatter := output.NewFormatter(output.Format(flags.Output))
	return formatter.Format(os.Stdout, keys)
}

func areaEntries(c *cli.Context) error {
	a, err := CurrentArea(c)
	if err != nil {
		return err
	}

	limit := c.Int("limit")
	entries := []map[string]any{}
	err = a.Entries(c.Context, func(key, value any) bool {
		entries = append(entries, map[string]any{
			"key":   key,
			"value": value,
		})
		return limit <= 0 || len(entries) < limit
	})
	if err != nil {
		return err
	}

	flags := ParseGlobalFlags(c)
	formatter := output.NewFormatter(output.Format(flags.Output))
	return formatter.Format(os.Stdout, entries)
}

func areaInfo(c *cli.Context) error {
	a, err := CurrentArea(c)
	if err != nil {
		return err
	}

	desc := a.BackingStore()
	info := map[string]any{
		"area":     a.Name(),
		"location": desc.Location,
		"table":    desc.Table,
		"version":  desc.Version,
		"build":    buildinfo.Get(),
	}

	flags := ParseGlobalFlags(c)
	formatter := output.NewFormatter(output.Format(flags.Output))
	return formatter.Format(os.Stdout, info)
}
