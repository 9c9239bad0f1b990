// Package command provides CLI command definitions for KVArea.
package command

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/kvarea-go/internal/cli/output"
)

// transferEntry is one exported key/value pair, one JSON object per
// line. The format round-trips through import.
type transferEntry struct {
	Key   any `json:"key"`
	Value any `json:"value"`
}

// ExportCommand returns the export command.
func ExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export every entry as JSON lines",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"F"},
				Usage:   "Write to FILE instead of stdout",
			},
		},
		Action: transferExport,
	}
}

// ImportCommand returns the import command.
func ImportCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import entries from JSON lines",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"F"},
				Usage:   "Read from FILE instead of stdin",
			},
			&cli.Float64Flag{
				Name:    "rate",
				Aliases: []string{"r"},
				Usage:   "Limit writes per second (0 = unlimited)",
			},
		},
		Action: transferImport,
	}
}

func transferExport(c *cli.Context) error {
	a, err := CurrentArea(c)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if path := c.String("file"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	var count int
	var encodeErr error
	err = a.Entries(c.Context, func(key, value any) bool {
		if err := enc.Encode(transferEntry{Key: key, Value: value}); err != nil {
			encodeErr = err
			return false
		}
		count++
		return true
	})
	if err != nil {
		return err
	}
	if encodeErr != nil {
		return encodeErr
	}

	fmt.Fprintf(os.Stderr, "Exported %d entries.\n", count)
	return nil
}

func transferImport(c *cli.Context) error {
	a, err := CurrentArea(c)
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	var bar *output.ProgressBar
	if path := c.String("file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		r = f

		if fi, err := f.Stat(); err == nil {
			bar = output.NewProgressBar(os.Stderr, "importing")
			bar.SetTotal(fi.Size())
		}
	}

	var limiter *rate.Limiter
	if rps := c.Float64("rate"); rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var count, line int
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var entry transferEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		if limiter != nil {
			if err := limiter.Wait(c.Context); err != nil {
				return err
			}
		}
		if err := a.Set(c.Context, entry.Key, entry.Value); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		count++
		if bar != nil {
			bar.Increment(int64(len(raw)) + 1)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if bar != nil {
		bar.Finish()
	}

	fmt.Fprintf(os.Stderr, "Imported %d entries.\n", count)
	return nil
}
