// Package command provides CLI command definitions for KVArea.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags, engine setup
//   - kv.go: Key/value commands (get, set, delete)
//   - area.go: Area-level commands (clear, keys, entries, info)
//   - transfer.go: Export/import commands
//   - config.go: Configuration subcommand group
//
// Commands follow a consistent pattern of parsing flags, calling the
// storage area, and formatting output.
package command
