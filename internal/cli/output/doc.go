// Package output provides output formatting for the KVArea CLI.
//
// This package handles all CLI output formatting:
//
//   - formatter.go: Formatter interface and factory
//   - table.go: Table rendering via tabwriter
//   - json.go: JSON output formatting
//   - yaml.go: YAML output formatting
//   - progress.go: Progress bar for bulk transfers
//   - spinner.go: Progress animation for long operations
//
// Formatters support:
//
//   - Multiple output formats (table, json, yaml)
//   - Machine-readable output for scripting
package output
