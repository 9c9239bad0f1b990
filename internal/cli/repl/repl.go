// Package repl provides the interactive REPL mode for kvarea.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Executor runs one parsed command line. The REPL reports the returned
// error and keeps running.
type Executor func(args []string) error

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	completer *Completer
	history   *History
	exec      Executor
}

// New creates a new REPL instance dispatching lines to exec.
func New(exec Executor) *REPL {
	return &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		completer: NewCompleter(),
		history:   NewHistory(),
		exec:      exec,
	}
}

// Run starts the REPL loop.
func (r *REPL) Run() error {
	reader := bufio.NewReader(r.input)

	for {
		// Print prompt
		fmt.Fprint(r.output, "kvarea> ")

		// Read line
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		// Trim and skip empty lines
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Add to history
		r.history.Add(line)

		// Handle special commands
		if line == "exit" || line == "quit" {
			return nil
		}
		if line == "help" {
			r.printHelp()
			continue
		}

		// Execute command
		if err := r.execute(line); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

func (r *REPL) execute(line string) error {
	if r.exec == nil {
		return fmt.Errorf("unknown command: %s", line)
	}
	return r.exec(splitArgs(line))
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.output, "Commands:")
	for _, cmd := range r.completer.commands {
		fmt.Fprintf(r.output, "  %s\n", cmd)
	}
}

// splitArgs splits a command line into arguments, honoring single and
// double quotes so values with spaces survive.
func splitArgs(line string) []string {
	var args []string
	var sb strings.Builder
	var quote rune

	flush := func() {
		if sb.Len() > 0 {
			args = append(args, sb.String())
			sb.Reset()
		}
	}

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				sb.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
		case r == ' ' || r == '\t':
			flush()
		default:
			sb.WriteRune(r)
		}
	}
	flush()
	return args
}
