// Package main provides the entry point for kvarea.
//
// kvarea is the command-line tool for KVArea storage areas,
// supporting both single-command mode and interactive shell mode.
package main

import (
	"fmt"
	"os"

	"github.com/yndnr/kvarea-go/internal/cli/command"
)

func main() {
	app := command.App()

	err := app.Run(os.Args)
	if cerr := command.CloseApp(app); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
