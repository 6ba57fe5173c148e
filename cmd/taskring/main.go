// Package main is the entry point for the taskring CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/runoshun/taskring/internal/app"
	"github.com/runoshun/taskring/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) (err error) {
	// Create dependency injection container
	container, initErr := app.New(os.Getenv("TASKRING_DATA_DIR"))
	if initErr != nil {
		return runWithoutContainer(args, fmt.Errorf("failed to initialize: %w", initErr))
	}
	defer func() {
		err = errors.Join(err, container.Close())
	}()

	rootCmd := cli.NewRootCommand(container, version)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// runWithoutContainer lets help and version work with a broken config or store.
func runWithoutContainer(args []string, initErr error) error {
	if !canRunWithoutContainer(args) {
		return initErr
	}
	rootCmd := cli.NewRootCommand(nil, version)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func canRunWithoutContainer(args []string) bool {
	if len(args) > 0 && args[0] == "help" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
