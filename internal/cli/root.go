// Package cli provides the command-line interface for taskring.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskring/internal/app"
	"github.com/runoshun/taskring/internal/tui"
)

// Command group IDs.
const (
	groupTask  = "task"
	groupSetup = "setup"
)

// launchTUIFunc launches the dial, allowing it to be mocked in tests.
var launchTUIFunc = func(c *app.Container, day time.Time) error {
	return tui.Run(c, day)
}

// NewRootCommand creates the root command for taskring.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var date string

	root := &cobra.Command{
		Use:   "taskring",
		Short: "Plan your day on a 24-hour ring",
		Long: `taskring shows a day as a 24-hour ring. Drag categories onto the
ring to create tasks, drag arc ends to resize them, drag a whole arc
to move it, or drag it off the ring to delete it.

Running taskring without a subcommand opens the interactive dial.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			day, err := parseDay(date, now(c))
			if err != nil {
				return err
			}
			return launchTUIFunc(c, day)
		},
	}
	root.Flags().StringVar(&date, "date", "", "Day to open (YYYY-MM-DD, today, tomorrow, yesterday)")

	root.AddGroup(
		&cobra.Group{ID: groupTask, Title: "Task Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	for _, cmd := range []*cobra.Command{
		newAddCommand(c),
		newListCommand(c),
		newEditCommand(c),
		newRmCommand(c),
		newDoneCommand(c),
		newSlotCommand(c),
	} {
		cmd.GroupID = groupTask
		root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		newCategoriesCommand(c),
		newConfigCommand(c),
		newServeCommand(c),
	} {
		cmd.GroupID = groupSetup
		root.AddCommand(cmd)
	}

	return root
}

func now(c *app.Container) time.Time {
	if c == nil || c.Clock == nil {
		return time.Now()
	}
	return c.Clock.Now()
}
