package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskring/internal/app"
	"github.com/runoshun/taskring/internal/domain"
	"github.com/runoshun/taskring/internal/usecase"
)

// newAddCommand creates the add command.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Date     string
		Title    string
		Duration time.Duration
	}

	cmd := &cobra.Command{
		Use:   "add <category> <HH:MM>",
		Short: "Add a task at the closest free slot",
		Long: `Add a task from a category at the given time.

When the time is taken the task is moved to the closest free slot in
15 minute steps, preferring later times. If nothing is free within
12 hours the task is added anyway and reported as a conflict.

Examples:
  taskring add work 09:30
  taskring add gym 18:00 --duration 45m --title "Leg day"
  taskring add read 21:00 --date tomorrow`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(opts.Date, now(c))
			if err != nil {
				return err
			}
			start, err := parseClock(args[1], day)
			if err != nil {
				return err
			}

			out, err := c.AddTaskUseCase().Execute(cmd.Context(), usecase.AddTaskInput{
				CategoryID: args[0],
				Start:      start,
				Title:      opts.Title,
				Duration:   opts.Duration,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Added %s %s %s\n", out.Task.ID, formatSpan(out.Task.Start, out.Task.End), out.Task.Title)
			if out.Moved {
				_, _ = fmt.Fprintf(w, "Moved from %s to the closest free slot\n", start.Format(clockLayout))
			}
			if out.Conflict {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Warning: no free slot found, task overlaps another")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "Day (YYYY-MM-DD, today, tomorrow, yesterday)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (default: category name)")
	cmd.Flags().DurationVar(&opts.Duration, "duration", 0, "Duration (default: category duration)")

	return cmd
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Date     string
		HideDone bool
		JSON     bool
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a day's tasks",
		Long: `Display the tasks of a day ordered by start time.

Output columns: ID, TIME, DURATION, CATEGORY, DONE, TITLE.
A "+1" after the end time marks a task that runs past midnight.`,
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDay(opts.Date, now(c))
			if err != nil {
				return err
			}

			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{
				Day:           day,
				HideCompleted: opts.HideDone,
			})
			if err != nil {
				return err
			}

			if opts.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out.Tasks)
			}
			printTaskList(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "Day (YYYY-MM-DD, today, tomorrow, yesterday)")
	cmd.Flags().BoolVar(&opts.HideDone, "hide-done", false, "Hide completed tasks")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output JSON")

	return cmd
}

// printTaskList prints tasks in TSV format followed by day totals.
func printTaskList(w io.Writer, out *usecase.ListTasksOutput) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(tw, "ID\tTIME\tDURATION\tCATEGORY\tDONE\tTITLE")
	for _, t := range out.Tasks {
		done := "-"
		if t.Completed {
			done = "x"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			formatSpan(t.Start, t.End),
			formatDuration(t.Duration()),
			t.Category.ID,
			done,
			t.Title,
		)
	}
	_ = tw.Flush()

	_, _ = fmt.Fprintf(w, "\nPlanned %s, done %s (%d completed)\n",
		formatDuration(out.Planned), formatDuration(out.Done), out.Completed)
}

// newEditCommand creates the edit command.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Start    string
		End      string
		Title    string
		Category string
		Force    bool
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's time, title or category",
		Long: `Change a task. Times are HH:MM on the task's day; an end earlier
than the start is read as the next day. Moving only the start keeps
the duration.

Examples:
  taskring edit 3f2a... --start 10:00
  taskring edit 3f2a... --end 11:15 --title "Review"
  taskring edit 3f2a... --start 23:30 --end 00:15`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("start") && !cmd.Flags().Changed("end") &&
				!cmd.Flags().Changed("title") && !cmd.Flags().Changed("category") {
				return fmt.Errorf("nothing to change: use --start, --end, --title or --category")
			}

			current, err := c.Tasks.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			day := domain.StartOfDay(current.Start)

			in := usecase.EditTaskInput{TaskID: args[0], Force: opts.Force}
			start := current.Start
			if cmd.Flags().Changed("start") {
				s, err := parseClock(opts.Start, day)
				if err != nil {
					return err
				}
				in.Start = &s
				start = s
			}
			if cmd.Flags().Changed("end") {
				e, err := parseClock(opts.End, day)
				if err != nil {
					return err
				}
				if !e.After(start) {
					e = e.AddDate(0, 0, 1)
				}
				in.End = &e
			}
			if cmd.Flags().Changed("title") {
				in.Title = &opts.Title
			}
			if cmd.Flags().Changed("category") {
				in.CategoryID = &opts.Category
			}

			out, err := c.EditTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s %s\n",
				out.Task.ID, formatSpan(out.Task.Start, out.Task.End), out.Task.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Start, "start", "", "New start (HH:MM)")
	cmd.Flags().StringVar(&opts.End, "end", "", "New end (HH:MM)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Category, "category", "", "New category id")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Allow overlapping other tasks")

	return cmd
}

// newRmCommand creates the rm command.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", out.Task.ID, out.Task.Title)
			return nil
		},
	}
}

// newDoneCommand creates the done command.
func newDoneCommand(c *app.Container) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			completed := !undo
			out, err := c.CompleteTaskUseCase().Execute(cmd.Context(), usecase.CompleteTaskInput{
				TaskID:    args[0],
				Completed: &completed,
			})
			if err != nil {
				return err
			}
			state := "completed"
			if !out.Task.Completed {
				state = "not completed"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", out.Task.ID, state)
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the task not completed")

	return cmd
}

// newSlotCommand creates the slot command.
func newSlotCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Date     string
		Duration time.Duration
	}

	cmd := &cobra.Command{
		Use:   "slot <category> <HH:MM>",
		Short: "Show where a task would be placed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(opts.Date, now(c))
			if err != nil {
				return err
			}
			start, err := parseClock(args[1], day)
			if err != nil {
				return err
			}

			out, err := c.FindSlotUseCase().Execute(cmd.Context(), usecase.FindSlotInput{
				CategoryID: args[0],
				Start:      start,
				Duration:   opts.Duration,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch {
			case out.Exhausted:
				_, _ = fmt.Fprintf(w, "No free slot near %s\n", start.Format(clockLayout))
			case out.Moved:
				_, _ = fmt.Fprintf(w, "%s (moved)\n", formatSpan(out.Start, out.End))
			default:
				_, _ = fmt.Fprintf(w, "%s\n", formatSpan(out.Start, out.End))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "Day (YYYY-MM-DD, today, tomorrow, yesterday)")
	cmd.Flags().DurationVar(&opts.Duration, "duration", 0, "Duration (default: category duration)")

	return cmd
}
