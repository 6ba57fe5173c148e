package usecase

import (
	"context"
	"time"

	"github.com/runoshun/taskring/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Day           time.Time
	HideCompleted bool
}

// ListTasksOutput contains a day's tasks and totals.
type ListTasksOutput struct {
	Tasks     []domain.Task
	Planned   time.Duration // Sum of all task durations of the day
	Done      time.Duration // Sum of completed task durations
	Completed int           // Number of completed tasks
}

// ListTasks is the use case for listing a day's tasks.
type ListTasks struct {
	load *LoadDay
}

// NewListTasks creates a new ListTasks use case backed by load.
func NewListTasks(load *LoadDay) *ListTasks {
	return &ListTasks{load: load}
}

// Execute loads the day and summarizes it.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	loaded, err := uc.load.Execute(ctx, LoadDayInput{Day: in.Day})
	if err != nil {
		return nil, err
	}

	out := &ListTasksOutput{Tasks: make([]domain.Task, 0, len(loaded.Tasks))}
	for _, t := range loaded.Tasks {
		out.Planned += t.Duration()
		if t.Completed {
			out.Done += t.Duration()
			out.Completed++
			if in.HideCompleted {
				continue
			}
		}
		out.Tasks = append(out.Tasks, t)
	}
	return out, nil
}
