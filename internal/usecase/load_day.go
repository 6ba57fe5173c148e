package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/taskring/internal/domain"
	"github.com/runoshun/taskring/internal/taskring"
)

// LoadDayInput contains the parameters for loading a day.
type LoadDayInput struct {
	Day time.Time
}

// LoadDayOutput contains the loaded tasks ordered by start.
type LoadDayOutput struct {
	Tasks []domain.Task
}

// LoadDay fetches a day's tasks into the ring, replacing what it held for that day.
type LoadDay struct {
	tasks  domain.TaskRepository
	ring   *taskring.Ring
	logger domain.Logger
}

// NewLoadDay creates a new LoadDay use case.
func NewLoadDay(tasks domain.TaskRepository, ring *taskring.Ring, logger domain.Logger) *LoadDay {
	return &LoadDay{
		tasks:  tasks,
		ring:   ring,
		logger: logger,
	}
}

// Execute loads the day.
func (uc *LoadDay) Execute(ctx context.Context, in LoadDayInput) (*LoadDayOutput, error) {
	tasks, err := uc.tasks.Fetch(ctx, in.Day)
	if err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	if err := uc.ring.Replace(in.Day, tasks); err != nil {
		// Invalid rows are skipped; the rest of the day still loads.
		uc.logger.Warn("", "load", err.Error())
	}
	return &LoadDayOutput{Tasks: uc.ring.TasksOn(in.Day)}, nil
}
