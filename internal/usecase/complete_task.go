package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskring/internal/domain"
)

// CompleteTaskInput contains the parameters for completing a task.
type CompleteTaskInput struct {
	Completed *bool  // Target state; nil toggles
	TaskID    string // Task ID to complete
}

// CompleteTaskOutput contains the result of completing a task.
type CompleteTaskOutput struct {
	Task domain.Task
}

// CompleteTask sets or toggles a task's completion flag.
type CompleteTask struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(tasks domain.TaskRepository, logger domain.Logger) *CompleteTask {
	return &CompleteTask{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute updates the completion flag.
func (uc *CompleteTask) Execute(ctx context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	task, err := uc.tasks.Get(ctx, in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	done := !task.Completed
	if in.Completed != nil {
		done = *in.Completed
	}
	if done == task.Completed {
		return &CompleteTaskOutput{Task: task}, nil
	}

	task.Completed = done
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	uc.logger.Info(task.ID, "complete", fmt.Sprintf("completed=%t", done))

	return &CompleteTaskOutput{Task: task}, nil
}
