package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskring/internal/domain"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID string // Task ID to delete
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct {
	Task domain.Task // The deleted task
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	tasks  domain.TaskRepository
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(tasks domain.TaskRepository, logger domain.Logger) *DeleteTask {
	return &DeleteTask{
		tasks:  tasks,
		logger: logger,
	}
}

// Execute deletes a task with the given ID.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	task, err := uc.tasks.Get(ctx, in.TaskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	if err := uc.tasks.Delete(ctx, in.TaskID); err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}
	uc.logger.Info(task.ID, "delete", "deleted")

	return &DeleteTaskOutput{Task: task}, nil
}
