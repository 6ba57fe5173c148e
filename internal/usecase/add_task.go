package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/taskring/internal/domain"
	"github.com/runoshun/taskring/internal/placement"
)

// AddTaskInput contains the parameters for adding a task.
type AddTaskInput struct {
	Start      time.Time     // Preferred start
	CategoryID string        // Category to create the task from
	Title      string        // Title (defaults to the category name)
	Duration   time.Duration // Overrides the category duration when > 0
}

// AddTaskOutput contains the result of adding a task.
type AddTaskOutput struct {
	Task     domain.Task
	Moved    bool // Placed away from the preferred start
	Conflict bool // No free slot was found; the task overlaps another
}

// AddTask creates a task at the closest free slot and stores it.
// Fields are ordered to minimize memory padding.
type AddTask struct {
	tasks      domain.TaskRepository
	categories domain.CategoryProvider
	logger     domain.Logger
	searcher   *placement.Searcher
}

// NewAddTask creates a new AddTask use case.
func NewAddTask(
	tasks domain.TaskRepository,
	categories domain.CategoryProvider,
	searcher *placement.Searcher,
	logger domain.Logger,
) *AddTask {
	return &AddTask{
		tasks:      tasks,
		categories: categories,
		searcher:   searcher,
		logger:     logger,
	}
}

// Execute places and saves a new task.
func (uc *AddTask) Execute(ctx context.Context, in AddTaskInput) (*AddTaskOutput, error) {
	cat, err := uc.categories.Category(in.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	d, err := resolveDuration(uc.categories, in.CategoryID, in.Duration)
	if err != nil {
		return nil, err
	}

	id := domain.NewTaskID()
	p, err := resolvePlacement(ctx, uc.tasks, uc.searcher, id, in.Start, d)
	if err != nil {
		return nil, err
	}

	title := in.Title
	if title == "" {
		title = cat.Name
	}
	task := domain.Task{
		ID:       id,
		Title:    title,
		Start:    p.Start,
		End:      p.End,
		Category: cat.Ref(),
	}
	if err := uc.tasks.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("save task: %w", err)
	}

	if p.Exhausted {
		uc.logger.Warn(id, "add", "no free slot, placed over an existing task")
	}
	uc.logger.Info(id, "add", fmt.Sprintf("added %s %s-%s", cat.ID, p.Start.Format("15:04"), p.End.Format("15:04")))

	return &AddTaskOutput{
		Task:     task,
		Moved:    p.Moved,
		Conflict: p.Exhausted,
	}, nil
}
