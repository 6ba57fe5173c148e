package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/taskring/internal/domain"
	"github.com/runoshun/taskring/internal/placement"
)

// FindSlotInput contains the parameters for previewing a placement.
type FindSlotInput struct {
	Start      time.Time     // Preferred start
	CategoryID string        // Category whose default duration is used
	TaskID     string        // Task to ignore when checking overlaps (optional)
	Duration   time.Duration // Overrides the category duration when > 0
}

// FindSlotOutput contains the resolved slot.
type FindSlotOutput struct {
	Start     time.Time
	End       time.Time
	Moved     bool // Start differs from the preferred start
	Exhausted bool // No free slot; the preferred interval is returned
}

// FindSlot previews where a task would be placed without storing anything.
type FindSlot struct {
	tasks      domain.TaskRepository
	categories domain.CategoryProvider
	searcher   *placement.Searcher
}

// NewFindSlot creates a new FindSlot use case.
func NewFindSlot(tasks domain.TaskRepository, categories domain.CategoryProvider, searcher *placement.Searcher) *FindSlot {
	return &FindSlot{
		tasks:      tasks,
		categories: categories,
		searcher:   searcher,
	}
}

// Execute resolves the closest free slot to the preferred start.
func (uc *FindSlot) Execute(ctx context.Context, in FindSlotInput) (*FindSlotOutput, error) {
	d, err := resolveDuration(uc.categories, in.CategoryID, in.Duration)
	if err != nil {
		return nil, err
	}
	p, err := resolvePlacement(ctx, uc.tasks, uc.searcher, in.TaskID, in.Start, d)
	if err != nil {
		return nil, err
	}
	return &FindSlotOutput{
		Start:     p.Start,
		End:       p.End,
		Moved:     p.Moved,
		Exhausted: p.Exhausted,
	}, nil
}

// resolveDuration picks the explicit duration, else the category default.
func resolveDuration(categories domain.CategoryProvider, categoryID string, d time.Duration) (time.Duration, error) {
	if d < 0 || d > domain.Day {
		return 0, fmt.Errorf("duration %s: %w", d, domain.ErrInvalidInterval)
	}
	if d > 0 {
		return d, nil
	}
	cat, err := categories.Category(categoryID)
	if err != nil {
		return 0, fmt.Errorf("get category: %w", err)
	}
	return cat.Duration(), nil
}

// resolvePlacement runs the slot search against the stored tasks of the
// start's day and the day before, whose late tasks may wrap into it.
func resolvePlacement(
	ctx context.Context,
	tasks domain.TaskRepository,
	searcher *placement.Searcher,
	taskID string,
	start time.Time,
	d time.Duration,
) (placement.Placement, error) {
	day := domain.StartOfDay(start)
	prev, err := tasks.Fetch(ctx, day.AddDate(0, 0, -1))
	if err != nil {
		return placement.Placement{}, fmt.Errorf("fetch tasks: %w", err)
	}
	current, err := tasks.Fetch(ctx, day)
	if err != nil {
		return placement.Placement{}, fmt.Errorf("fetch tasks: %w", err)
	}

	dayStart, dayEnd := domain.DayBounds(day)
	return searcher.Resolve(placement.Request{
		TaskID:         taskID,
		PreferredStart: start,
		Duration:       d,
		Others:         append(prev, current...),
		DayStart:       dayStart,
		DayEnd:         dayEnd,
	}), nil
}
