// Package taskring holds the in-memory tasks shown on the ring.
package taskring

import (
	"fmt"
	"slices"
	"time"

	"github.com/runoshun/taskring/internal/domain"
)

// Ring is the authoritative in-memory task collection.
// Every write keeps ids unique and End after Start.
// It is not safe for concurrent use; callers drive it from one goroutine.
type Ring struct {
	index map[string]int
	tasks []domain.Task
}

// New creates an empty Ring.
func New() *Ring {
	return &Ring{index: make(map[string]int)}
}

// Len returns the number of tasks held.
func (r *Ring) Len() int {
	return len(r.tasks)
}

// Get returns a copy of the task with the given id.
func (r *Ring) Get(id string) (domain.Task, bool) {
	i, ok := r.index[id]
	if !ok {
		return domain.Task{}, false
	}
	return r.tasks[i], true
}

// All returns copies of every task ordered by start.
func (r *Ring) All() []domain.Task {
	out := slices.Clone(r.tasks)
	sortByStart(out)
	return out
}

// TasksOn returns the tasks starting on day's calendar day, ordered by start.
func (r *Ring) TasksOn(day time.Time) []domain.Task {
	var out []domain.Task
	for i := range r.tasks {
		if r.tasks[i].OnDay(day) {
			out = append(out, r.tasks[i])
		}
	}
	sortByStart(out)
	return out
}

// Insert adds task, replacing any task with the same id.
func (r *Ring) Insert(task domain.Task) error {
	if task.ID == "" {
		return fmt.Errorf("insert: %w", domain.ErrEmptyTaskID)
	}
	if !task.IsValid() {
		return fmt.Errorf("insert %s: %w", task.ID, domain.ErrInvalidInterval)
	}
	if i, ok := r.index[task.ID]; ok {
		r.tasks[i] = task
		return nil
	}
	r.index[task.ID] = len(r.tasks)
	r.tasks = append(r.tasks, task)
	return nil
}

// Remove deletes the task with the given id. It reports whether a task was removed.
func (r *Ring) Remove(id string) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	last := len(r.tasks) - 1
	if i != last {
		r.tasks[i] = r.tasks[last]
		r.index[r.tasks[i].ID] = i
	}
	r.tasks = r.tasks[:last]
	delete(r.index, id)
	return true
}

// Replace drops every task starting on day and inserts tasks instead.
// Invalid tasks are skipped and reported in the returned error.
func (r *Ring) Replace(day time.Time, tasks []domain.Task) error {
	for _, t := range r.TasksOn(day) {
		r.Remove(t.ID)
	}
	var firstErr error
	for _, t := range tasks {
		if err := r.Insert(t); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// UpdateStartKeepingEnd moves the start boundary to newStart. The end keeps
// its clock time; when it would not be after newStart the task wraps past
// midnight. The task never grows beyond one calendar day.
func (r *Ring) UpdateStartKeepingEnd(id string, newStart time.Time) (domain.Task, error) {
	i, ok := r.index[id]
	if !ok {
		return domain.Task{}, fmt.Errorf("update start %s: %w", id, domain.ErrTaskNotFound)
	}
	t := r.tasks[i]
	end, ok := nextAfter(newStart, t.End)
	if !ok {
		return t, fmt.Errorf("update start %s: %w", id, domain.ErrInvalidInterval)
	}
	t.Start = newStart
	t.End = end
	r.tasks[i] = t
	return t, nil
}

// UpdateEndKeepingStart moves the end boundary to newEnd. An end earlier
// than the start is read as the next day.
func (r *Ring) UpdateEndKeepingStart(id string, newEnd time.Time) (domain.Task, error) {
	i, ok := r.index[id]
	if !ok {
		return domain.Task{}, fmt.Errorf("update end %s: %w", id, domain.ErrTaskNotFound)
	}
	t := r.tasks[i]
	end, ok := nextAfter(t.Start, newEnd)
	if !ok {
		return t, fmt.Errorf("update end %s: %w", id, domain.ErrInvalidInterval)
	}
	t.End = end
	r.tasks[i] = t
	return t, nil
}

// ShiftBy moves the whole task by delta, keeping its duration.
func (r *Ring) ShiftBy(id string, delta time.Duration) (domain.Task, error) {
	i, ok := r.index[id]
	if !ok {
		return domain.Task{}, fmt.Errorf("shift %s: %w", id, domain.ErrTaskNotFound)
	}
	t := r.tasks[i]
	t.Start = t.Start.Add(delta)
	t.End = t.End.Add(delta)
	r.tasks[i] = t
	return t, nil
}

// SetCompleted sets the completion flag.
func (r *Ring) SetCompleted(id string, done bool) (domain.Task, error) {
	i, ok := r.index[id]
	if !ok {
		return domain.Task{}, fmt.Errorf("complete %s: %w", id, domain.ErrTaskNotFound)
	}
	r.tasks[i].Completed = done
	return r.tasks[i], nil
}

// nextAfter moves t by whole calendar days into (from, from+1 day], keeping
// its wall-clock time. It reports false when t lands on from's own clock
// time.
func nextAfter(from, t time.Time) (time.Time, bool) {
	t = t.In(from.Location())
	if days := int(from.Sub(t) / domain.Day); days != 0 {
		t = t.AddDate(0, 0, days)
	}
	for !t.After(from) {
		t = t.AddDate(0, 0, 1)
	}
	limit := from.AddDate(0, 0, 1)
	for t.After(limit) {
		t = t.AddDate(0, 0, -1)
	}
	return t, !t.Equal(limit)
}

func sortByStart(tasks []domain.Task) {
	slices.SortStableFunc(tasks, func(a, b domain.Task) int {
		return a.Start.Compare(b.Start)
	})
}
