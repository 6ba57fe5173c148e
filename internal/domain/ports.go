package domain

import (
	"context"
	"time"
)

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	Initialize() error
}

// TaskRepository manages durable task storage.
// Calls may be slow; the interaction layer only reaches them through a Persister.
type TaskRepository interface {
	// Fetch returns the tasks starting on the calendar day of day.
	Fetch(ctx context.Context, day time.Time) ([]Task, error)

	// Get returns a task by id. Returns ErrTaskNotFound if absent.
	Get(ctx context.Context, id string) (Task, error)

	// Save stores a new task (or replaces one with the same id).
	Save(ctx context.Context, task Task) error

	// Update replaces an existing task. Returns ErrTaskNotFound if absent.
	Update(ctx context.Context, task Task) error

	// Delete removes a task by id. Deleting a missing task is not an error.
	Delete(ctx context.Context, id string) error

	// FindOverlapping returns stored tasks other than task itself whose
	// interval intersects task's interval.
	FindOverlapping(ctx context.Context, task Task) ([]Task, error)
}

// CategoryProvider supplies drag-and-drop categories.
type CategoryProvider interface {
	// Categories returns every known category in display order.
	Categories() ([]Category, error)

	// Category returns a category by id.
	Category(id string) (Category, error)
}

// Persister issues repository writes without blocking the caller.
// Writes for the same task are applied in the order they were issued.
type Persister interface {
	Save(task Task)
	Update(task Task)
	Delete(id string)
}

// Logger writes categorized log lines, optionally scoped to a task.
type Logger interface {
	Debug(taskID, category, msg string)
	Info(taskID, category, msg string)
	Warn(taskID, category, msg string)
	Error(taskID, category, msg string)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(_, _, _ string) {}
func (NopLogger) Info(_, _, _ string)  {}
func (NopLogger) Warn(_, _, _ string)  {}
func (NopLogger) Error(_, _, _ string) {}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (data dir + global).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
