// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/runoshun/taskring/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockTaskRepository is a test double for domain.TaskRepository.
// It is safe for use from the persist worker goroutine.
// Fields are ordered to minimize memory padding.
type MockTaskRepository struct {
	Tasks     map[string]domain.Task
	FetchErr  error
	GetErr    error
	SaveErr   error
	UpdateErr error
	DeleteErr error
	calls     []string
	mu        sync.Mutex
	// Delay is slept inside every write, to exercise ordering.
	Delay time.Duration
}

// NewMockTaskRepository creates a new MockTaskRepository with initialized maps.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		Tasks: make(map[string]domain.Task),
	}
}

// Fetch returns tasks starting on day.
func (m *MockTaskRepository) Fetch(_ context.Context, day time.Time) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "fetch")
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	var out []domain.Task
	for _, t := range m.Tasks {
		if t.OnDay(day) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b domain.Task) int { return a.Start.Compare(b.Start) })
	return out, nil
}

// Save stores a task.
func (m *MockTaskRepository) Save(_ context.Context, task domain.Task) error {
	m.sleep()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "save:"+task.ID)
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Tasks[task.ID] = task
	return nil
}

// Update replaces an existing task.
func (m *MockTaskRepository) Update(_ context.Context, task domain.Task) error {
	m.sleep()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "update:"+task.ID)
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if _, ok := m.Tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	m.Tasks[task.ID] = task
	return nil
}

// Delete removes a task.
func (m *MockTaskRepository) Delete(_ context.Context, id string) error {
	m.sleep()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "delete:"+id)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Tasks, id)
	return nil
}

// FindOverlapping returns stored tasks intersecting task.
func (m *MockTaskRepository) FindOverlapping(_ context.Context, task domain.Task) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Task
	for _, t := range m.Tasks {
		if t.ID != task.ID && t.Overlaps(&task) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Calls returns the recorded operations in order.
func (m *MockTaskRepository) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// Get returns a task by id.
func (m *MockTaskRepository) Get(_ context.Context, id string) (domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "get:"+id)
	if m.GetErr != nil {
		return domain.Task{}, m.GetErr
	}
	t, ok := m.Tasks[id]
	if !ok {
		return domain.Task{}, fmt.Errorf("%s: %w", id, domain.ErrTaskNotFound)
	}
	return t, nil
}

// Stored returns a stored task without recording a call.
func (m *MockTaskRepository) Stored(id string) (domain.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Tasks[id]
	return t, ok
}

// Put stores a task directly, bypassing call recording.
func (m *MockTaskRepository) Put(task domain.Task) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tasks[task.ID] = task
}

func (m *MockTaskRepository) sleep() {
	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}
}

// MockPersister records writes synchronously.
type MockPersister struct {
	Ops []string
}

// Save records a save.
func (m *MockPersister) Save(task domain.Task) {
	m.Ops = append(m.Ops, "save:"+task.ID)
}

// Update records an update.
func (m *MockPersister) Update(task domain.Task) {
	m.Ops = append(m.Ops, "update:"+task.ID)
}

// Delete records a delete.
func (m *MockPersister) Delete(id string) {
	m.Ops = append(m.Ops, "delete:"+id)
}

// MockCategoryProvider is a test double for domain.CategoryProvider.
type MockCategoryProvider struct {
	Err  error
	List []domain.Category
}

// Categories returns the configured list.
func (m *MockCategoryProvider) Categories() ([]domain.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.List, nil
}

// Category returns a category by id.
func (m *MockCategoryProvider) Category(id string) (domain.Category, error) {
	if m.Err != nil {
		return domain.Category{}, m.Err
	}
	for _, c := range m.List {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Category{}, fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, id)
}

// MockLogger records log lines.
type MockLogger struct {
	Lines []string
	mu    sync.Mutex
}

func (m *MockLogger) add(level, taskID, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = append(m.Lines, fmt.Sprintf("%s [%s] [%s] %s", level, taskID, category, msg))
}

// Debug records a debug line.
func (m *MockLogger) Debug(taskID, category, msg string) { m.add("DEBUG", taskID, category, msg) }

// Info records an info line.
func (m *MockLogger) Info(taskID, category, msg string) { m.add("INFO", taskID, category, msg) }

// Warn records a warning line.
func (m *MockLogger) Warn(taskID, category, msg string) { m.add("WARN", taskID, category, msg) }

// Error records an error line.
func (m *MockLogger) Error(taskID, category, msg string) { m.add("ERROR", taskID, category, msg) }

// Snapshot returns the recorded lines.
func (m *MockLogger) Snapshot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.Lines)
}

// Categories returns a small fixed catalog.
func Categories() []domain.Category {
	return []domain.Category{
		{ID: "work", Name: "Work", Color: "#74B9FF", Icon: "W", DefaultDuration: time.Hour},
		{ID: "gym", Name: "Gym", Color: "#00B894", Icon: "G", DefaultDuration: 90 * time.Minute},
		{ID: "read", Name: "Reading", Color: "#FDCB6E", Icon: "R"},
	}
}
