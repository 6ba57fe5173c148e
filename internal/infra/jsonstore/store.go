// Package jsonstore provides a JSON file-based implementation of TaskRepository.
package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/runoshun/taskring/internal/domain"
)

// storeData represents the JSON file structure.
type storeData struct {
	Tasks map[string]domain.Task `json:"tasks"`
	Meta  meta                   `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	Version int `json:"version"`
}

const formatVersion = 1

// Store implements domain.TaskRepository using a JSON file guarded by flock.
type Store struct {
	path     string
	lockPath string
}

// Ensure Store implements the repository ports.
var (
	_ domain.TaskRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)

// New creates a new Store for the given file path.
// The file does not need to exist; Initialize creates it.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Fetch returns the tasks starting on day's calendar day, ordered by start.
func (s *Store) Fetch(ctx context.Context, day time.Time) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var tasks []domain.Task
	err := s.withLock(func(data *storeData) error {
		for id, t := range data.Tasks {
			t.ID = id
			if t.OnDay(day) {
				tasks = append(tasks, t)
			}
		}
		return nil
	})
	sortTasks(tasks)
	return tasks, err
}

// Get retrieves a task by ID.
func (s *Store) Get(ctx context.Context, id string) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}
	var (
		task  domain.Task
		found bool
	)
	err := s.withLock(func(data *storeData) error {
		task, found = data.Tasks[id]
		task.ID = id
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	if !found {
		return domain.Task{}, fmt.Errorf("get %s: %w", id, domain.ErrTaskNotFound)
	}
	return task, nil
}

// Save creates or replaces a task.
func (s *Store) Save(ctx context.Context, task domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if task.ID == "" {
		return domain.ErrEmptyTaskID
	}
	return s.withLockWrite(func(data *storeData) error {
		data.Tasks[task.ID] = task
		return nil
	})
}

// Update replaces an existing task.
func (s *Store) Update(ctx context.Context, task domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.withLockWrite(func(data *storeData) error {
		if _, ok := data.Tasks[task.ID]; !ok {
			return fmt.Errorf("update %s: %w", task.ID, domain.ErrTaskNotFound)
		}
		data.Tasks[task.ID] = task
		return nil
	})
}

// Delete removes a task by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.withLockWrite(func(data *storeData) error {
		delete(data.Tasks, id)
		return nil
	})
}

// FindOverlapping returns stored tasks other than task intersecting its interval.
func (s *Store) FindOverlapping(ctx context.Context, task domain.Task) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var tasks []domain.Task
	err := s.withLock(func(data *storeData) error {
		for id, t := range data.Tasks {
			t.ID = id
			if id != task.ID && t.Overlaps(&task) {
				tasks = append(tasks, t)
			}
		}
		return nil
	})
	sortTasks(tasks)
	return tasks, err
}

// IsInitialized checks if the store file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates an empty store file if it doesn't exist.
func (s *Store) Initialize() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return nil
	}

	return s.write(&storeData{
		Meta:  meta{Version: formatVersion},
		Tasks: make(map[string]domain.Task),
	})
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	if data.Tasks == nil {
		data.Tasks = make(map[string]domain.Task)
	}
	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

func sortTasks(tasks []domain.Task) {
	slices.SortFunc(tasks, func(a, b domain.Task) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}
