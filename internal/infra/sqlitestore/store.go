// Package sqlitestore stores tasks in a SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/taskring/internal/domain"
)

// timeLayout is fixed-width so stored UTC timestamps compare as strings.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store implements domain.TaskRepository on SQLite.
// Fields are ordered to minimize memory padding.
type Store struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// Ensure Store implements the repository ports.
var (
	_ domain.TaskRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)

// New creates a Store for the database file at path.
// The database is opened by Initialize.
func New(path string) *Store {
	return &Store{path: path}
}

// Initialize opens the database and applies pending migrations.
func (s *Store) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}
	database, err := OpenSQLite(s.path)
	if err != nil {
		return err
	}
	if err := RunMigrations(database, embeddedMigrations()); err != nil {
		_ = database.Close()
		return err
	}
	s.db = database
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) conn() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, domain.ErrNotInitialized
	}
	return s.db, nil
}

const selectColumns = `SELECT id, title, category_id, category_color, category_icon,
	        start_at, end_at, completed
	 FROM tasks`

// Fetch returns the tasks starting on day's calendar day, ordered by start.
func (s *Store) Fetch(ctx context.Context, day time.Time) ([]domain.Task, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	dayStart, dayEnd := domain.DayBounds(day)
	rows, err := db.QueryContext(
		ctx,
		selectColumns+` WHERE start_at >= ? AND start_at < ? ORDER BY start_at, id`,
		formatTime(dayStart),
		formatTime(dayEnd),
	)
	if err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	return scanTasks(rows)
}

// Get returns a task by id.
func (s *Store) Get(ctx context.Context, id string) (domain.Task, error) {
	db, err := s.conn()
	if err != nil {
		return domain.Task{}, err
	}
	row := db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, fmt.Errorf("get %s: %w", id, domain.ErrTaskNotFound)
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("get %s: %w", id, err)
	}
	return task, nil
}

// Save inserts task, replacing a task with the same id.
func (s *Store) Save(ctx context.Context, task domain.Task) error {
	if task.ID == "" {
		return domain.ErrEmptyTaskID
	}
	db, err := s.conn()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(
		ctx,
		`INSERT INTO tasks (
			id, title, category_id, category_color, category_icon,
			start_at, end_at, completed, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			category_id = excluded.category_id,
			category_color = excluded.category_color,
			category_icon = excluded.category_icon,
			start_at = excluded.start_at,
			end_at = excluded.end_at,
			completed = excluded.completed,
			updated_at = excluded.updated_at`,
		task.ID,
		task.Title,
		task.Category.ID,
		task.Category.Color,
		task.Category.Icon,
		formatTime(task.Start),
		formatTime(task.End),
		boolToInt(task.Completed),
		formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", task.ID, err)
	}
	return nil
}

// Update replaces an existing task.
func (s *Store) Update(ctx context.Context, task domain.Task) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(
		ctx,
		`UPDATE tasks
		 SET title = ?,
		     category_id = ?,
		     category_color = ?,
		     category_icon = ?,
		     start_at = ?,
		     end_at = ?,
		     completed = ?,
		     updated_at = ?
		 WHERE id = ?`,
		task.Title,
		task.Category.ID,
		task.Category.Color,
		task.Category.Icon,
		formatTime(task.Start),
		formatTime(task.End),
		boolToInt(task.Completed),
		formatTime(time.Now()),
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("update %s: %w", task.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s: %w", task.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update %s: %w", task.ID, domain.ErrTaskNotFound)
	}
	return nil
}

// Delete removes a task by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

// FindOverlapping returns stored tasks other than task intersecting its interval.
func (s *Store) FindOverlapping(ctx context.Context, task domain.Task) ([]domain.Task, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(
		ctx,
		selectColumns+` WHERE id != ? AND start_at < ? AND end_at > ? ORDER BY start_at, id`,
		task.ID,
		formatTime(task.End),
		formatTime(task.Start),
	)
	if err != nil {
		return nil, fmt.Errorf("find overlapping: %w", err)
	}
	return scanTasks(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (domain.Task, error) {
	var (
		t          domain.Task
		start, end string
		completed  int
	)
	if err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Category.ID,
		&t.Category.Color,
		&t.Category.Icon,
		&start,
		&end,
		&completed,
	); err != nil {
		return domain.Task{}, err
	}

	var err error
	if t.Start, err = parseTime(start); err != nil {
		return domain.Task{}, fmt.Errorf("parse start_at: %w", err)
	}
	if t.End, err = parseTime(end); err != nil {
		return domain.Task{}, fmt.Errorf("parse end_at: %w", err)
	}
	t.Completed = completed != 0
	return t, nil
}

func scanTasks(rows *sql.Rows) ([]domain.Task, error) {
	defer func() { _ = rows.Close() }()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime reads a stored timestamp back into local time.
func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(time.Local), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
