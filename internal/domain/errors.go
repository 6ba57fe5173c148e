package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrInvalidInterval     = errors.New("invalid interval: end must be after start")
	ErrPlacementExhausted  = errors.New("no free slot within search bound")
	ErrPersistence         = errors.New("persistence failure")
	ErrTaskNotFound        = errors.New("task not found")
	ErrEmptyTaskID         = errors.New("task id cannot be empty")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTaskConflict        = errors.New("task overlaps an existing task")
	ErrGestureInProgress   = errors.New("gesture in progress")
	ErrNoGesture           = errors.New("no gesture in progress")
	ErrInvalidHandle       = errors.New("invalid handle")
	ErrInvalidZeroPosition = errors.New("zero position must be a multiple of 15 degrees")
	ErrNotInitialized      = errors.New("store not initialized")
	ErrInvalidStoreType    = errors.New("invalid store type")
	ErrConfigExists        = errors.New("config file already exists")
)

// PersistOp names a repository operation.
type PersistOp string

// Repository operations issued by the persister.
const (
	PersistSave   PersistOp = "save"
	PersistUpdate PersistOp = "update"
	PersistDelete PersistOp = "delete"
)

// PersistenceFailure reports a failed asynchronous repository call.
// The in-memory ring is never rolled back when one occurs.
type PersistenceFailure struct {
	Err    error
	Op     PersistOp
	TaskID string
}

func (f *PersistenceFailure) Error() string {
	return fmt.Sprintf("%s task %s: %v", f.Op, f.TaskID, f.Err)
}

// Unwrap lets errors.Is match both ErrPersistence and the cause.
func (f *PersistenceFailure) Unwrap() []error {
	return []error{ErrPersistence, f.Err}
}
