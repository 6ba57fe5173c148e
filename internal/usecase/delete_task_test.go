package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskring/internal/domain"
	"github.com/runoshun/taskring/internal/testutil"
)

func TestDeleteTask_Execute_Success(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Put(newTask("a", 9, 0, time.Hour))
	uc := NewDeleteTask(repo, &testutil.MockLogger{})

	out, err := uc.Execute(context.Background(), DeleteTaskInput{TaskID: "a"})
	require.NoError(t, err)
	assert.Equal(t, "a", out.Task.ID)

	_, exists := repo.Stored("a")
	assert.False(t, exists, "task should be deleted from repository")
}

func TestDeleteTask_Execute_TaskNotFound(t *testing.T) {
	uc := NewDeleteTask(testutil.NewMockTaskRepository(), &testutil.MockLogger{})

	_, err := uc.Execute(context.Background(), DeleteTaskInput{TaskID: "missing"})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDeleteTask_Execute_DeleteError(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Put(newTask("a", 9, 0, time.Hour))
	repo.DeleteErr = assert.AnError
	uc := NewDeleteTask(repo, &testutil.MockLogger{})

	_, err := uc.Execute(context.Background(), DeleteTaskInput{TaskID: "a"})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "delete task")
}
