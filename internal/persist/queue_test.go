package persist

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/runoshun/taskring/internal/domain"
	"github.com/runoshun/taskring/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTask(id string, h int) domain.Task {
	start := time.Date(2025, 3, 14, h, 0, 0, 0, time.Local)
	return domain.Task{ID: id, Start: start, End: start.Add(time.Hour)}
}

func closeQueue(t *testing.T, q *Queue) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, q.Close(ctx))
}

func TestQueue_AppliesInIssueOrder(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Delay = time.Millisecond
	q := New(repo)

	q.Save(sampleTask("a", 9))
	q.Update(sampleTask("a", 10))
	q.Update(sampleTask("a", 11))
	q.Save(sampleTask("b", 12))
	q.Delete("b")
	closeQueue(t, q)

	assert.Equal(t, []string{"save:a", "update:a", "update:a", "save:b", "delete:b"}, repo.Calls())
	got, ok := repo.Stored("a")
	require.True(t, ok)
	assert.Equal(t, 11, got.Start.Hour(), "last write wins")
	_, ok = repo.Stored("b")
	assert.False(t, ok)
}

func TestQueue_EnqueueDoesNotBlock(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Delay = 100 * time.Millisecond
	q := New(repo)

	begin := time.Now()
	for i := 0; i < 50; i++ {
		q.Update(sampleTask("a", 9))
	}
	elapsed := time.Since(begin)

	assert.Less(t, elapsed, 50*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Close(ctx), context.DeadlineExceeded)
}

func TestQueue_ReportsFailures(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.SaveErr = assert.AnError
	logger := &testutil.MockLogger{}

	var mu sync.Mutex
	var failures []*domain.PersistenceFailure
	q := New(repo, WithLogger(logger), WithFailureHandler(func(f *domain.PersistenceFailure) {
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, f)
	}))

	q.Save(sampleTask("a", 9))
	q.Update(sampleTask("missing", 9))
	closeQueue(t, q)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, failures, 2)
	assert.ErrorIs(t, failures[0], domain.ErrPersistence)
	assert.ErrorIs(t, failures[0], assert.AnError)
	assert.Equal(t, domain.PersistSave, failures[0].Op)
	assert.ErrorIs(t, failures[1], domain.ErrTaskNotFound)
	assert.Equal(t, "missing", failures[1].TaskID)
	assert.Len(t, logger.Snapshot(), 2)
}

func TestQueue_WriteAfterCloseFails(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	var got *domain.PersistenceFailure
	q := New(repo, WithFailureHandler(func(f *domain.PersistenceFailure) { got = f }))
	closeQueue(t, q)

	q.Delete("a")

	require.NotNil(t, got)
	assert.ErrorIs(t, got, ErrClosed)
	assert.Empty(t, repo.Calls())
	assert.Equal(t, 0, q.Pending())
}

func TestQueue_FlushWaitsForEarlierWrites(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Delay = 5 * time.Millisecond
	q := New(repo)
	defer closeQueue(t, q)

	q.Save(sampleTask("a", 9))
	q.Save(sampleTask("b", 10))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, q.Flush(ctx))

	assert.Equal(t, []string{"save:a", "save:b"}, repo.Calls())
}

func TestQueue_FlushAfterClose(t *testing.T) {
	q := New(testutil.NewMockTaskRepository())
	closeQueue(t, q)

	assert.ErrorIs(t, q.Flush(context.Background()), ErrClosed)
}
