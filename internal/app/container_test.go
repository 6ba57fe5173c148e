package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskring/internal/domain"
	"github.com/runoshun/taskring/internal/infra/jsonstore"
	"github.com/runoshun/taskring/internal/infra/sqlitestore"
	"github.com/runoshun/taskring/internal/testutil"
	"github.com/runoshun/taskring/internal/usecase"
)

func newTestContainer(t *testing.T, configTOML string) *Container {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataDir := t.TempDir()
	if configTOML != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, domain.ConfigFileName), []byte(configTOML), 0o644))
	}
	c, err := New(dataDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNew_DefaultsToSQLite(t *testing.T) {
	c := newTestContainer(t, "")

	assert.IsType(t, &sqlitestore.Store{}, c.Tasks)
	assert.Equal(t, filepath.Join(c.Config.DataDir, domain.SQLiteStoreFileName), c.Config.StorePath)
	_, err := os.Stat(c.Config.StorePath)
	assert.NoError(t, err)

	cats, err := c.Categories.Categories()
	require.NoError(t, err)
	assert.NotEmpty(t, cats)
}

func TestNew_JSONStore(t *testing.T) {
	c := newTestContainer(t, "[store]\ntype = \"json\"\n")

	assert.IsType(t, &jsonstore.Store{}, c.Tasks)
	assert.Equal(t, filepath.Join(c.Config.DataDir, domain.JSONStoreFileName), c.Config.StorePath)
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, domain.ConfigFileName), []byte("[store]\ntype = \"redis\"\n"), 0o644))

	_, err := New(dataDir)
	assert.ErrorIs(t, err, domain.ErrInvalidStoreType)
}

func TestContainer_EndToEnd(t *testing.T) {
	c := newTestContainer(t, "")
	ctx := context.Background()
	start := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)

	added, err := c.AddTaskUseCase().Execute(ctx, usecase.AddTaskInput{CategoryID: "work", Start: start})
	require.NoError(t, err)

	listed, err := c.ListTasksUseCase().Execute(ctx, usecase.ListTasksInput{Day: start})
	require.NoError(t, err)
	require.Len(t, listed.Tasks, 1)
	assert.Equal(t, added.Task.ID, listed.Tasks[0].ID)

	_, ok := c.Ring.Get(added.Task.ID)
	assert.True(t, ok, "listing loads the shared ring")
}

func TestContainer_ControllerPersistsThroughQueue(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	c := NewWithDeps(Config{DataDir: t.TempDir()}, nil, repo,
		&testutil.MockCategoryProvider{List: testutil.Categories()}, domain.RealClock{}, domain.NopLogger{})

	queue := c.NewPersister(nil)
	cfg := c.RingConfiguration(time.Date(2025, 3, 14, 15, 0, 0, 0, time.Local))
	cfg.Radius = 10
	assert.Equal(t, domain.DefaultHandleTolerance, cfg.HandleTolerance)
	assert.Equal(t, 0, cfg.BaseDate.Hour())

	ctrl, err := c.NewController(cfg, queue)
	require.NoError(t, err)

	// Drop at the top of the ring, which is 00:00 with the default zero position.
	top := domain.Point{X: 0, Y: -10}
	require.NoError(t, ctrl.BeginDrop(testutil.Categories()[0], top))
	out, err := ctrl.Release(top)
	require.NoError(t, err)
	require.NotNil(t, out.Committed)
	assert.Equal(t, 0, out.Committed.Start.Hour())

	require.NoError(t, queue.Close(context.Background()))
	_, ok := repo.Stored(out.Committed.ID)
	assert.True(t, ok)
}
