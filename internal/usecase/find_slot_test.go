package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskring/internal/domain"
	"github.com/runoshun/taskring/internal/placement"
	"github.com/runoshun/taskring/internal/testutil"
)

func TestFindSlot_Execute(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Put(newTask("a", 9, 0, time.Hour))
	uc := NewFindSlot(repo, newCategories(), placement.NewSearcher())

	out, err := uc.Execute(context.Background(), FindSlotInput{CategoryID: "work", Start: at(9, 30)})
	require.NoError(t, err)

	assert.Equal(t, at(10, 0), out.Start)
	assert.Equal(t, at(11, 0), out.End)
	assert.True(t, out.Moved)
	assert.False(t, out.Exhausted)
	assert.Equal(t, []string{"fetch", "fetch"}, repo.Calls(), "nothing is written")
}

func TestFindSlot_Execute_IgnoresOwnTask(t *testing.T) {
	repo := testutil.NewMockTaskRepository()
	repo.Put(newTask("a", 9, 0, time.Hour))
	uc := NewFindSlot(repo, newCategories(), placement.NewSearcher())

	out, err := uc.Execute(context.Background(), FindSlotInput{TaskID: "a", CategoryID: "work", Start: at(9, 30)})
	require.NoError(t, err)
	assert.Equal(t, at(9, 30), out.Start)
	assert.False(t, out.Moved)
}

func TestFindSlot_Execute_DefaultDuration(t *testing.T) {
	uc := NewFindSlot(testutil.NewMockTaskRepository(), newCategories(), placement.NewSearcher())

	out, err := uc.Execute(context.Background(), FindSlotInput{CategoryID: "read", Start: at(20, 0)})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTaskDuration, out.End.Sub(out.Start))
}

func TestFindSlot_Execute_UnknownCategory(t *testing.T) {
	uc := NewFindSlot(testutil.NewMockTaskRepository(), newCategories(), placement.NewSearcher())

	_, err := uc.Execute(context.Background(), FindSlotInput{CategoryID: "nope", Start: at(20, 0)})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}
