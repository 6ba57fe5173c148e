package usecase

import (
	"time"

	"github.com/runoshun/taskring/internal/domain"
	"github.com/runoshun/taskring/internal/testutil"
)

var day = time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)

func at(h, m int) time.Time {
	return time.Date(2025, 3, 14, h, m, 0, 0, time.Local)
}

func newTask(id string, sh, sm int, d time.Duration) domain.Task {
	return domain.Task{
		ID:       id,
		Title:    id,
		Start:    at(sh, sm),
		End:      at(sh, sm).Add(d),
		Category: domain.CategoryRef{ID: "work"},
	}
}

func newCategories() *testutil.MockCategoryProvider {
	return &testutil.MockCategoryProvider{List: testutil.Categories()}
}

func ptr[T any](v T) *T {
	return &v
}
