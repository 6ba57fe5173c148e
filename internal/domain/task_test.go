package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(h, m int) time.Time {
	return time.Date(2025, 3, 14, h, m, 0, 0, time.UTC)
}

func TestTask_Overlaps(t *testing.T) {
	base := Task{Start: at(9, 0), End: at(10, 0)}

	tests := []struct {
		name  string
		other Task
		want  bool
	}{
		{"identical", Task{Start: at(9, 0), End: at(10, 0)}, true},
		{"contains", Task{Start: at(8, 0), End: at(11, 0)}, true},
		{"partial start", Task{Start: at(8, 30), End: at(9, 15)}, true},
		{"partial end", Task{Start: at(9, 45), End: at(10, 30)}, true},
		{"touching before", Task{Start: at(8, 0), End: at(9, 0)}, false},
		{"touching after", Task{Start: at(10, 0), End: at(11, 0)}, false},
		{"disjoint", Task{Start: at(12, 0), End: at(13, 0)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(&tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(&base))
		})
	}
}

func TestTask_Wraps(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"same day", Task{Start: at(9, 0), End: at(10, 0)}, false},
		{"ends at midnight", Task{Start: at(23, 0), End: at(0, 0).AddDate(0, 0, 1)}, false},
		{"crosses midnight", Task{Start: at(23, 30), End: at(0, 15).AddDate(0, 0, 1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.Wraps())
		})
	}
}

func TestTask_DurationAndValidity(t *testing.T) {
	task := Task{Start: at(9, 0), End: at(10, 30)}
	assert.Equal(t, 90*time.Minute, task.Duration())
	assert.True(t, task.IsValid())

	task.End = task.Start
	assert.False(t, task.IsValid())
}

func TestTask_OnDay(t *testing.T) {
	task := Task{Start: at(23, 30), End: at(0, 30).AddDate(0, 0, 1)}
	assert.True(t, task.OnDay(at(0, 0)))
	assert.False(t, task.OnDay(at(0, 0).AddDate(0, 0, 1)))
}

func TestNewTaskID_Unique(t *testing.T) {
	a, b := NewTaskID(), NewTaskID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestCategory_Duration(t *testing.T) {
	assert.Equal(t, DefaultTaskDuration, Category{ID: "x"}.Duration())
	assert.Equal(t, 90*time.Minute, Category{ID: "gym", DefaultDuration: 90 * time.Minute}.Duration())
}

func TestCategory_Ref(t *testing.T) {
	c := Category{ID: "work", Name: "Work", Color: "#ff0000", Icon: "W"}
	assert.Equal(t, CategoryRef{ID: "work", Color: "#ff0000", Icon: "W"}, c.Ref())
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(at(15, 20))
	assert.Equal(t, at(0, 0), start)
	assert.Equal(t, at(0, 0).AddDate(0, 0, 1), end)
}

func TestSameDay_UsesSecondLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 20:00 UTC is 05:00 the next day in JST.
	a := at(20, 0)
	b := time.Date(2025, 3, 15, 12, 0, 0, 0, tokyo)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, at(12, 0).In(tokyo)))
}
