// Package domain contains core business entities and interfaces.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Day is the length of the ring's 24h frame.
const Day = 24 * time.Hour

// DefaultTaskDuration is used when a category carries no duration hint.
const DefaultTaskDuration = time.Hour

// CategoryRef is the part of a category a task carries around.
// The core treats color and icon as opaque strings.
type CategoryRef struct {
	ID    string `json:"id"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// Task is a time-bound activity placed on the ring.
// Fields are ordered to minimize memory padding.
type Task struct {
	Start     time.Time   `json:"start"`           // Absolute start
	End       time.Time   `json:"end"`             // Absolute end, always after Start
	Category  CategoryRef `json:"category"`        // Category the task was created from
	ID        string      `json:"id"`              // Stable unique id
	Title     string      `json:"title,omitempty"` // Optional label
	Completed bool        `json:"completed"`       // Completion flag
}

// NewTaskID returns a fresh task id.
func NewTaskID() string {
	return uuid.NewString()
}

// Duration returns End - Start.
func (t *Task) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// IsValid reports whether the task's end is strictly after its start.
func (t *Task) IsValid() bool {
	return t.End.After(t.Start)
}

// Wraps reports whether the task crosses midnight of its start day.
func (t *Task) Wraps() bool {
	return !SameDay(t.Start, t.End) && !t.End.Equal(StartOfDay(t.End))
}

// Overlaps reports whether [t.Start, t.End) intersects [o.Start, o.End).
func (t *Task) Overlaps(o *Task) bool {
	return t.Start.Before(o.End) && t.End.After(o.Start)
}

// OnDay reports whether the task starts on the calendar day of day.
func (t *Task) OnDay(day time.Time) bool {
	return SameDay(t.Start.In(day.Location()), day)
}

// Category is a drag source supplied by the category provider.
// Fields are ordered to minimize memory padding.
type Category struct {
	ID              string        `yaml:"id" json:"id"`
	Name            string        `yaml:"name" json:"name"`
	Color           string        `yaml:"color" json:"color"`
	Icon            string        `yaml:"icon" json:"icon"`
	DefaultDuration time.Duration `yaml:"-" json:"defaultDuration"`
}

// Ref returns the reference stored on tasks created from this category.
func (c Category) Ref() CategoryRef {
	return CategoryRef{ID: c.ID, Color: c.Color, Icon: c.Icon}
}

// Duration returns the default duration hint, falling back to DefaultTaskDuration.
func (c Category) Duration() time.Duration {
	if c.DefaultDuration <= 0 {
		return DefaultTaskDuration
	}
	return c.DefaultDuration
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
// b's location is used for both.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayBounds returns [00:00, next 00:00) of day.
func DayBounds(day time.Time) (time.Time, time.Time) {
	start := StartOfDay(day)
	return start, start.AddDate(0, 0, 1)
}
