package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/runoshun/taskring/internal/domain"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// parseDay reads a day argument relative to now.
func parseDay(s string, now time.Time) (time.Time, error) {
	today := domain.StartOfDay(now)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	d, err := time.ParseInLocation(dateLayout, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return d, nil
}

// parseClock reads an HH:MM time on day.
func parseClock(s string, day time.Time) (time.Time, error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// formatSpan renders an interval as "09:00-10:30", marking a next-day end.
func formatSpan(start, end time.Time) string {
	s := start.Format(clockLayout) + "-" + end.Format(clockLayout)
	if !domain.SameDay(start, end) && !end.Equal(domain.StartOfDay(end)) {
		s += "+1"
	}
	return s
}

// formatDuration renders d as "1h30m", "45m" or "2h".
func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, m)
	}
}
