package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	now := time.Date(2025, 3, 14, 17, 45, 0, 0, time.Local)

	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "", want: time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)},
		{in: "today", want: time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)},
		{in: "Tomorrow", want: time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local)},
		{in: "yesterday", want: time.Date(2025, 3, 13, 0, 0, 0, 0, time.Local)},
		{in: "2025-12-31", want: time.Date(2025, 12, 31, 0, 0, 0, 0, time.Local)},
		{in: "next week", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDay(tt.in, now)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestParseClock(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)

	got, err := parseClock("09:30", day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 9, 30, 0, 0, time.Local), got)

	_, err = parseClock("25:00", day)
	assert.Error(t, err)
	_, err = parseClock("9am", day)
	assert.Error(t, err)
}

func TestFormatSpan(t *testing.T) {
	d := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)

	assert.Equal(t, "09:00-10:30", formatSpan(d.Add(9*time.Hour), d.Add(10*time.Hour+30*time.Minute)))
	assert.Equal(t, "23:30-00:15+1", formatSpan(d.Add(23*time.Hour+30*time.Minute), d.Add(24*time.Hour+15*time.Minute)))
	assert.Equal(t, "23:00-00:00", formatSpan(d.Add(23*time.Hour), d.Add(24*time.Hour)))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45m", formatDuration(45*time.Minute))
	assert.Equal(t, "2h", formatDuration(2*time.Hour))
	assert.Equal(t, "1h30m", formatDuration(90*time.Minute))
}
