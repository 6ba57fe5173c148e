package geometry

import (
	"math"
	"testing"
	"time"

	"github.com/runoshun/taskring/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	center = domain.Point{X: 100, Y: 100}
	base   = time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
)

func at(h, m int) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), h, m, 0, 0, time.Local)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"in range", 123.5, 123.5},
		{"full circle", 360, 0},
		{"negative", -90, 270},
		{"large", 725, 5},
		{"tiny negative", -1e-15, 0},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(1), 0},
		{"neg inf", math.Inf(-1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.Less(t, got, 360.0)
		})
	}
}

func TestTimeForPoint_CardinalDirections(t *testing.T) {
	tests := []struct {
		name string
		p    domain.Point
		zero float64
		want time.Time
	}{
		{"top is midnight", domain.Point{X: 100, Y: 0}, 0, at(0, 0)},
		{"right is 06:00", domain.Point{X: 200, Y: 100}, 0, at(6, 0)},
		{"bottom is noon", domain.Point{X: 100, Y: 200}, 0, at(12, 0)},
		{"left is 18:00", domain.Point{X: 0, Y: 100}, 0, at(18, 0)},
		{"rotated 90 puts midnight right", domain.Point{X: 200, Y: 100}, 90, at(0, 0)},
		{"rotated 90 top is 18:00", domain.Point{X: 100, Y: 0}, 90, at(18, 0)},
		{"rotated 180 bottom is midnight", domain.Point{X: 100, Y: 200}, 180, at(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeForPoint(tt.p, center, base, tt.zero)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestTimeForPoint_CenterFallsBackToMidnight(t *testing.T) {
	got := TimeForPoint(center, center, base, 90)
	assert.True(t, at(0, 0).Equal(got), "got %v", got)
}

func TestTimeForPoint_NonFiniteInput(t *testing.T) {
	got := TimeForPoint(domain.Point{X: math.NaN(), Y: math.Inf(1)}, center, base, 45)
	assert.True(t, at(0, 0).Equal(got), "got %v", got)
}

func TestTimeForPoint_FiniteAndDeterministic(t *testing.T) {
	for zero := 0.0; zero < 360; zero += 15 {
		for deg := 0.0; deg < 360; deg += 7.3 {
			for _, r := range []float64{0, 0.001, 1, 50, 1e6} {
				p := PointAt(center, r, deg)
				first := TimeForPoint(p, center, base, zero)
				second := TimeForPoint(p, center, base, zero)

				require.True(t, first.Equal(second))
				require.True(t, domain.SameDay(first, base), "zero=%v deg=%v r=%v: %v", zero, deg, r, first)
				require.Zero(t, first.Second())
			}
		}
	}
}

func TestRoundTrip_WithinOneMinute(t *testing.T) {
	for zero := 0.0; zero < 360; zero += 15 {
		for minutes := 0; minutes < MinutesPerDay; minutes += 7 {
			tm := AtMinutes(base, minutes).Add(37 * time.Second)
			got := AngleToTime(TimeToAngle(tm, zero), base, zero)

			diff := tm.Sub(got)
			if diff < 0 {
				diff = -diff
			}
			require.Less(t, diff, time.Minute, "zero=%v t=%v got=%v", zero, tm, got)
		}
	}
}

func TestTimeToAngle(t *testing.T) {
	assert.InDelta(t, 270.0, TimeToAngle(at(0, 0), 0), 1e-9)
	assert.InDelta(t, 0.0, TimeToAngle(at(6, 0), 0), 1e-9)
	assert.InDelta(t, 90.0, TimeToAngle(at(12, 0), 0), 1e-9)
	assert.InDelta(t, 0.0, TimeToAngle(at(0, 0), 90), 1e-9)
	assert.InDelta(t, 270.25, TimeToAngle(at(0, 1), 0), 1e-9)
}

func TestAnglesForTask(t *testing.T) {
	tests := []struct {
		name  string
		task  domain.Task
		zero  float64
		start float64
		end   float64
		sweep float64
	}{
		{
			name:  "morning hour",
			task:  domain.Task{Start: at(9, 0), End: at(10, 0)},
			start: 45, end: 60, sweep: 15,
		},
		{
			name:  "wraps past midnight",
			task:  domain.Task{Start: at(23, 30), End: at(23, 30).Add(45 * time.Minute)},
			start: 262.5, end: 273.75, sweep: 11.25,
		},
		{
			name:  "rotated",
			task:  domain.Task{Start: at(0, 0), End: at(6, 0)},
			zero:  90,
			start: 0, end: 90, sweep: 90,
		},
		{
			name:  "full day",
			task:  domain.Task{Start: at(8, 0), End: at(8, 0).Add(24 * time.Hour)},
			start: 30, end: 30, sweep: 360,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arc := AnglesForTask(tt.task, tt.zero)
			assert.InDelta(t, tt.start, arc.Start, 1e-9)
			assert.InDelta(t, tt.end, arc.End, 1e-9)
			assert.InDelta(t, tt.sweep, arc.Sweep, 1e-9)
		})
	}
}

func TestMidAngle(t *testing.T) {
	assert.InDelta(t, 45.0, MidAngle(30, 60), 1e-9)
	assert.InDelta(t, 0.0, MidAngle(350, 10), 1e-9)
	assert.InDelta(t, 355.0, MidAngle(340, 10), 1e-9)
	assert.InDelta(t, 10.0, MidAngle(10, 10), 1e-9)
}

func TestArc_ContainsAndMid(t *testing.T) {
	arc := AnglesForTask(domain.Task{Start: at(23, 0), End: at(23, 0).Add(2 * time.Hour)}, 0)

	assert.True(t, arc.Contains(TimeToAngle(at(23, 30), 0)))
	assert.True(t, arc.Contains(TimeToAngle(at(0, 30), 0)))
	assert.False(t, arc.Contains(TimeToAngle(at(2, 0), 0)))
	assert.InDelta(t, TimeToAngle(at(0, 0), 0), arc.Mid(), 1e-9)
}

func TestClockDelta(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		want     time.Duration
	}{
		{"forward", at(9, 0), at(9, 30), 30 * time.Minute},
		{"backward", at(9, 30), at(9, 0), -30 * time.Minute},
		{"across midnight forward", at(23, 45), at(0, 15), 30 * time.Minute},
		{"across midnight backward", at(0, 15), at(23, 45), -30 * time.Minute},
		{"half day", at(0, 0), at(12, 0), 12 * time.Hour},
		{"unchanged", at(7, 0), at(7, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClockDelta(tt.from, tt.to))
		})
	}
}

func TestPointAt_RoundTripsThroughTimeForPoint(t *testing.T) {
	for _, zero := range []float64{0, 90, 195} {
		angle := TimeToAngle(at(14, 0), zero)
		p := PointAt(center, 80, angle)
		got := TimeForPoint(p, center, base, zero)
		assert.True(t, at(14, 0).Equal(got), "zero=%v got %v", zero, got)
	}
}
