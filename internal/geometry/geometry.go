// Package geometry converts between pointer positions on the ring, angles and
// times of day.
//
// Angles are screen angles in degrees: 0 points right and values grow
// clockwise because screen y grows downward. 00:00 is drawn at TopOfRing
// rotated by the zero position. Every function is total: degenerate input
// falls back to a fixed angle instead of producing NaN.
package geometry

import (
	"math"
	"time"

	"github.com/runoshun/taskring/internal/domain"
)

// Dial constants.
const (
	TopOfRing        = 270.0 // Screen angle of 12 o'clock
	FullCircle       = 360.0
	DegreesPerHour   = 15.0
	MinutesPerDegree = 4.0
	MinutesPerDay    = 1440
)

// Normalize wraps deg into [0, 360). NaN and infinities map to 0.
func Normalize(deg float64) float64 {
	if !finite(deg) {
		return 0
	}
	d := math.Mod(deg, FullCircle)
	if d < 0 {
		d += FullCircle
	}
	// -1e-15 + 360 rounds up to 360.
	if d >= FullCircle {
		d = 0
	}
	return d
}

// PointAngle returns the screen angle of p seen from center.
// A zero-length vector yields the fallback angle TopOfRing + zero.
func PointAngle(p, center domain.Point, zero float64) float64 {
	dx := p.X - center.X
	dy := p.Y - center.Y
	if !finite(dx) || !finite(dy) || (dx == 0 && dy == 0) {
		return Normalize(TopOfRing + zero)
	}
	return Normalize(math.Atan2(dy, dx) * 180 / math.Pi)
}

// TimeForPoint maps a pointer position to a time of day on baseDate.
func TimeForPoint(p, center domain.Point, baseDate time.Time, zero float64) time.Time {
	return AngleToTime(PointAngle(p, center, zero), baseDate, zero)
}

// AngleToTime maps a screen angle to a time of day on baseDate, rounded to
// the minute.
func AngleToTime(angle float64, baseDate time.Time, zero float64) time.Time {
	deg := Normalize(angle - TopOfRing - zero)
	minutes := int(math.Round(deg*MinutesPerDegree)) % MinutesPerDay
	return AtMinutes(baseDate, minutes)
}

// TimeToAngle maps t's time of day to a screen angle.
func TimeToAngle(t time.Time, zero float64) float64 {
	return Normalize(float64(MinutesOfDay(t))/MinutesPerDegree + TopOfRing + zero)
}

// MinutesOfDay returns minutes since midnight, ignoring seconds.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// AtMinutes returns baseDate's calendar day at the given minutes since midnight.
// minutes is wrapped into [0, 1440).
func AtMinutes(baseDate time.Time, minutes int) time.Time {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	y, m, d := baseDate.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, baseDate.Location())
}

// ClockDelta returns the shortest signed clock distance from one time of day
// to another, in (-12h, 12h].
func ClockDelta(from, to time.Time) time.Duration {
	d := MinutesOfDay(to) - MinutesOfDay(from)
	half := MinutesPerDay / 2
	d = ((d+half)%MinutesPerDay+MinutesPerDay)%MinutesPerDay - half
	if d == -half {
		d = half
	}
	return time.Duration(d) * time.Minute
}

// Arc is a task drawn on the ring.
type Arc struct {
	Start float64 // Screen angle of the start boundary
	End   float64 // Screen angle of the end boundary
	Sweep float64 // Clockwise length in degrees, at most 360
}

// AnglesForTask returns the arc of t. An end earlier than the start in clock
// time wraps past midnight.
func AnglesForTask(t domain.Task, zero float64) Arc {
	s := MinutesOfDay(t.Start)
	e := MinutesOfDay(t.End.In(t.Start.Location()))
	if e < s {
		e += MinutesPerDay
	}
	sweep := float64(e-s) / MinutesPerDegree
	if t.Duration() >= domain.Day {
		sweep = FullCircle
	}
	offset := TopOfRing + zero
	return Arc{
		Start: Normalize(float64(s)/MinutesPerDegree + offset),
		End:   Normalize(float64(e)/MinutesPerDegree + offset),
		Sweep: sweep,
	}
}

// Mid returns the angle halfway along the arc.
func (a Arc) Mid() float64 {
	if a.Sweep >= FullCircle {
		return Normalize(a.Start + FullCircle/2)
	}
	return MidAngle(a.Start, a.End)
}

// Contains reports whether angle lies on the arc, boundaries included.
func (a Arc) Contains(angle float64) bool {
	if a.Sweep >= FullCircle {
		return true
	}
	return Normalize(angle-a.Start) <= a.Sweep
}

// MidAngle averages two boundary angles. When the arc crosses the 0/360
// seam (end < start) the mean is taken across the seam.
func MidAngle(start, end float64) float64 {
	if end < start {
		return Normalize((start + end + FullCircle) / 2)
	}
	return Normalize((start + end) / 2)
}

// AngleDistance returns the unsigned angular distance between a and b, in [0, 180].
func AngleDistance(a, b float64) float64 {
	d := Normalize(a - b)
	if d > FullCircle/2 {
		d = FullCircle - d
	}
	return d
}

// PointAt returns the point at radius r and screen angle deg around center.
func PointAt(center domain.Point, r, deg float64) domain.Point {
	rad := Normalize(deg) * math.Pi / 180
	if !finite(r) {
		r = 0
	}
	return domain.Point{
		X: center.X + r*math.Cos(rad),
		Y: center.Y + r*math.Sin(rad),
	}
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b domain.Point) float64 {
	d := math.Hypot(a.X-b.X, a.Y-b.Y)
	if !finite(d) {
		return math.MaxFloat64
	}
	return d
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
