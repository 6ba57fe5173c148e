// Package placement finds a non-overlapping slot for a task as close as
// possible to the requested start.
package placement

import (
	"time"

	"github.com/runoshun/taskring/internal/domain"
)

// Search defaults.
const (
	DefaultStep  = 15 * time.Minute
	DefaultBound = 12 * time.Hour
)

// Request describes one placement query.
// Fields are ordered to minimize memory padding.
type Request struct {
	PreferredStart time.Time
	DayStart       time.Time     // Inclusive lower bound
	DayEnd         time.Time     // Inclusive upper bound for the end
	Others         []domain.Task // Tasks to avoid; the task itself is skipped by id
	TaskID         string
	Duration       time.Duration
}

// Placement is the resolved interval.
type Placement struct {
	Start     time.Time
	End       time.Time
	Moved     bool // Differs from the preferred interval
	Exhausted bool // No free slot was found; the preferred interval is returned as is
}

// Err returns domain.ErrPlacementExhausted when the search fell back to an
// overlapping interval.
func (p Placement) Err() error {
	if p.Exhausted {
		return domain.ErrPlacementExhausted
	}
	return nil
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithStep sets the search increment.
func WithStep(step time.Duration) Option {
	return func(s *Searcher) {
		if step > 0 {
			s.step = step
		}
	}
}

// WithBound sets how far from the preferred start the search goes.
func WithBound(bound time.Duration) Option {
	return func(s *Searcher) {
		if bound > 0 {
			s.bound = bound
		}
	}
}

// WithCache memoizes results in c.
func WithCache(c *Cache) Option {
	return func(s *Searcher) {
		s.cache = c
	}
}

// Searcher resolves placement requests. It is not safe for concurrent use
// when a cache is attached.
type Searcher struct {
	cache *Cache
	step  time.Duration
	bound time.Duration
}

// NewSearcher creates a Searcher with 15 minute steps up to 12 hours.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{step: DefaultStep, bound: DefaultBound}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns the preferred interval when it is free, otherwise the
// closest free interval at step increments. At equal distance the later
// candidate wins. When nothing fits within the bound the preferred interval
// is returned with Exhausted set.
func (s *Searcher) Resolve(req Request) Placement {
	others := make([]domain.Task, 0, len(req.Others))
	for _, o := range req.Others {
		if o.ID != req.TaskID || req.TaskID == "" {
			others = append(others, o)
		}
	}

	var key cacheKey
	if s.cache != nil {
		key = newCacheKey(req, others)
		if p, ok := s.cache.get(key); ok {
			return p
		}
	}

	p := s.search(req, others)
	if s.cache != nil {
		s.cache.put(key, p)
	}
	return p
}

func (s *Searcher) search(req Request, others []domain.Task) Placement {
	start := req.PreferredStart
	if fits(start, req, others) {
		return Placement{Start: start, End: start.Add(req.Duration)}
	}

	steps := int(s.bound / s.step)
	for k := 1; k <= steps; k++ {
		offset := time.Duration(k) * s.step
		if later := start.Add(offset); fits(later, req, others) {
			return Placement{Start: later, End: later.Add(req.Duration), Moved: true}
		}
		if earlier := start.Add(-offset); fits(earlier, req, others) {
			return Placement{Start: earlier, End: earlier.Add(req.Duration), Moved: true}
		}
	}

	return Placement{Start: start, End: start.Add(req.Duration), Exhausted: true}
}

func fits(start time.Time, req Request, others []domain.Task) bool {
	end := start.Add(req.Duration)
	if !req.DayStart.IsZero() && start.Before(req.DayStart) {
		return false
	}
	if !req.DayEnd.IsZero() && end.After(req.DayEnd) {
		return false
	}
	for i := range others {
		if Overlaps(start, end, others[i].Start, others[i].End) {
			return false
		}
	}
	return true
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
