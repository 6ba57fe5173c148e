package placement

import (
	"testing"
	"time"

	"github.com/runoshun/taskring/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCache_RepeatedRequestHits(t *testing.T) {
	c := NewCache(4)
	s := NewSearcher(WithCache(c))
	req := dayRequest(at(9, 30), 30*time.Minute, task("a", 9, 0, 10, 0))

	first := s.Resolve(req)
	second := s.Resolve(req)

	assert.Equal(t, first, second)
	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestCache_TaskSetChangeMisses(t *testing.T) {
	c := NewCache(4)
	s := NewSearcher(WithCache(c))

	first := s.Resolve(dayRequest(at(9, 30), 30*time.Minute, task("a", 9, 0, 10, 0)))
	second := s.Resolve(dayRequest(at(9, 30), 30*time.Minute, task("a", 9, 0, 9, 15)))

	assert.True(t, at(10, 0).Equal(first.Start))
	assert.True(t, at(9, 30).Equal(second.Start))
	_, misses := c.Stats()
	assert.Equal(t, 2, misses)
}

func TestCache_OrderIndependentFingerprint(t *testing.T) {
	a := task("a", 9, 0, 10, 0)
	b := task("b", 13, 0, 14, 0)
	req1 := dayRequest(at(9, 30), time.Hour, a, b)
	req2 := dayRequest(at(9, 30), time.Hour, b, a)

	assert.Equal(t, fingerprint(req1, req1.Others), fingerprint(req2, req2.Others))
}

func TestCache_FIFOEviction(t *testing.T) {
	c := NewCache(2)
	s := NewSearcher(WithCache(c))

	for _, h := range []int{1, 2, 3} {
		s.Resolve(dayRequest(at(h, 0), time.Hour))
	}
	assert.Equal(t, 2, c.Len())

	// Oldest (01:00) was evicted, newest two remain.
	s.Resolve(dayRequest(at(3, 0), time.Hour))
	s.Resolve(dayRequest(at(1, 0), time.Hour))
	hits, _ := c.Stats()
	assert.Equal(t, 1, hits)
}

func TestCache_ZeroSizeStoresNothing(t *testing.T) {
	c := NewCache(0)
	s := NewSearcher(WithCache(c))

	s.Resolve(dayRequest(at(1, 0), time.Hour))
	s.Resolve(dayRequest(at(1, 0), time.Hour))

	assert.Equal(t, 0, c.Len())
	hits, _ := c.Stats()
	assert.Equal(t, 0, hits)
}

func TestCache_Reset(t *testing.T) {
	c := NewCache(2)
	s := NewSearcher(WithCache(c))
	req := dayRequest(at(1, 0), time.Hour, domain.Task{ID: "x", Start: at(5, 0), End: at(6, 0)})
	s.Resolve(req)
	s.Resolve(req)

	c.Reset()

	assert.Equal(t, 0, c.Len())
	hits, misses := c.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)

	s.Resolve(req)
	hits, misses = c.Stats()
	assert.Equal(t, 0, hits)
	assert.Equal(t, 1, misses)
}
