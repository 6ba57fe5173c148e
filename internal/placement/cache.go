package placement

import (
	"encoding/binary"
	"hash/fnv"
	"sort"
	"time"

	"github.com/runoshun/taskring/internal/domain"
)

// cacheKey identifies a request together with the task set it ran against.
type cacheKey struct {
	taskID      string
	preferred   int64
	duration    time.Duration
	fingerprint uint64
}

func newCacheKey(req Request, others []domain.Task) cacheKey {
	return cacheKey{
		taskID:      req.TaskID,
		preferred:   req.PreferredStart.UnixNano(),
		duration:    req.Duration,
		fingerprint: fingerprint(req, others),
	}
}

// fingerprint hashes the intervals and bounds, independent of slice order.
func fingerprint(req Request, others []domain.Task) uint64 {
	spans := make([][2]int64, 0, len(others))
	for _, o := range others {
		spans = append(spans, [2]int64{o.Start.UnixNano(), o.End.UnixNano()})
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i][0] != spans[j][0] {
			return spans[i][0] < spans[j][0]
		}
		return spans[i][1] < spans[j][1]
	})

	h := fnv.New64a()
	var buf [8]byte
	write := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}
	write(boundNanos(req.DayStart))
	write(boundNanos(req.DayEnd))
	for _, s := range spans {
		write(s[0])
		write(s[1])
	}
	return h.Sum64()
}

func boundNanos(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

// Cache is a bounded FIFO memo of placement results.
type Cache struct {
	entries map[cacheKey]Placement
	order   []cacheKey
	size    int
	hits    int
	misses  int
}

// NewCache creates a cache holding at most size entries.
// A non-positive size yields a cache that stores nothing.
func NewCache(size int) *Cache {
	if size < 0 {
		size = 0
	}
	return &Cache{
		entries: make(map[cacheKey]Placement, size),
		size:    size,
	}
}

func (c *Cache) get(k cacheKey) (Placement, bool) {
	p, ok := c.entries[k]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return p, ok
}

func (c *Cache) put(k cacheKey, p Placement) {
	if c.size == 0 {
		return
	}
	if _, ok := c.entries[k]; ok {
		c.entries[k] = p
		return
	}
	if len(c.order) >= c.size {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.order = append(c.order, k)
	c.entries[k] = p
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() (hits, misses int) {
	return c.hits, c.misses
}

// Reset drops every entry and zeroes the hit and miss counts.
func (c *Cache) Reset() {
	c.entries = make(map[cacheKey]Placement, c.size)
	c.order = nil
	c.hits, c.misses = 0, 0
}
