// Package sequence provides the per-kind counters behind node titles.
//
// A counter starts at zero and moves by one on every Next. It is never
// decremented; removing a node does not give its number back.
package sequence

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Counter is a monotonically increasing, resettable counter. The zero value
// is ready to use and safe for concurrent use.
type Counter struct {
	n atomic.Int64
}

// Next increments the counter and returns the new value.
func (c *Counter) Next() int64 {
	return c.n.Add(1)
}

// Current returns the last value handed out by Next.
func (c *Counter) Current() int64 {
	return c.n.Load()
}

// AdvanceTo raises the counter to n if it is lower. It never decreases the
// counter and is used to resume numbering from persisted state.
func (c *Counter) AdvanceTo(n int64) {
	for {
		cur := c.n.Load()
		if cur >= n || c.n.CompareAndSwap(cur, n) {
			return
		}
	}
}

// Reset puts the counter back to zero.
func (c *Counter) Reset() {
	c.n.Store(0)
}

// Sequencer owns one Counter per key.
type Sequencer[K ~string] struct {
	mu       sync.Mutex
	counters map[K]*Counter
}

// New creates an empty sequencer.
func New[K ~string]() *Sequencer[K] {
	return &Sequencer[K]{counters: make(map[K]*Counter)}
}

// For returns the counter of key, creating it on first use. The same
// pointer is returned for the lifetime of the sequencer.
func (s *Sequencer[K]) For(key K) *Counter {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.counters[key]
	if !ok {
		c = &Counter{}
		s.counters[key] = c
	}
	return c
}

// Reset zeroes the counter of key.
func (s *Sequencer[K]) Reset(key K) {
	s.For(key).Reset()
}

// ResetAll zeroes every counter.
func (s *Sequencer[K]) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.counters {
		c.Reset()
	}
}

// Restore advances each counter to the value in snapshot.
func (s *Sequencer[K]) Restore(snapshot map[K]int64) {
	for k, n := range snapshot {
		s.For(k).AdvanceTo(n)
	}
}

// Snapshot returns the current value of every counter.
func (s *Sequencer[K]) Snapshot() map[K]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[K]int64, len(s.counters))
	for k, c := range s.counters {
		out[k] = c.Current()
	}
	return out
}

// Keys returns the keys with a counter, sorted.
func (s *Sequencer[K]) Keys() []K {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]K, 0, len(s.counters))
	for k := range s.counters {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
