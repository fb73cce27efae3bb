package stock

import (
	"slices"
	"sync"
	"time"
)

// EditIdleTimeout is how long after the last quantity edit the list stays frozen.
const EditIdleTimeout = 30 * time.Second

// Stabilizer keeps the product list from re-sorting under the user while
// quantities are being edited. Arrange sorts normally until Touch is called;
// from then on it preserves the last order until the idle timeout passes
// without another Touch.
type Stabilizer struct {
	mu       sync.Mutex
	idle     time.Duration
	now      func() time.Time
	lastEdit time.Time
	order    []string
}

type StabilizerOption func(*Stabilizer)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) StabilizerOption {
	return func(s *Stabilizer) { s.now = now }
}

func NewStabilizer(idle time.Duration, opts ...StabilizerOption) *Stabilizer {
	s := &Stabilizer{idle: idle, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Touch records a quantity edit and restarts the idle timer.
func (s *Stabilizer) Touch() {
	s.mu.Lock()
	s.lastEdit = s.now()
	s.mu.Unlock()
}

// Settle ends the edit session immediately.
func (s *Stabilizer) Settle() {
	s.mu.Lock()
	s.lastEdit = time.Time{}
	s.mu.Unlock()
}

// Editing reports whether an edit happened within the idle timeout.
func (s *Stabilizer) Editing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing()
}

func (s *Stabilizer) editing() bool {
	return !s.lastEdit.IsZero() && s.now().Sub(s.lastEdit) < s.idle
}

// Arrange returns items in display order. During an edit session items keep
// their previous positions, unseen items are appended in sorted order and
// vanished items drop out.
func (s *Stabilizer) Arrange(items []Item) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.editing() || s.order == nil {
		sorted := Sorted(items)
		s.order = ids(sorted)
		return sorted
	}

	pos := make(map[string]int, len(s.order))
	for i, id := range s.order {
		pos[id] = i
	}
	var known, fresh []Item
	for _, it := range items {
		if _, ok := pos[it.ID]; ok {
			known = append(known, it)
		} else {
			fresh = append(fresh, it)
		}
	}
	slices.SortStableFunc(known, func(a, b Item) int { return pos[a.ID] - pos[b.ID] })
	Sort(fresh)

	out := append(known, fresh...)
	s.order = ids(out)
	return out
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
