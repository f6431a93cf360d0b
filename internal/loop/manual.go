package loop

import (
	"sort"
	"time"
)

// Manual is a deterministic Scheduler and Poster whose clock only moves
// when Advance is called. It is meant for tests and replays.
type Manual struct {
	now     time.Duration
	seq     int
	timers  []*manualTimer
	pending []func()
}

// NewManual creates a manual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

type manualTimer struct {
	m        *Manual
	seq      int
	due      time.Duration
	interval time.Duration
	fn       func()
	stopped  bool
}

func (t *manualTimer) Stop() {
	t.stopped = true
}

// Now returns the elapsed manual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Post queues fn until the next Drain or Advance.
func (m *Manual) Post(fn func()) {
	m.pending = append(m.pending, fn)
}

// AfterFunc schedules fn to run once, d after the current manual time.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	return m.add(d, 0, fn)
}

// Every schedules fn every d. Non-positive intervals are bumped to 1ns.
func (m *Manual) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		d = time.Nanosecond
	}
	return m.add(d, d, fn)
}

func (m *Manual) add(d, interval time.Duration, fn func()) *manualTimer {
	m.seq++
	t := &manualTimer{m: m, seq: m.seq, due: m.now + d, interval: interval, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// Drain runs posted callbacks, including ones posted while draining.
func (m *Manual) Drain() int {
	n := 0
	for len(m.pending) > 0 {
		batch := m.pending
		m.pending = nil
		for _, fn := range batch {
			fn()
			n++
		}
	}
	return n
}

// Pending reports how many live timers remain.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due timers in time order
// (ties broken by creation order) and draining posted callbacks after each.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	m.Drain()
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.due
		if next.interval > 0 {
			next.due += next.interval
		} else {
			next.stopped = true
		}
		next.fn()
		m.Drain()
	}
	m.now = target
	m.compact()
}

func (m *Manual) nextDue(limit time.Duration) *manualTimer {
	live := make([]*manualTimer, 0, len(m.timers))
	for _, t := range m.timers {
		if !t.stopped && t.due <= limit {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].due != live[j].due {
			return live[i].due < live[j].due
		}
		return live[i].seq < live[j].seq
	})
	return live[0]
}

func (m *Manual) compact() {
	kept := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped {
			kept = append(kept, t)
		}
	}
	m.timers = kept
}

var _ Scheduler = (*Manual)(nil)
var _ Poster = (*Manual)(nil)
