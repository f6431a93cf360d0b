// Package loop provides the single-threaded callback loop that drives a
// battlefield. Timers and asynchronous collaborators never run callbacks on
// their own goroutines; they post them here, and whoever owns the loop
// (a Bubble Tea program or a headless runner) executes them one at a time.
package loop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Timer is a pending timeout or interval. Stop is safe to call more than
// once and from within the timer's own callback.
type Timer interface {
	Stop()
}

// Scheduler schedules callbacks on the loop.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
	Every(d time.Duration, fn func()) Timer
}

// Poster hands a callback to the loop from any goroutine.
type Poster interface {
	Post(fn func())
}

// Loop is an unbounded FIFO of callbacks executed by a single consumer.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	ready   chan struct{}
}

// New creates an empty loop.
func New() *Loop {
	return &Loop{ready: make(chan struct{}, 1)}
}

// Post enqueues fn. It never blocks, so it may be called from the loop itself.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.ready <- struct{}{}:
	default:
	}
}

// Ready is signalled whenever callbacks may be waiting.
func (l *Loop) Ready() <-chan struct{} {
	return l.ready
}

// Drain runs every callback queued so far, including ones posted while
// draining, and returns how many ran. It must only be called by the consumer.
func (l *Loop) Drain() int {
	n := 0
	for {
		l.mu.Lock()
		batch := l.pending
		l.pending = nil
		l.mu.Unlock()

		if len(batch) == 0 {
			return n
		}
		for _, fn := range batch {
			fn()
			n++
		}
	}
}

// Run consumes callbacks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.ready:
		}
	}
}

// AfterFunc runs fn on the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &timer{}
	t.clock = time.AfterFunc(d, func() {
		l.Post(t.guard(fn))
	})
	return t
}

// Every runs fn on the loop each time d elapses, until stopped.
func (l *Loop) Every(d time.Duration, fn func()) Timer {
	t := &timer{done: make(chan struct{})}
	ticker := time.NewTicker(d)
	t.ticker = ticker
	guarded := t.guard(fn)
	go func() {
		for {
			select {
			case <-t.done:
				return
			case <-ticker.C:
				l.Post(guarded)
			}
		}
	}()
	return t
}

type timer struct {
	stopped atomic.Bool
	once    sync.Once
	clock   *time.Timer
	ticker  *time.Ticker
	done    chan struct{}
}

// guard drops callbacks that were already queued when Stop was called.
func (t *timer) guard(fn func()) func() {
	return func() {
		if t.stopped.Load() {
			return
		}
		fn()
	}
}

func (t *timer) Stop() {
	t.stopped.Store(true)
	t.once.Do(func() {
		if t.clock != nil {
			t.clock.Stop()
		}
		if t.ticker != nil {
			t.ticker.Stop()
			close(t.done)
		}
	})
}

var _ Scheduler = (*Loop)(nil)
var _ Poster = (*Loop)(nil)
