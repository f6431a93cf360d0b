package surface

import (
	"sort"
	"sync"
)

// Container is an in-memory Mount used by terminal and headless hosts.
type Container struct {
	width    float64
	children []*Surface
}

// NewContainer creates a container with the given inner width.
func NewContainer(width float64) *Container {
	return &Container{width: width}
}

// SetClientWidth records a new inner width, typically after a host resize.
func (c *Container) SetClientWidth(w float64) {
	c.width = w
}

func (c *Container) ClientWidth() float64 {
	return c.width
}

func (c *Container) Clear() {
	c.children = nil
}

func (c *Container) Attach(s *Surface) {
	c.children = append(c.children, s)
}

// Children returns the attached surfaces in order.
func (c *Container) Children() []*Surface {
	return c.children
}

// Broadcaster is a Window that fans a resize notification out to every
// registered handler.
type Broadcaster struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func()
}

// NewBroadcaster creates a window with no handlers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{handlers: make(map[int]func())}
}

func (b *Broadcaster) OnResize(fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

// Resize notifies every handler, in registration order.
func (b *Broadcaster) Resize() {
	b.mu.Lock()
	ids := make([]int, 0, len(b.handlers))
	for id := range b.handlers {
		ids = append(ids, id)
	}
	b.mu.Unlock()

	sort.Ints(ids)
	for _, id := range ids {
		b.mu.Lock()
		fn, ok := b.handlers[id]
		b.mu.Unlock()
		if ok {
			fn()
		}
	}
}

// Handlers returns the number of registered handlers.
func (b *Broadcaster) Handlers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}

var _ Mount = (*Container)(nil)
var _ Window = (*Broadcaster)(nil)
