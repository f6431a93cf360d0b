package surface

// Manager owns the single live Surface of one battlefield.
type Manager struct {
	mount      Mount
	autoResize bool
	current    *Surface
	release    func()
}

// NewManager creates a manager attached to mount.
func NewManager(mount Mount) *Manager {
	return &Manager{mount: mount}
}

// SetAutoResize updates the resize policy. It takes effect on the next
// ApplyResize.
func (m *Manager) SetAutoResize(on bool) {
	m.autoResize = on
}

// Current returns the live surface, or nil before the first Create.
func (m *Manager) Current() *Surface {
	return m.current
}

// Create replaces whatever the mount holds with a new hidden surface of the
// given size, then applies the resize policy once.
func (m *Manager) Create(width, height float64) *Surface {
	m.mount.Clear()
	m.current = newSurface(width, height)
	m.mount.Attach(m.current)
	m.ApplyResize()
	return m.current
}

// ApplyResize scales the surface to the mount's width at the reference
// aspect ratio. It does nothing when auto-resize is off.
func (m *Manager) ApplyResize() {
	if !m.autoResize || m.current == nil {
		return
	}
	ratio := m.mount.ClientWidth() / ReferenceWidth
	m.current.Width = ratio * ReferenceWidth
	m.current.Height = ratio * ReferenceHeight
}

// Listen subscribes ApplyResize to w. Calling it again while subscribed is
// a no-op.
func (m *Manager) Listen(w Window) {
	if m.release != nil || w == nil {
		return
	}
	m.release = w.OnResize(m.ApplyResize)
}

// Release removes the resize subscription, if any.
func (m *Manager) Release() {
	if m.release == nil {
		return
	}
	m.release()
	m.release = nil
}

// Listening reports whether a resize subscription is active.
func (m *Manager) Listening() bool {
	return m.release != nil
}
