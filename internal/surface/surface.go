// Package surface manages the drawable target a battlefield renders into:
// creating it inside the host's mount point, sizing it, and following
// host-window resizes when auto-resize is on.
package surface

import (
	"github.com/vovakirdan/battlefield/internal/core"
)

// Reference dimensions used to keep the 3:2 aspect ratio on resize.
const (
	ReferenceWidth  = 900
	ReferenceHeight = 600
)

// ClassName is attached to every surface so hosts can tell it apart from
// their own children.
const ClassName = "battlefield"

// Surface is a drawable target. Width and Height are display dimensions in
// host units (pixels for graphical hosts); Screen is the cell buffer
// renderers draw into.
type Surface struct {
	Width     float64
	Height    float64
	Visible   bool
	ClassName string

	screen *core.Screen
}

func newSurface(width, height float64) *Surface {
	return &Surface{
		Width:     width,
		Height:    height,
		ClassName: ClassName,
		screen:    core.NewScreen(0, 0),
	}
}

// Screen returns the cell buffer backing this surface.
func (s *Surface) Screen() *core.Screen {
	return s.screen
}

// Mount is the host container a surface is attached to.
type Mount interface {
	// ClientWidth returns the current inner width of the container.
	ClientWidth() float64
	// Clear detaches every child of the container.
	Clear()
	// Attach appends s as the container's last child.
	Attach(s *Surface)
}

// Window is the host's process-wide source of resize events. OnResize
// returns a function that removes the handler.
type Window interface {
	OnResize(fn func()) (cancel func())
}
