package sandbox

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/battlefield/internal/core"
	"github.com/vovakirdan/battlefield/internal/engine"
	"github.com/vovakirdan/battlefield/internal/loop"
	"github.com/vovakirdan/battlefield/internal/surface"
)

// Surface units covered by one screen cell.
const (
	CellWidth  = 10
	CellHeight = 20
)

// frameBudget is the draw time automatic quality tries to stay under.
const frameBudget = 2 * time.Millisecond

func init() {
	engine.RegisterRenderer("debug", "Debug (colors, labels, HUD)", func(p loop.Poster) engine.Renderer {
		return newRenderer("debug", true, p)
	})
	engine.RegisterRenderer("bw", "Monochrome", func(p loop.Poster) engine.Renderer {
		return newRenderer("bw", false, p)
	})
}

// Renderer draws a sandbox simulation into a surface's cell buffer.
type Renderer struct {
	name    string
	colored bool
	post    loop.Poster

	theme    Theme
	loaded   bool
	disposed bool
	surface  *surface.Surface

	quality   engine.Quality
	effective float64

	frames     int
	frameStart time.Time
}

func newRenderer(name string, colored bool, post loop.Poster) *Renderer {
	return &Renderer{
		name:      name,
		colored:   colored,
		post:      post,
		quality:   engine.QualityAuto,
		effective: 1,
	}
}

// Name returns the registered renderer name.
func (r *Renderer) Name() string {
	return r.name
}

// LoadAssets parses the theme and posts onDone to the loop.
func (r *Renderer) LoadAssets(onDone func()) {
	theme, err := loadTheme()
	if err != nil {
		theme = Theme{TankGlyphs: []string{"^", ">", "v", "<"}, WreckGlyph: "x", ShotGlyph: "."}
	}
	r.post.Post(func() {
		r.theme = theme
		r.loaded = true
		onDone()
	})
}

func (r *Renderer) Init(s *surface.Surface) {
	r.surface = s
	r.fitScreen()
}

func (r *Renderer) Dispose() {
	r.disposed = true
	r.surface = nil
}

// Disposed reports whether Dispose was called.
func (r *Renderer) Disposed() bool {
	return r.disposed
}

func (r *Renderer) Quality() float64 {
	if r.quality.IsAuto() {
		return r.effective
	}
	return r.quality.Value()
}

func (r *Renderer) SetQuality(q engine.Quality) {
	r.quality = q
	if !q.IsAuto() {
		r.effective = q.Value()
	}
}

func (r *Renderer) PreRender() {
	if !r.ready() {
		return
	}
	r.fitScreen()
	r.surface.Screen().Clear()
	r.frameStart = time.Now()
}

func (r *Renderer) PostRender() {
	if !r.ready() {
		return
	}
	screen := r.surface.Screen()
	if r.theme.Border {
		screen.DrawBox(core.NewRect(0, 0, screen.Width(), screen.Height()), core.ColorGray)
	}
	r.frames++
	r.adjustQuality(time.Since(r.frameStart))
}

// Frames returns how many frames were completed.
func (r *Renderer) Frames() int {
	return r.frames
}

func (r *Renderer) ready() bool {
	return r.loaded && !r.disposed && r.surface != nil
}

// fitScreen keeps the cell buffer in step with the surface size, which the
// surface manager may change on resize.
func (r *Renderer) fitScreen() {
	if r.surface == nil {
		return
	}
	cols := int(r.surface.Width / CellWidth)
	rows := int(r.surface.Height / CellHeight)
	r.surface.Screen().Resize(cols, rows)
}

func (r *Renderer) adjustQuality(took time.Duration) {
	if !r.quality.IsAuto() {
		return
	}
	if took > frameBudget {
		r.effective = math.Max(0.3, r.effective-0.1)
	} else {
		r.effective = math.Min(1, r.effective+0.02)
	}
}

// draw paints one frame of s. It must run between PreRender and PostRender.
func (r *Renderer) draw(s *Simulation) {
	if !r.ready() {
		return
	}
	screen := r.surface.Screen()
	inner := core.NewRect(1, 1, screen.Width()-2, screen.Height()-2)
	if inner.W <= 0 || inner.H <= 0 {
		return
	}

	detailed := r.colored && r.Quality() >= 0.5
	for _, t := range s.tanks {
		x := inner.X + core.Project(t.x, float64(s.width), inner.W)
		y := inner.Y + core.Project(t.y, float64(s.height), inner.H)

		color := core.ColorDefault
		if r.colored {
			color = core.PaletteColor(s.teamIndex(t.team))
		}
		if t.energy <= 0 {
			screen.SetColored(x, y, firstRune(r.theme.WreckGlyph, 'x'), core.ColorGray)
			continue
		}
		screen.SetColored(x, y, r.headingGlyph(t.heading), color)
		if detailed && inner.Contains(x+1, y) {
			screen.SetColored(x+1, y, firstRune(t.name, '?'), color)
		}
	}

	if r.theme.HUD && screen.Height() > 0 {
		hud := fmt.Sprintf(" %s ", formatClock(s.elapsed, s.timeLimit))
		screen.DrawText(2, 0, hud, core.ColorWhite)
	}
}

func (r *Renderer) headingGlyph(heading float64) rune {
	// 0 = up, clockwise in quarter turns.
	q := int(math.Round(heading/(math.Pi/2))) % 4
	if q < 0 {
		q += 4
	}
	return firstRune(r.theme.TankGlyphs[q], '*')
}

func formatClock(elapsed, limit time.Duration) string {
	if limit <= 0 {
		return fmt.Sprintf("%.1fs", elapsed.Seconds())
	}
	return fmt.Sprintf("%.1fs / %.0fs", elapsed.Seconds(), limit.Seconds())
}

var _ engine.Renderer = (*Renderer)(nil)
