package glowgrid

import (
	"math"
	"math/rand/v2"
	"time"
)

// Ambient spawner interval clamp. The raw interval grows with the square
// root of the viewport area, so small viewports flicker more often.
const (
	ambientMinInterval = 200 * time.Millisecond
	ambientMaxInterval = 2 * time.Second
)

// Config holds the engine's tunable constants. Zero fields are filled with
// the DefaultConfig values by NewEngine.
type Config struct {
	// Width and Height are the initial logical viewport size in pixels.
	Width, Height int
	// TrailOpacity is the per-frame background blend opacity producing the
	// afterglow trail.
	TrailOpacity float64
	// ClickClearCount is how many rapid clicks clear the main surface.
	ClickClearCount int
	// ClickWindow is the rolling window for counting rapid clicks.
	ClickWindow time.Duration
	// MaxMarked is how many printed text cells emit electron bursts.
	MaxMarked int
	// BurstMin and BurstMax clamp the explosion burst size.
	BurstMin, BurstMax int
	// Seed seeds the engine's random source. Zero seeds from the clock.
	Seed uint64
	// Now overrides the time source. Nil uses time.Now.
	Now func() time.Time
}

// DefaultConfig returns the engine defaults for an 800x600 viewport.
func DefaultConfig() Config {
	return Config{
		Width:           800,
		Height:          600,
		TrailOpacity:    0.1,
		ClickClearCount: 10,
		ClickWindow:     300 * time.Millisecond,
		MaxMarked:       3,
		BurstMin:        20,
		BurstMax:        100,
	}
}

// Engine owns all animation state: the active electron and pinned cell
// collections, the two render surfaces, the ambient cell spawner, and the
// rapid-click counter. All mutation happens from the frame thread.
//
// Surfaces are optional: an engine without attached surfaces runs the full
// simulation headless, which is how the tests drive it.
type Engine struct {
	cfg Config
	rng *rand.Rand

	bg, main *Surface
	w, h     int

	electrons []*Electron
	pinned    []*Cell

	ambientDeadline time.Time
	clicks          *ClickCounter
	presenter       *Presenter
	nowFn           func() time.Time
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.TrailOpacity <= 0 || cfg.TrailOpacity > 1 {
		cfg.TrailOpacity = def.TrailOpacity
	}
	if cfg.ClickClearCount <= 0 {
		cfg.ClickClearCount = def.ClickClearCount
	}
	if cfg.ClickWindow <= 0 {
		cfg.ClickWindow = def.ClickWindow
	}
	if cfg.MaxMarked <= 0 {
		cfg.MaxMarked = def.MaxMarked
	}
	if cfg.BurstMin <= 0 {
		cfg.BurstMin = def.BurstMin
	}
	if cfg.BurstMax <= 0 {
		cfg.BurstMax = def.BurstMax
	}
	if cfg.BurstMax < cfg.BurstMin {
		cfg.BurstMax = cfg.BurstMin
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Engine{
		cfg:    cfg,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		w:      cfg.Width,
		h:      cfg.Height,
		clicks: NewClickCounter(cfg.ClickClearCount, cfg.ClickWindow),
		nowFn:  cfg.Now,
	}
}

// AttachSurfaces hands the engine its background and main render surfaces.
// The background grid is drawn immediately and redrawn after every resize;
// a resize while text is displayed reprints the text against the new
// viewport.
func (e *Engine) AttachSurfaces(bg, main *Surface) {
	e.bg = bg
	e.main = main
	e.drawGrid()
	bg.OnResize(func(s *Surface) {
		e.w, e.h = s.Width(), s.Height()
		e.drawGrid()
	})
	main.OnResize(func(*Surface) {
		if e.presenter != nil {
			e.presenter.handleResize(e.now())
		}
	})
}

// Background returns the static grid surface (may be nil when headless).
func (e *Engine) Background() *Surface { return e.bg }

// Main returns the foreground animation surface (may be nil when headless).
func (e *Engine) Main() *Surface { return e.main }

// Size returns the logical viewport size.
func (e *Engine) Size() (w, h int) { return e.w, e.h }

// Rand returns the engine's seeded random source.
func (e *Engine) Rand() *rand.Rand { return e.rng }

// SetPresenter wires a text presenter to be pumped every frame.
func (e *Engine) SetPresenter(p *Presenter) { e.presenter = p }

func (e *Engine) now() time.Time { return e.nowFn() }

// AddElectron registers an electron in the active collection.
func (e *Engine) AddElectron(el *Electron) {
	e.electrons = append(e.electrons, el)
}

// addPinned registers a cell in the pinned collection.
func (e *Engine) addPinned(c *Cell) {
	e.pinned = append(e.pinned, c)
}

// ClearPinned empties the pinned cell collection. The next frame's trail
// blend stops showing them as the residue fades.
func (e *Engine) ClearPinned() {
	e.pinned = e.pinned[:0]
}

// ElectronCount returns the number of active electrons.
func (e *Engine) ElectronCount() int { return len(e.electrons) }

// PinnedCount returns the number of pinned cells.
func (e *Engine) PinnedCount() int { return len(e.pinned) }

// SpawnCell creates a transient cell at origin and paints it once. The cell
// is not retained; it persists on screen only through the trail blend.
func (e *Engine) SpawnCell(origin GridPoint, opts CellOptions, now time.Time) *Cell {
	c := NewCell(origin, opts)
	c.Paint(e, now)
	return c
}

// Step runs one animation frame at now: blends the background grid onto the
// main surface for the afterglow trail, prunes and paints pinned cells then
// active electrons, runs the ambient spawner, and pumps the presenter and
// any pending debounced resizes.
func (e *Engine) Step(now time.Time) {
	e.bg.Pump(now)
	e.main.Pump(now)

	e.main.ComposeBackground(e.bg, e.cfg.TrailOpacity)

	// Pinned cells before electrons: cells fill below the particle glows.
	// Removal splices and steps the index back so no entry is skipped.
	for i := 0; i < len(e.pinned); i++ {
		c := e.pinned[i]
		if c.Expired(now) {
			e.pinned = append(e.pinned[:i], e.pinned[i+1:]...)
			i--
			continue
		}
		c.Paint(e, now)
	}
	for i := 0; i < len(e.electrons); i++ {
		el := e.electrons[i]
		if el.Expired(now) {
			e.electrons = append(e.electrons[:i], e.electrons[i+1:]...)
			i--
			continue
		}
		el.Paint(e.main, now, e.rng)
	}

	if now.After(e.ambientDeadline) {
		e.spawnAmbient(now)
		e.ambientDeadline = now.Add(e.ambientInterval())
	}

	if e.presenter != nil {
		e.presenter.step(now)
	}
}

// ambientInterval derives the ambient cell spawn interval from the viewport
// area, clamped to sane bounds.
func (e *Engine) ambientInterval() time.Duration {
	d := time.Duration(math.Sqrt(float64(e.w*e.h))) * time.Millisecond
	if d < ambientMinInterval {
		return ambientMinInterval
	}
	if d > ambientMaxInterval {
		return ambientMaxInterval
	}
	return d
}

// spawnAmbient lights a random grid cell with default transient styling.
func (e *Engine) spawnAmbient(now time.Time) {
	e.SpawnCell(randomCell(e.w, e.h, e.rng), CellOptions{
		ElectronCount: 1,
		Electron: ElectronOptions{
			Speed:    1,
			Lifetime: 500 * time.Millisecond,
		},
	}, now)
}

// Click lights the grid cell under the pointer with the accent style. When
// ClickClearCount rapid clicks land inside the rolling window, the main
// surface's drawn residue is cleared once; pinned cells are unaffected and
// reappear as they repaint on later frames.
func (e *Engine) Click(x, y int, now time.Time) {
	e.SpawnCell(SnapPoint(x, y), CellOptions{
		Color:         ColorAccent,
		ElectronCount: 4,
		Electron: ElectronOptions{
			Speed:    2,
			Lifetime: 300 * time.Millisecond,
			Color:    ColorAccent,
		},
	}, now)

	if e.clicks.Click(now) {
		e.main.Clear()
	}
}

// RequestResize schedules a debounced resize of both surfaces to the given
// logical size. The rebuild and follow-up redraws happen on a later Step
// once the debounce window has passed.
func (e *Engine) RequestResize(w, h int) {
	now := e.now()
	e.bg.RequestResize(w, h, now)
	e.main.RequestResize(w, h, now)
	if e.bg == nil && e.main == nil {
		// Headless: apply immediately, there is no buffer to rebuild.
		e.w, e.h = w, h
	}
}

// drawGrid repaints the static grid line pattern onto the background
// surface: BorderWidth-thick lines every Pitch, offset by CellSize.
func (e *Engine) drawGrid() {
	if e.bg == nil {
		return
	}
	w, h := float64(e.w), float64(e.h)
	e.bg.Clear()
	for x := CellSize; x < e.w; x += Pitch {
		e.bg.FillRect(float64(x), 0, BorderWidth, h, ColorGridLine, BlendNormal)
	}
	for y := CellSize; y < e.h; y += Pitch {
		e.bg.FillRect(0, float64(y), w, BorderWidth, ColorGridLine, BlendNormal)
	}
}

// GridLineStops returns the x and y coordinates of the grid lines for a
// viewport of the given size. Exposed for verification and for callers that
// draw their own grid.
func GridLineStops(width, height int) (xs, ys []int) {
	for x := CellSize; x < width; x += Pitch {
		xs = append(xs, x)
	}
	for y := CellSize; y < height; y += Pitch {
		ys = append(ys, y)
	}
	return xs, ys
}
