package glowgrid

import (
	"time"
)

// cellUpdateInterval is the randomized delay between a cell's scheduled
// repaints, in seconds. Decoupling repaint cadence from the frame rate
// produces non-synchronized flicker across many cells.
var cellUpdateInterval = Range{Min: 0.3, Max: 0.5}

// pinnedForever is the default lifetime of a pinned cell: effectively
// unbounded, removed only by an explicit clear.
const pinnedForever = 100 * 365 * 24 * time.Hour

// CellOptions controls a cell's fill and the electrons it emits.
type CellOptions struct {
	// Color is the cell's fill color. Zero value defaults to ColorCell.
	Color Color
	// ElectronCount is how many corner electrons each scheduled repaint
	// spawns. Clamped to the number of cell corners.
	ElectronCount int
	// Electron is the option template for spawned electrons.
	Electron ElectronOptions
}

// Cell is a grid-aligned lit square. It repaints and respawns its electrons
// only once per scheduled interval, not every frame. Transient cells are
// painted and forgotten; pinned cells are retained by the engine and
// repainted every frame until expiry or an explicit clear.
type Cell struct {
	origin        GridPoint
	color         Color
	electronCount int
	electronOpts  ElectronOptions

	nextUpdate time.Time
	expiry     time.Time
}

// NewCell creates a cell at the given grid-snapped pixel origin.
func NewCell(origin GridPoint, opts CellOptions) *Cell {
	if opts.Color == (Color{}) {
		opts.Color = ColorCell
	}
	if opts.ElectronCount > len(cornerOffsets) {
		opts.ElectronCount = len(cornerOffsets)
	}
	if opts.ElectronCount < 0 {
		opts.ElectronCount = 0
	}
	return &Cell{
		origin:        origin,
		color:         opts.Color,
		electronCount: opts.ElectronCount,
		electronOpts:  opts.Electron,
	}
}

// Origin returns the cell's pixel origin.
func (c *Cell) Origin() GridPoint {
	return c.origin
}

// Expired reports whether the cell's pinned lifetime has passed at now.
func (c *Cell) Expired(now time.Time) bool {
	return !c.expiry.IsZero() && now.After(c.expiry)
}

// Pin registers the cell in the engine's pinned collection so it is
// repainted every frame. A lifetime of zero or less pins effectively
// forever; the cell then outlives only an explicit clear.
func (c *Cell) Pin(e *Engine, lifetime time.Duration) {
	if lifetime <= 0 {
		lifetime = pinnedForever
	}
	c.expiry = e.now().Add(lifetime)
	e.addPinned(c)
}

// Paint fills the cell's rectangle and spawns its corner electrons, at most
// once per scheduled interval. Calls before the next scheduled update are
// no-ops, so invoking Paint every frame is safe.
func (c *Cell) Paint(e *Engine, now time.Time) {
	if now.Before(c.nextUpdate) {
		return
	}
	c.nextUpdate = now.Add(time.Duration(cellUpdateInterval.Random(e.rng) * float64(time.Second)))

	if c.electronCount > 0 {
		// Distinct random corners, one electron each.
		for _, idx := range e.rng.Perm(len(cornerOffsets))[:c.electronCount] {
			e.AddElectron(NewElectron(c.origin.Add(cornerOffsets[idx]), c.electronOpts, now, e.rng))
		}
	}

	e.Main().FillRect(
		float64(c.origin.X), float64(c.origin.Y),
		CellSize, CellSize,
		c.color, BlendAdd,
	)
}
