package glowgrid

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// maxDestinationRetries bounds how many random neighbors an electron tries
// before accepting an already-visited destination.
const maxDestinationRetries = 10

// maxVisited is the size of the recently-visited destination ring.
const maxVisited = 10

// ElectronOptions controls a spawned electron's motion and appearance.
// Zero fields fall back to sensible defaults.
type ElectronOptions struct {
	// Speed is the per-axis step size in pixels per advance.
	Speed float64
	// Lifetime is how long the electron lives after spawning.
	Lifetime time.Duration
	// Color is the glow tint.
	Color Color
	// Radius is the glow disc radius in pixels.
	Radius float64
}

// Electron is a glowing particle that random-walks between grid vertices.
// It steps toward a grid-aligned destination and, on arrival, picks a random
// adjacent vertex it has not recently visited.
type Electron struct {
	x, y   float64
	dest   GridPoint
	speed  float64
	color  Color
	radius float64
	expiry time.Time

	visited  [maxVisited]GridPoint
	visitedN int // number of used ring slots
	ringNext int // next ring slot to overwrite

	fade      *gween.Tween
	lastPaint time.Time
}

// NewElectron creates an electron at the given grid vertex. The first
// advance immediately picks a neighboring destination.
func NewElectron(origin GridPoint, opts ElectronOptions, now time.Time, rng *rand.Rand) *Electron {
	if opts.Speed <= 0 {
		opts.Speed = 1
	}
	if opts.Lifetime <= 0 {
		opts.Lifetime = time.Second
	}
	if opts.Radius <= 0 {
		opts.Radius = 4
	}
	if opts.Color == (Color{}) {
		opts.Color = ColorElectron
	}
	e := &Electron{
		x:         float64(origin.X),
		y:         float64(origin.Y),
		dest:      origin,
		speed:     opts.Speed,
		color:     opts.Color,
		radius:    opts.Radius,
		expiry:    now.Add(opts.Lifetime),
		fade:      gween.New(1, 0, float32(opts.Lifetime.Seconds()), ease.InQuad),
		lastPaint: now,
	}
	e.recordVisited(origin)
	return e
}

// Position returns the electron's current pixel position.
func (e *Electron) Position() (x, y float64) {
	return e.x, e.y
}

// Destination returns the electron's current grid-aligned destination.
func (e *Electron) Destination() GridPoint {
	return e.dest
}

// Expired reports whether the electron's lifetime has passed at now.
func (e *Electron) Expired(now time.Time) bool {
	return now.After(e.expiry)
}

// Advance moves the electron one step toward its destination, each axis
// independently by exactly speed pixels (or zero, when within half a step).
// On arrival at the destination on both axes the position snaps to the
// vertex and a new destination is chosen. Returns the updated position.
func (e *Electron) Advance(rng *rand.Rand) (x, y float64) {
	dx := float64(e.dest.X) - e.x
	dy := float64(e.dest.Y) - e.y
	half := e.speed / 2

	if math.Abs(dx) < half && math.Abs(dy) < half {
		e.x = float64(e.dest.X)
		e.y = float64(e.dest.Y)
		e.pickDestination(rng)
		return e.x, e.y
	}

	if dx >= half {
		e.x += e.speed
	} else if dx <= -half {
		e.x -= e.speed
	}
	if dy >= half {
		e.y += e.speed
	} else if dy <= -half {
		e.y -= e.speed
	}
	return e.x, e.y
}

// pickDestination chooses a random adjacent grid vertex, rejecting recently
// visited ones up to maxDestinationRetries attempts, after which the last
// candidate is accepted regardless.
func (e *Electron) pickDestination(rng *rand.Rand) {
	var cand GridPoint
	for i := 0; i < maxDestinationRetries; i++ {
		cand = e.dest.Add(directionOffsets[rng.IntN(len(directionOffsets))])
		if !e.visitedRecently(cand) {
			break
		}
	}
	e.dest = cand
	e.recordVisited(cand)
}

// visitedRecently reports whether p is in the visited ring.
func (e *Electron) visitedRecently(p GridPoint) bool {
	for i := 0; i < e.visitedN; i++ {
		if e.visited[i] == p {
			return true
		}
	}
	return false
}

// recordVisited appends p to the visited ring, overwriting the oldest entry
// once the ring is full.
func (e *Electron) recordVisited(p GridPoint) {
	e.visited[e.ringNext] = p
	e.ringNext = (e.ringNext + 1) % maxVisited
	if e.visitedN < maxVisited {
		e.visitedN++
	}
}

// Paint advances the electron and draws its glow disc onto dst with additive
// blending, faded by the lifetime tween.
func (e *Electron) Paint(dst *Surface, now time.Time, rng *rand.Rand) {
	x, y := e.Advance(rng)

	dt := now.Sub(e.lastPaint).Seconds()
	if dt < 0 {
		dt = 0
	}
	e.lastPaint = now
	alpha, _ := e.fade.Update(float32(dt))

	dst.DrawGlow(x, y, e.radius, e.color, float64(alpha))
}
