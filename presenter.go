package glowgrid

import (
	"log"
	"time"
)

// Print pacing: each batch reveals a random 5-10% of the matrix, on a
// randomized 50-100ms cadence.
var (
	batchFraction = Range{Min: 0.05, Max: 0.10}
	batchCadence  = Range{Min: 0.05, Max: 0.10} // seconds
)

// Electron styling for printed cells. Marked cells burst; the rest stay inert.
var (
	markedElectron = ElectronOptions{Speed: 1, Lifetime: time.Second}
	inertElectron  = ElectronOptions{Speed: 1, Lifetime: 100 * time.Millisecond}
	burstElectron  = ElectronOptions{Speed: 2, Lifetime: time.Second}
)

// Presenter types text onto the grid as pinned lit cells. It converts a
// string to a lit-cell matrix, reveals the shuffled matrix in randomly sized
// batches, and clears the display with an explosion burst.
//
// The presenter has no timers of its own: pending batches are wall-clock
// deadlines checked from the engine's frame step, and replacing or clearing
// the text simply drops the pending deadline, so a stale batch can never
// resume after a new print starts.
type Presenter struct {
	eng *Engine

	text    string      // last printed text
	matrix  []GridPoint // full matrix of the last conversion
	queue   []GridPoint // shuffled coordinates not yet emitted
	emitted int         // cells emitted so far for the current text

	printing      bool
	batchDeadline time.Time
}

// NewPresenter creates a presenter and wires it into the engine's frame step.
func NewPresenter(e *Engine) *Presenter {
	p := &Presenter{eng: e}
	e.SetPresenter(p)
	return p
}

// Text returns the last printed text, or "" when idle.
func (p *Presenter) Text() string { return p.text }

// Printing reports whether a print is still revealing cells.
func (p *Presenter) Printing() bool { return p.printing }

// MatrixSize returns the size of the current text's lit-cell matrix.
func (p *Presenter) MatrixSize() int { return len(p.matrix) }

// Print converts text to a lit-cell matrix and starts typing it in. Any
// print already in progress is cancelled first. A blank string is treated
// as a full clear.
func (p *Presenter) Print(text string, now time.Time) {
	p.cancelBatch()

	w, h := p.eng.Size()
	matrix, err := TextToGrid(text, w, h)
	if err != nil {
		log.Printf("glowgrid: text conversion failed: %v", err)
		return
	}
	if len(matrix) == 0 {
		p.Clear(now)
		return
	}

	p.eng.ClearPinned()
	p.text = text
	p.matrix = matrix
	p.emitted = 0

	p.queue = make([]GridPoint, len(matrix))
	copy(p.queue, matrix)
	p.eng.rng.Shuffle(len(p.queue), func(i, j int) {
		p.queue[i], p.queue[j] = p.queue[j], p.queue[i]
	})

	p.printing = true
	p.batchDeadline = now
}

// step emits the next print batch when its deadline has passed. Called from
// Engine.Step every frame.
func (p *Presenter) step(now time.Time) {
	if !p.printing || now.Before(p.batchDeadline) {
		return
	}

	n := int(float64(len(p.matrix)) * batchFraction.Random(p.eng.rng))
	if n < 1 {
		n = 1
	}
	if n > len(p.queue) {
		n = len(p.queue)
	}

	for _, pt := range p.queue[:n] {
		opts := CellOptions{Electron: inertElectron}
		if p.emitted < p.eng.cfg.MaxMarked {
			opts.ElectronCount = 4
			opts.Electron = markedElectron
		}
		c := NewCell(pt, opts)
		c.Pin(p.eng, 0)
		p.emitted++
	}
	p.queue = p.queue[n:]

	if len(p.queue) == 0 {
		p.printing = false
		return
	}
	p.batchDeadline = now.Add(time.Duration(batchCadence.Random(p.eng.rng) * float64(time.Second)))
}

// cancelBatch drops any pending print batch.
func (p *Presenter) cancelBatch() {
	p.printing = false
	p.queue = nil
}

// Explosion spawns a one-shot burst of transient, highly animated cells. If
// a matrix exists, burst cells land on a bounded random subset of its
// coordinates; otherwise they land on random grid cells.
func (p *Presenter) Explosion(now time.Time) {
	e := p.eng
	if len(p.matrix) > 0 {
		n := int(float64(len(p.matrix)) * batchFraction.Random(e.rng))
		if n < e.cfg.BurstMin {
			n = e.cfg.BurstMin
		}
		if n > e.cfg.BurstMax {
			n = e.cfg.BurstMax
		}
		for i := 0; i < n; i++ {
			pt := p.matrix[e.rng.IntN(len(p.matrix))]
			e.SpawnCell(pt, CellOptions{ElectronCount: 4, Electron: burstElectron}, now)
		}
		return
	}

	w, h := e.Size()
	n := 10 + e.rng.IntN(11)
	for i := 0; i < n; i++ {
		e.SpawnCell(randomCell(w, h, e.rng), CellOptions{ElectronCount: 4, Electron: burstElectron}, now)
	}
}

// Clear explodes the current display for feedback, cancels any pending
// batch, resets to idle, and empties the engine's pinned collection.
func (p *Presenter) Clear(now time.Time) {
	p.Explosion(now)
	p.cancelBatch()
	p.text = ""
	p.matrix = nil
	p.emitted = 0
	p.eng.ClearPinned()
}

// handleResize re-runs the full print pipeline for the last text so the
// matrix is recomputed against the new viewport dimensions.
func (p *Presenter) handleResize(now time.Time) {
	if p.text == "" {
		return
	}
	p.Print(p.text, now)
}
