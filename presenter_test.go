package glowgrid

import (
	"testing"
	"time"
)

// runPrint steps the engine until the presenter finishes typing, advancing
// the clock past every batch deadline.
func runPrint(t *testing.T, e *Engine, p *Presenter, ck *clock) {
	t.Helper()
	for i := 0; i < 10000 && p.Printing(); i++ {
		e.Step(ck.t)
		ck.t = ck.t.Add(150 * time.Millisecond)
	}
	if p.Printing() {
		t.Fatal("print did not finish")
	}
}

func TestPrintPinsFullMatrix(t *testing.T) {
	e, ck := newTestEngine(1)
	p := NewPresenter(e)

	p.Print("OK", ck.t)
	m := p.MatrixSize()
	if m == 0 {
		t.Fatal("matrix for \"OK\" is empty")
	}
	if !p.Printing() {
		t.Fatal("presenter not printing after Print")
	}

	runPrint(t, e, p, ck)

	if got := e.PinnedCount(); got != m {
		t.Errorf("pinned cells = %d, want matrix size %d", got, m)
	}
}

func TestPrintMarksBoundedPrefix(t *testing.T) {
	e, ck := newTestEngine(2)
	p := NewPresenter(e)

	p.Print("OK", ck.t)
	runPrint(t, e, p, ck)

	marked := 0
	for _, c := range e.pinned {
		if c.electronCount == 4 {
			marked++
		}
	}
	want := e.cfg.MaxMarked
	if p.MatrixSize() < want {
		want = p.MatrixSize()
	}
	if marked != want {
		t.Errorf("marked cells = %d, want %d", marked, want)
	}
}

func TestClearCancelsPendingBatch(t *testing.T) {
	e, ck := newTestEngine(3)
	p := NewPresenter(e)

	p.Print("HELLO", ck.t)
	e.Step(ck.t) // emit the first batch only
	if e.PinnedCount() == 0 {
		t.Fatal("first batch emitted nothing")
	}

	p.Clear(ck.t)
	if p.Printing() {
		t.Error("still printing after Clear")
	}
	if got := e.PinnedCount(); got != 0 {
		t.Errorf("pinned after Clear = %d, want 0", got)
	}

	// The cancelled batch must not resume on later frames.
	for i := 0; i < 20; i++ {
		ck.t = ck.t.Add(150 * time.Millisecond)
		e.Step(ck.t)
	}
	if got := e.PinnedCount(); got != 0 {
		t.Errorf("pinned after stepping past cancel = %d, want 0", got)
	}
}

func TestPrintReplacesInProgressPrint(t *testing.T) {
	e, ck := newTestEngine(4)
	p := NewPresenter(e)

	p.Print("FIRST", ck.t)
	e.Step(ck.t)

	p.Print("OK", ck.t)
	m := p.MatrixSize()
	runPrint(t, e, p, ck)

	if got := e.PinnedCount(); got != m {
		t.Errorf("pinned after replacement = %d, want %d", got, m)
	}
	if p.Text() != "OK" {
		t.Errorf("text = %q, want %q", p.Text(), "OK")
	}
}

func TestBlankPrintClears(t *testing.T) {
	e, ck := newTestEngine(5)
	p := NewPresenter(e)

	p.Print("OK", ck.t)
	runPrint(t, e, p, ck)

	p.Print("   ", ck.t)
	if got := e.PinnedCount(); got != 0 {
		t.Errorf("pinned after blank print = %d, want 0", got)
	}
	if p.Text() != "" || p.MatrixSize() != 0 {
		t.Errorf("presenter not idle after blank print: text %q, matrix %d", p.Text(), p.MatrixSize())
	}
}

func TestExplosionWithoutMatrix(t *testing.T) {
	e, ck := newTestEngine(6)
	p := NewPresenter(e)

	p.Explosion(ck.t)
	// 10-20 burst cells, 4 electrons each.
	if got := e.ElectronCount(); got < 40 || got > 80 {
		t.Errorf("electrons after blind explosion = %d, want 40..80", got)
	}
	if got := e.PinnedCount(); got != 0 {
		t.Errorf("explosion pinned %d cells, want 0", got)
	}
}

func TestExplosionUsesMatrixCoordinates(t *testing.T) {
	e, ck := newTestEngine(7)
	p := NewPresenter(e)

	p.Print("OK", ck.t)
	runPrint(t, e, p, ck)
	before := e.ElectronCount()

	p.Explosion(ck.t)
	added := e.ElectronCount() - before
	// Burst size is clamped to [BurstMin, BurstMax], 4 electrons per cell.
	if added < e.cfg.BurstMin*4 || added > e.cfg.BurstMax*4 {
		t.Errorf("explosion electrons = %d, want %d..%d", added, e.cfg.BurstMin*4, e.cfg.BurstMax*4)
	}
}

func TestResizeReprintsDisplayedText(t *testing.T) {
	e, ck := newTestEngine(8)
	p := NewPresenter(e)

	p.Print("OK", ck.t)
	runPrint(t, e, p, ck)

	e.w, e.h = 400, 300
	p.handleResize(ck.t)
	if !p.Printing() {
		t.Fatal("resize did not restart printing")
	}

	m := p.MatrixSize()
	runPrint(t, e, p, ck)
	if got := e.PinnedCount(); got != m {
		t.Errorf("pinned after reprint = %d, want %d", got, m)
	}
	for _, c := range e.pinned {
		o := c.Origin()
		if o.X >= 400 || o.Y >= 300 {
			t.Errorf("reprinted cell %v outside 400x300 viewport", o)
		}
	}
}
