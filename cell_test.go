package glowgrid

import (
	"testing"
	"time"
)

// clock is a manually advanced time source for tests.
type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

// newTestEngine creates a headless engine with a fixed seed, a manual clock,
// and the ambient spawner pushed out of the way.
func newTestEngine(seed uint64) (*Engine, *clock) {
	ck := &clock{t: time.Unix(0, 0)}
	cfg := DefaultConfig()
	cfg.Seed = seed
	cfg.Now = ck.now
	e := NewEngine(cfg)
	e.ambientDeadline = ck.t.Add(time.Hour)
	return e, ck
}

func TestCellPaintOncePerWindow(t *testing.T) {
	e, ck := newTestEngine(1)
	c := NewCell(GridPoint{X: 2 * Pitch, Y: 2 * Pitch}, CellOptions{ElectronCount: 2})

	c.Paint(e, ck.t)
	if got := e.ElectronCount(); got != 2 {
		t.Fatalf("electrons after first paint = %d, want 2", got)
	}

	// Repainting inside the scheduled window is a no-op.
	c.Paint(e, ck.t)
	c.Paint(e, ck.t.Add(100*time.Millisecond))
	if got := e.ElectronCount(); got != 2 {
		t.Errorf("electrons after repaint in window = %d, want 2", got)
	}

	// After the window (at most 500ms) the cell spawns again.
	c.Paint(e, ck.t.Add(600*time.Millisecond))
	if got := e.ElectronCount(); got != 4 {
		t.Errorf("electrons after window elapsed = %d, want 4", got)
	}
}

func TestCellElectronCountClamped(t *testing.T) {
	c := NewCell(GridPoint{}, CellOptions{ElectronCount: 9})
	if c.electronCount != len(cornerOffsets) {
		t.Errorf("electronCount = %d, want %d", c.electronCount, len(cornerOffsets))
	}
	c = NewCell(GridPoint{}, CellOptions{ElectronCount: -1})
	if c.electronCount != 0 {
		t.Errorf("negative electronCount = %d, want 0", c.electronCount)
	}
}

func TestCellSpawnsAtDistinctCorners(t *testing.T) {
	e, ck := newTestEngine(3)
	origin := GridPoint{X: 5 * Pitch, Y: 5 * Pitch}
	c := NewCell(origin, CellOptions{ElectronCount: 4})
	c.Paint(e, ck.t)

	seen := map[GridPoint]bool{}
	for _, el := range e.electrons {
		x, y := el.Position()
		seen[GridPoint{X: int(x), Y: int(y)}] = true
	}
	if len(seen) != 4 {
		t.Errorf("distinct spawn corners = %d, want 4", len(seen))
	}
	for _, off := range cornerOffsets {
		if !seen[origin.Add(off)] {
			t.Errorf("corner %v got no electron", origin.Add(off))
		}
	}
}

func TestCellPinDefaultsToForever(t *testing.T) {
	e, ck := newTestEngine(1)
	c := NewCell(GridPoint{}, CellOptions{})
	c.Pin(e, 0)

	if got := e.PinnedCount(); got != 1 {
		t.Fatalf("pinned count = %d, want 1", got)
	}
	if c.Expired(ck.t.Add(24 * 365 * time.Hour)) {
		t.Error("default-pinned cell expired within a year")
	}
}

func TestCellPinWithLifetime(t *testing.T) {
	e, ck := newTestEngine(1)
	c := NewCell(GridPoint{}, CellOptions{})
	c.Pin(e, time.Second)

	if c.Expired(ck.t.Add(500 * time.Millisecond)) {
		t.Error("expired before lifetime elapsed")
	}
	if !c.Expired(ck.t.Add(2 * time.Second)) {
		t.Error("not expired after lifetime elapsed")
	}
}

func TestCellDefaultColor(t *testing.T) {
	c := NewCell(GridPoint{}, CellOptions{})
	if c.color != ColorCell {
		t.Errorf("default color = %v, want ColorCell", c.color)
	}
}
