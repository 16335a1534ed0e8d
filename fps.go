package glowgrid

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay renders the current FPS and TPS in the top-left corner.
// The readout is refreshed every ~0.5 seconds to stay readable.
type fpsOverlay struct {
	last time.Time
	text string
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	now := time.Now()
	if now.Sub(f.last) >= 500*time.Millisecond {
		f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
		f.last = now
	}
	ebitenutil.DebugPrint(screen, f.text)
}
