package glowgrid

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the turnkey Run loop.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the initial window size. Zero uses 800x600.
	Width, Height int
	// ShowFPS enables the FPS/TPS overlay.
	ShowFPS bool
	// Seed seeds the engine's random source. Zero seeds from the clock.
	Seed uint64
	// DeviceScaled allocates the render surfaces at the monitor's device
	// scale factor for crisper output on high-DPI displays.
	DeviceScaled bool
}

// Run opens a resizable window and drives a full engine: background grid,
// ambient cells, pointer clicks, and a single-line text input. Typing
// appends to the input line; Enter submits it. An empty submission clears
// the display, the special value "#clear" wipes only the visible buffer,
// and anything else is typed onto the grid.
func Run(cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 800, 600
	}

	ecfg := DefaultConfig()
	ecfg.Width = cfg.Width
	ecfg.Height = cfg.Height
	ecfg.Seed = cfg.Seed
	eng := NewEngine(ecfg)

	bg := NewSurface(cfg.Width, cfg.Height, cfg.DeviceScaled)
	main := NewSurface(cfg.Width, cfg.Height, cfg.DeviceScaled)
	eng.AttachSurfaces(bg, main)

	g := &game{
		eng:       eng,
		presenter: NewPresenter(eng),
		showFPS:   cfg.ShowFPS,
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

// game adapts the engine to the ebiten.Game interface.
type game struct {
	eng       *Engine
	presenter *Presenter
	input     []rune
	showFPS   bool
	fps       fpsOverlay
}

// Update polls input and runs one engine frame.
func (g *game) Update() error {
	now := g.eng.now()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.eng.Click(x, y, now)
	}
	// Each touch point is an independent pointer.
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		g.eng.Click(x, y, now)
	}

	g.input = ebiten.AppendInputChars(g.input)
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(g.input) > 0 {
		g.input = g.input[:len(g.input)-1]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		g.submit()
	}

	g.eng.Step(now)
	return nil
}

// submit consumes the input line and dispatches it.
func (g *game) submit() {
	now := g.eng.now()
	text := strings.TrimSpace(string(g.input))
	g.input = g.input[:0]

	switch text {
	case "":
		g.presenter.Clear(now)
	case "#clear":
		g.eng.Main().Clear()
	default:
		g.presenter.Print(text, now)
	}
}

// Draw composites the background grid below the main animation surface,
// then overlays the input line and the optional FPS readout.
func (g *game) Draw(screen *ebiten.Image) {
	drawSurface(screen, g.eng.Background())
	drawSurface(screen, g.eng.Main())

	_, h := g.eng.Size()
	ebitenutil.DebugPrintAt(screen, "> "+string(g.input), 8, h-20)

	if g.showFPS {
		g.fps.draw(screen)
	}
}

// drawSurface draws a surface onto the screen, undoing device scaling so
// logical coordinates line up.
func drawSurface(screen *ebiten.Image, s *Surface) {
	img := s.Image()
	if img == nil {
		return
	}
	var op ebiten.DrawImageOptions
	if f := s.Scale(); f != 1 {
		op.GeoM.Scale(1/f, 1/f)
	}
	screen.DrawImage(img, &op)
}

// Layout reports the logical viewport size and schedules an engine resize
// when the window size changes.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.eng.Size()
	if outsideWidth != w || outsideHeight != h {
		g.eng.RequestResize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
