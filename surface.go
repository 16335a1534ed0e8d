package glowgrid

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image used for solid color fills.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(Color{1, 1, 1, 1}.toRGBA())
}

// resizeDebounceWindow coalesces bursts of viewport resizes into one
// backing-buffer rebuild.
const resizeDebounceWindow = 100 * time.Millisecond

// Surface is a resizable offscreen canvas with optional device-pixel-ratio
// scaling. Draw methods take logical (CSS-pixel-like) coordinates; the
// backing image is allocated at device resolution and all draws are scaled.
//
// All methods are nil-receiver safe: a nil Surface silently skips drawing,
// so simulation code can run headless.
type Surface struct {
	image *ebiten.Image
	w, h  int     // logical size
	scale float64 // device scale factor applied to the backing image

	resizeFns          []func(*Surface)
	resizeDeb          *Debouncer
	pendingW, pendingH int
}

// NewSurface creates a surface with the given logical size. When deviceScaled
// is true the backing image is allocated at the monitor's device scale factor.
func NewSurface(w, h int, deviceScaled bool) *Surface {
	scale := 1.0
	if deviceScaled {
		if f := ebiten.Monitor().DeviceScaleFactor(); f > 0 {
			scale = f
		}
	}
	s := &Surface{
		scale:     scale,
		resizeDeb: NewDebouncer(resizeDebounceWindow),
	}
	s.allocate(w, h)
	return s
}

// allocate replaces the backing image with one sized w x h logical pixels.
func (s *Surface) allocate(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if s.image != nil {
		s.image.Deallocate()
	}
	s.image = ebiten.NewImage(int(float64(w)*s.scale), int(float64(h)*s.scale))
	s.w = w
	s.h = h
}

// Image returns the backing *ebiten.Image, or nil for a nil surface.
func (s *Surface) Image() *ebiten.Image {
	if s == nil {
		return nil
	}
	return s.image
}

// Width returns the logical width in pixels.
func (s *Surface) Width() int {
	if s == nil {
		return 0
	}
	return s.w
}

// Height returns the logical height in pixels.
func (s *Surface) Height() int {
	if s == nil {
		return 0
	}
	return s.h
}

// Scale returns the device scale factor of the backing image.
func (s *Surface) Scale() float64 {
	if s == nil {
		return 1
	}
	return s.scale
}

// Paint invokes fn once against the backing image without clearing first.
// No-op if fn is nil.
func (s *Surface) Paint(fn func(*ebiten.Image)) {
	if s == nil || s.image == nil || fn == nil {
		return
	}
	fn(s.image)
}

// Repaint clears the surface, then paints.
func (s *Surface) Repaint(fn func(*ebiten.Image)) {
	if s == nil {
		return
	}
	s.Clear()
	s.Paint(fn)
}

// Clear fills the surface with transparent black.
func (s *Surface) Clear() {
	if s == nil || s.image == nil {
		return
	}
	s.image.Clear()
}

// Fill fills the entire surface with the given color.
func (s *Surface) Fill(c Color) {
	if s == nil || s.image == nil {
		return
	}
	s.image.Fill(c.toRGBA())
}

// ComposeBackground blends a full copy of src onto this surface at the given
// opacity using normal source-over compositing. Opacity values outside (0, 1]
// fall back to 0.1. Repeated per-frame composition of a static background at
// low opacity is what produces the afterglow trail.
func (s *Surface) ComposeBackground(src *Surface, opacity float64) {
	if s == nil || s.image == nil || src == nil || src.image == nil {
		return
	}
	if opacity <= 0 || opacity > 1 {
		opacity = 0.1
	}
	var op ebiten.DrawImageOptions
	a := float32(opacity)
	op.ColorScale.Scale(a, a, a, a)
	s.image.DrawImage(src.image, &op)
}

// FillRect fills a rectangle given in logical coordinates.
func (s *Surface) FillRect(x, y, w, h float64, c Color, blend BlendMode) {
	if s == nil || s.image == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w*s.scale, h*s.scale)
	op.GeoM.Translate(x*s.scale, y*s.scale)
	op.ColorScale.Scale(
		float32(c.R*c.A),
		float32(c.G*c.A),
		float32(c.B*c.A),
		float32(c.A),
	)
	op.Blend = blend.EbitenBlend()
	s.image.DrawImage(whitePixel, &op)
}

// DrawGlow draws a feathered glow disc centered at (x, y) in logical
// coordinates, tinted with c and faded by alpha, using additive blending.
func (s *Surface) DrawGlow(x, y, radius float64, c Color, alpha float64) {
	if s == nil || s.image == nil || radius <= 0 {
		return
	}
	img := glowImage(radius * s.scale)
	b := img.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(x*s.scale-float64(b.Dx())/2, y*s.scale-float64(b.Dy())/2)
	a := c.A * clamp01(alpha)
	op.ColorScale.Scale(
		float32(c.R*a),
		float32(c.G*a),
		float32(c.B*a),
		float32(a),
	)
	op.Blend = BlendAdd.EbitenBlend()
	s.image.DrawImage(img, &op)
}

// OnResize registers fn to be invoked with the surface after every applied
// resize. Nil callbacks are ignored.
func (s *Surface) OnResize(fn func(*Surface)) {
	if s == nil || fn == nil {
		return
	}
	s.resizeFns = append(s.resizeFns, fn)
}

// RequestResize schedules a resize to the given logical size. Bursts within
// the debounce window coalesce into one trailing rebuild, applied by Pump.
// Re-requesting the already-pending size does not push the trailing
// deadline out, so a caller polling every frame cannot starve the rebuild.
func (s *Surface) RequestResize(w, h int, now time.Time) {
	if s == nil {
		return
	}
	if w == s.pendingW && h == s.pendingH {
		return
	}
	s.pendingW, s.pendingH = w, h
	s.resizeDeb.Call(now)
}

// Pump applies a pending debounced resize if its trailing deadline has
// passed. Called by the engine once per frame.
func (s *Surface) Pump(now time.Time) {
	if s == nil {
		return
	}
	if s.resizeDeb.Fire(now) {
		s.Resize(s.pendingW, s.pendingH)
	}
}

// Resize immediately rebuilds the backing image at the given logical size
// and fires all registered resize callbacks.
func (s *Surface) Resize(w, h int) {
	if s == nil {
		return
	}
	if w == s.w && h == s.h {
		return
	}
	s.allocate(w, h)
	for _, fn := range s.resizeFns {
		fn(s)
	}
}
