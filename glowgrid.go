package glowgrid

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// Default palette. Cells and electrons accept any Color; these are the values
// the engine and the example program use out of the box.
var (
	// ColorGridLine is the dim teal used for the static background grid.
	ColorGridLine = Color{R: 0.06, G: 0.24, B: 0.24, A: 1}
	// ColorCell is the fill for ambient and text cells.
	ColorCell = Color{R: 0.0, G: 0.55, B: 0.47, A: 1}
	// ColorElectron is the default particle glow color.
	ColorElectron = Color{R: 0.3, G: 0.95, B: 0.85, A: 1}
	// ColorAccent is the fill and glow for pointer-click cells.
	ColorAccent = Color{R: 1.0, G: 0.45, B: 0.25, A: 1}
)

// Range is a general-purpose min/max interval.
// Used for cell repaint scheduling and print-batch cadence.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// BlendMode selects a compositing operation. Each maps to a specific ebiten.Blend value.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                     // additive / lighter
	BlendNone                    // opaque copy (skip blending)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// WithAlpha returns the color with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// toRGBA converts a Color to a premultiplied color value usable by image.Fill.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
