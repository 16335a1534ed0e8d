package glowgrid

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// glowCache holds feathered disc textures keyed by quantized radius. All
// access happens on the frame thread, so no locking is needed.
var glowCache = map[int]*ebiten.Image{}

// glowImage returns a cached feathered disc texture for the given radius,
// generating one if it doesn't exist. Radius is quantized to the nearest
// integer to avoid generating separate textures for tiny differences.
func glowImage(radius float64) *ebiten.Image {
	key := int(math.Ceil(radius))
	if key < 1 {
		key = 1
	}
	if img, ok := glowCache[key]; ok {
		return img
	}
	img := generateGlow(float64(key))
	glowCache[key] = img
	return img
}

// generateGlow creates a feathered white disc image with the given radius.
// Uses smoothstep falloff and premultiplied alpha, so additive draws of the
// disc read as a soft particle glow without any per-frame blur pass.
func generateGlow(radius float64) *ebiten.Image {
	size := int(math.Ceil(radius * 2))
	if size < 1 {
		size = 1
	}
	img := ebiten.NewImage(size, size)
	pix := make([]byte, size*size*4)

	cx, cy := radius, radius
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			dist := math.Sqrt(dx*dx+dy*dy) / radius

			var alpha float64
			if dist < 1 {
				// smoothstep: 1 at center, 0 at edge
				t := 1 - dist
				alpha = t * t * (3 - 2*t)
			}

			a := uint8(alpha * 255)
			off := (y*size + x) * 4
			pix[off+0] = a // premultiplied white
			pix[off+1] = a
			pix[off+2] = a
			pix[off+3] = a
		}
	}
	img.WritePixels(pix)
	return img
}
