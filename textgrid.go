package glowgrid

import (
	"fmt"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

// referenceFontSize is the size text is measured at before scaling to fit.
// It is also the upper clamp on the rendered size.
const referenceFontSize = 300

// textWidthFraction is how much of the buffer width the rendered text may
// occupy.
const textWidthFraction = 0.8

// TextToGrid rasterizes text onto an offscreen buffer of the given viewport
// size and samples the result on the grid pitch, returning the lit grid
// origins in pixel space. The text is drawn bold, centered on both axes,
// scaled down so its width fits textWidthFraction of the buffer.
//
// A blank string yields an empty matrix. Very long strings may shrink below
// legibility; no minimum font size is enforced.
func TextToGrid(text string, width, height int) ([]GridPoint, error) {
	text = strings.TrimSpace(text)
	if text == "" || width < Pitch || height < Pitch {
		return nil, nil
	}

	ttf, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	dc := gg.NewContext(width, height)
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    referenceFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	// Measure at the reference size, then scale so the text fits.
	tw, _ := dc.MeasureString(text)
	size := float64(referenceFontSize)
	if maxW := textWidthFraction * float64(width); tw > maxW {
		size = referenceFontSize * maxW / tw
		dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		}))
	}

	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(text, float64(width)/2, float64(height)/2, 0.5, 0.5)

	// Sample the alpha channel on the grid pitch. Sample points are grid
	// origins, so lit coordinates come out snapped already.
	img := dc.Image()
	var matrix []GridPoint
	for y := 0; y < height; y += Pitch {
		for x := 0; x < width; x += Pitch {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				matrix = append(matrix, GridPoint{X: x, Y: y})
			}
		}
	}
	return matrix, nil
}
