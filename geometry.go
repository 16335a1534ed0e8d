package glowgrid

import "math/rand/v2"

// Grid geometry. Every entity is placed on a fixed pitch so cells and
// electron paths stay aligned with the background grid lines.
const (
	// CellSize is the interior size of one grid cell in pixels.
	CellSize = 10
	// BorderWidth is the thickness of the grid lines between cells.
	BorderWidth = 2
	// Pitch is the spacing between adjacent grid origins.
	Pitch = CellSize + BorderWidth
)

// GridPoint is a position in pixel space snapped to the grid pitch.
type GridPoint struct {
	X, Y int
}

// directionOffsets are the four pitch-distance moves an electron can make
// from a grid vertex.
var directionOffsets = [4]GridPoint{
	{X: Pitch, Y: 0},
	{X: -Pitch, Y: 0},
	{X: 0, Y: Pitch},
	{X: 0, Y: -Pitch},
}

// cornerOffsets are the four grid vertices of a cell, relative to its origin.
// Electrons spawned by a cell start at one of these.
var cornerOffsets = [4]GridPoint{
	{X: 0, Y: 0},
	{X: Pitch, Y: 0},
	{X: 0, Y: Pitch},
	{X: Pitch, Y: Pitch},
}

// Add returns p translated by q.
func (p GridPoint) Add(q GridPoint) GridPoint {
	return GridPoint{X: p.X + q.X, Y: p.Y + q.Y}
}

// Snap floors a pixel coordinate to the nearest grid origin at or below it.
func Snap(v int) int {
	if v < 0 {
		return 0
	}
	return v - v%Pitch
}

// SnapPoint snaps both coordinates of a pixel position to the grid.
func SnapPoint(x, y int) GridPoint {
	return GridPoint{X: Snap(x), Y: Snap(y)}
}

// CellOrigin converts grid cell indices to the cell's pixel origin.
func CellOrigin(col, row int) GridPoint {
	return GridPoint{X: col * Pitch, Y: row * Pitch}
}

// Cols returns the number of whole grid columns that fit in width pixels.
func Cols(width int) int {
	if width < Pitch {
		return 0
	}
	return width / Pitch
}

// Rows returns the number of whole grid rows that fit in height pixels.
func Rows(height int) int {
	if height < Pitch {
		return 0
	}
	return height / Pitch
}

// randomCell returns the pixel origin of a uniformly random grid cell within
// a width x height viewport. Falls back to the origin cell on degenerate sizes.
func randomCell(width, height int, rng *rand.Rand) GridPoint {
	cols, rows := Cols(width), Rows(height)
	if cols <= 0 || rows <= 0 {
		return GridPoint{}
	}
	return CellOrigin(rng.IntN(cols), rng.IntN(rows))
}
