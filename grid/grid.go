package grid

import "math"

// Transform is a six-parameter affine mapping grid indices to map coordinates:
//
//	x = A*col + B*row + C
//	y = D*col + E*row + F
//
// (col, row) are continuous; integer indices address cell corners, so cell
// centers sit at (col+0.5, row+0.5).
type Transform struct {
	A, B, C, D, E, F float64
}

// Apply maps a continuous grid position to map coordinates.
func (t Transform) Apply(col, row float64) (x, y float64) {
	return t.A*col + t.B*row + t.C, t.D*col + t.E*row + t.F
}

// CellCentroid returns the map coordinate of the center of cell (row, col).
func (t Transform) CellCentroid(row, col int) (x, y float64) {
	return t.Apply(float64(col)+.5, float64(row)+.5)
}

// Index inverts the affine, mapping a map coordinate to a continuous grid
// position. Panics on a degenerate (zero-determinant) transform.
func (t Transform) Index(x, y float64) (col, row float64) {
	det := t.A*t.E - t.B*t.D
	if det == 0 {
		panic("grid: degenerate affine transform")
	}
	return (t.E*(x-t.C) - t.B*(y-t.F)) / det, (-t.D*(x-t.C) + t.A*(y-t.F)) / det
}

// Definition holds the geometry of a rectangular grid: shape, affine
// transform, no-data sentinel and an opaque coordinate reference string.
// Proj is passed through to outputs and never interpreted.
type Definition struct {
	TF         Transform
	Proj       string
	Nodata     float64
	Nrow, Ncol int
}

// Ncells number of cells (valid or not) in the grid
func (gd *Definition) Ncells() int { return gd.Nrow * gd.Ncol }

// CellWidth returns the map-space width of one cell along the column axis.
func (gd *Definition) CellWidth() float64 { return math.Hypot(gd.TF.A, gd.TF.D) }

// CellArea returns the map-space area of one cell (the affine determinant).
func (gd *Definition) CellArea() float64 {
	return math.Abs(gd.TF.A*gd.TF.E - gd.TF.B*gd.TF.D)
}

// IsNodata reports whether v is the no-data sentinel. NaN is always no-data.
func (gd *Definition) IsNodata(v float64) bool {
	return v == gd.Nodata || math.IsNaN(v)
}

// CellID converts (row, col) to a flat row-major index.
func (gd *Definition) CellID(row, col int) int { return row*gd.Ncol + col }

// RowCol converts a flat row-major index back to (row, col).
func (gd *Definition) RowCol(cid int) (row, col int) {
	return cid / gd.Ncol, cid % gd.Ncol
}

// Extent returns the map-space bounding box of the grid.
func (gd *Definition) Extent() (xmin, ymin, xmax, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, rc := range [4][2]float64{{0, 0}, {float64(gd.Ncol), 0}, {0, float64(gd.Nrow)}, {float64(gd.Ncol), float64(gd.Nrow)}} {
		x, y := gd.TF.Apply(rc[0], rc[1])
		xmin, xmax = math.Min(xmin, x), math.Max(xmax, x)
		ymin, ymax = math.Min(ymin, y), math.Max(ymax, y)
	}
	return
}
