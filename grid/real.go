package grid

import (
	"gonum.org/v1/gonum/floats"
)

// Real is a rectangular grid of floating-point samples in row-major order.
type Real struct {
	GD *Definition
	A  []float64
}

// NewReal allocates a grid matching gd, initialized to the no-data sentinel.
func NewReal(gd *Definition) *Real {
	a := make([]float64, gd.Ncells())
	for i := range a {
		a[i] = gd.Nodata
	}
	return &Real{GD: gd, A: a}
}

// Value returns the sample at (row, col).
func (r *Real) Value(row, col int) float64 { return r.A[row*r.GD.Ncol+col] }

// Set assigns the sample at (row, col).
func (r *Real) Set(row, col int, v float64) { r.A[row*r.GD.Ncol+col] = v }

// Copy returns a deep copy sharing the Definition.
func (r *Real) Copy() *Real {
	a := make([]float64, len(r.A))
	copy(a, r.A)
	return &Real{GD: r.GD, A: a}
}

// Nvalid counts cells holding a value other than the no-data sentinel.
func (r *Real) Nvalid() int {
	n := 0
	for _, v := range r.A {
		if !r.GD.IsNodata(v) {
			n++
		}
	}
	return n
}

// MinMax returns the least and greatest valid sample values. ok is false
// when the grid holds no valid cells.
func (r *Real) MinMax() (zmin, zmax float64, ok bool) {
	valid := make([]float64, 0, len(r.A))
	for _, v := range r.A {
		if !r.GD.IsNodata(v) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		return 0, 0, false
	}
	return floats.Min(valid), floats.Max(valid), true
}
