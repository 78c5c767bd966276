package d8

import (
	"math"

	"github.com/aashkann/hecras/grid"
)

// FillSinks raises every single-cell pit to the minimum elevation of its
// valid neighbors, repeating until no pit remains or maxpass passes have
// run, whichever comes first. Grid edges and no-data neighbors count as
// +inf, so border cells never drain outward through that side. No-data
// cells are left untouched. The input grid is not modified.
//
// The pass cap trades exactness for bounded cost: a depression deeper than
// one cell may need several passes, and one deeper than maxpass cells stays
// partially filled.
func FillSinks(dem *grid.Real, maxpass int) *grid.Real {
	gd := dem.GD
	nr, nc := gd.Nrow, gd.Ncol
	filled := dem.Copy()

	minnb := make([]float64, nr*nc)
	for pass := 0; pass < maxpass; pass++ {
		// neighbor minima from a snapshot of the current surface
		for i := 0; i < nr; i++ {
			for j := 0; j < nc; j++ {
				m := math.Inf(1)
				for k := 0; k < 8; k++ {
					in, jn := i+dr[k], j+dc[k]
					if in < 0 || in >= nr || jn < 0 || jn >= nc {
						continue
					}
					if zn := filled.Value(in, jn); !gd.IsNodata(zn) && zn < m {
						m = zn
					}
				}
				minnb[i*nc+j] = m
			}
		}

		npit := 0
		for i := 0; i < nr; i++ {
			for j := 0; j < nc; j++ {
				z := filled.Value(i, j)
				if gd.IsNodata(z) {
					continue
				}
				if m := minnb[i*nc+j]; z < m && !math.IsInf(m, 1) {
					filled.Set(i, j, m)
					npit++
				}
			}
		}
		if npit == 0 {
			break
		}
	}
	return filled
}
