package d8

import (
	"github.com/aashkann/hecras/grid"
)

// FlowDirections assigns each valid cell the octant of its steepest strictly
// positive downslope, scanning E, SE, S, SW, W, NW, N, NE; equal slopes keep
// the first octant scanned. Slope to a neighbor is (z - zn) / distance, with
// diagonal distance √2. Neighbors off-grid or holding no-data are excluded.
// Cells with no strictly positive slope (pits, plateaus, isolated cells) and
// no-data cells are Undefined. Deterministic: identical elevations always
// yield identical directions.
func FlowDirections(dem *grid.Real) []int8 {
	gd := dem.GD
	nr, nc := gd.Nrow, gd.Ncol
	fdir := make([]int8, nr*nc)

	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			fdir[i*nc+j] = Undefined
			z := dem.Value(i, j)
			if gd.IsNodata(z) {
				continue
			}
			smax := 0.
			for k := 0; k < 8; k++ {
				in, jn := i+dr[k], j+dc[k]
				if in < 0 || in >= nr || jn < 0 || jn >= nc {
					continue
				}
				zn := dem.Value(in, jn)
				if gd.IsNodata(zn) {
					continue
				}
				if s := (z - zn) / dist[k]; s > smax {
					smax = s
					fdir[i*nc+j] = int8(k)
				}
			}
		}
	}
	return fdir
}
