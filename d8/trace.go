package d8

import (
	"github.com/aashkann/hecras/grid"
)

// TraceStreams thresholds accumulation to a stream mask, finds head cells
// (stream cells with no upstream stream cell flowing in, scanned row-major),
// and walks each head downstream through the direction grid, converting cell
// centers to map coordinates. A walk ends at an outlet (Undefined direction),
// off the mask, or at an already-traced cell — whose coordinate is appended
// once more as the confluence vertex. Lines with fewer than two vertices are
// dropped; ids number the emitted lines in head-discovery order.
func TraceStreams(fdir []int8, acc []float64, gd *grid.Definition, threshold float64) []Polyline {
	nr, nc := gd.Nrow, gd.Ncol
	mask := make([]bool, nr*nc)
	for i, a := range acc {
		mask[i] = a >= threshold
	}

	visited := make([]bool, nr*nc)
	var lines []Polyline

	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if !mask[i*nc+j] || !isHead(fdir, mask, nr, nc, i, j) || visited[i*nc+j] {
				continue
			}

			var v [][2]float64
			ci, cj := i, j
			for ci >= 0 && ci < nr && cj >= 0 && cj < nc && mask[ci*nc+cj] && !visited[ci*nc+cj] {
				x, y := gd.TF.CellCentroid(ci, cj)
				v = append(v, [2]float64{x, y})
				visited[ci*nc+cj] = true
				d := fdir[ci*nc+cj]
				if d < 0 {
					ci, cj = -1, -1 // outlet: natural terminus
					break
				}
				ci, cj = ci+dr[d], cj+dc[d]
			}
			// confluence with a previously traced branch
			if ci >= 0 && ci < nr && cj >= 0 && cj < nc && mask[ci*nc+cj] && visited[ci*nc+cj] {
				x, y := gd.TF.CellCentroid(ci, cj)
				v = append(v, [2]float64{x, y})
			}
			if len(v) >= 2 {
				lines = append(lines, Polyline{ID: len(lines), V: v})
			}
		}
	}
	return lines
}

// isHead reports whether no stream-mask neighbor drains into (i, j).
func isHead(fdir []int8, mask []bool, nr, nc, i, j int) bool {
	for k := 0; k < 8; k++ {
		in, jn := i+dr[k], j+dc[k]
		if in < 0 || in >= nr || jn < 0 || jn >= nc {
			continue
		}
		if mask[in*nc+jn] && fdir[in*nc+jn] == int8((k+4)%8) {
			return false
		}
	}
	return true
}
