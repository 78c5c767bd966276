package hecras

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/ctessum/geom"
	"github.com/fogleman/contourmap"

	"github.com/aashkann/hecras/grid"
	"github.com/aashkann/hecras/vector"
)

// buildContours marches elevation contours at a fixed interval over the
// clipped DEM and writes them as a polyline shapefile tagged with elevation.
// Levels run from the interval floor of the grid minimum up through the
// maximum. No-data cells are excluded from the march.
func buildContours(dem *grid.Real, interval float64, outDir string) (string, int, error) {
	gd := dem.GD
	zmin, zmax, ok := dem.MinMax()
	if !ok {
		return "", 0, nil
	}

	// contourmap treats NaN samples as holes
	vals := make([]float64, gd.Ncells())
	for i, v := range dem.A {
		if gd.IsNodata(v) {
			vals[i] = math.NaN()
		} else {
			vals[i] = v
		}
	}
	m := contourmap.FromFloat64s(gd.Ncol, gd.Nrow, vals)

	var lines []geom.LineString
	var elevs []float64
	for z := math.Floor(zmin/interval) * interval; z <= zmax; z += interval {
		for _, c := range m.Contours(z) {
			if len(c) < 2 {
				continue
			}
			ls := make(geom.LineString, len(c))
			for i, p := range c {
				// marched positions are in sample space; samples sit at
				// cell centers
				x, y := gd.TF.Apply(p.X+.5, p.Y+.5)
				ls[i] = geom.Point{X: x, Y: y}
			}
			lines = append(lines, ls)
			elevs = append(elevs, z)
		}
	}

	if len(lines) == 0 {
		fmt.Printf("   relief below one interval (%.2f); no contours written\n", interval)
		return "", 0, nil
	}
	fp := filepath.Join(outDir, "contours.shp")
	if err := vector.WriteContours(fp, lines, elevs, gd.Proj); err != nil {
		return "", 0, err
	}
	fmt.Printf("   contours written: %s (%d lines, %.2f to %.2f)\n", fp, len(lines), zmin, zmax)
	return fp, len(lines), nil
}
