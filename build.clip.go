package hecras

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/maseology/mmio"
	"github.com/pkg/errors"

	"github.com/aashkann/hecras/grid"
	"github.com/aashkann/hecras/vector"
)

// clipSet holds one buffer's worth of clipped outputs.
type clipSet struct {
	dem      *grid.Real
	buffer   geom.Polygon
	demFP    string
	bufferFP string
	layerFPs []string
}

// buildClip windows the DEM to the buffer circle around the projected site,
// masks cells outside it to no-data, and clips every reference layer in
// shapeDir by bounds intersection.
func buildClip(dem *grid.Real, x, y, rad float64, shapeDir, outDir, suffix string) (*clipSet, error) {
	mmio.MakeDir(outDir)

	buffer := vector.BufferPolygon(x, y, rad)
	bufferFP := filepath.Join(outDir, fmt.Sprintf("site_buffer_%s.shp", suffix))
	if err := vector.WriteBuffer(bufferFP, buffer, rad, dem.GD.Proj); err != nil {
		return nil, err
	}
	fmt.Printf("   buffer written: %s\n", bufferFP)

	clipped, err := clipDEM(dem, x, y, rad)
	if err != nil {
		return nil, err
	}
	demFP := filepath.Join(outDir, fmt.Sprintf("dem_clipped_%s.asc", suffix))
	if err := grid.WriteASC(demFP, clipped); err != nil {
		return nil, err
	}
	fmt.Printf("   clipped DEM written: %s (%d x %d)\n", demFP, clipped.GD.Nrow, clipped.GD.Ncol)

	cs := &clipSet{dem: clipped, buffer: buffer, demFP: demFP, bufferFP: bufferFP}
	if shapeDir == "" {
		return cs, nil
	}
	shps, err := filepath.Glob(filepath.Join(shapeDir, "*.shp"))
	if err != nil {
		return nil, errors.Wrapf(err, "buildClip: glob %s", shapeDir)
	}
	for _, shpFP := range shps {
		stem := strings.TrimSuffix(filepath.Base(shpFP), ".shp")
		outFP := filepath.Join(outDir, fmt.Sprintf("%s_clipped_%s.shp", stem, suffix))
		n, err := vector.ClipLayer(shpFP, outFP, buffer, dem.GD.Proj)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			fmt.Printf("   %s: no features in buffer (empty clip)\n", stem)
		} else {
			fmt.Printf("   clipped layer written: %s (%d features)\n", outFP, n)
		}
		cs.layerFPs = append(cs.layerFPs, outFP)
	}
	return cs, nil
}

// clipDEM returns a fresh grid windowed to the buffer's bounding box, with
// cells whose centers fall outside the circle set to no-data.
func clipDEM(dem *grid.Real, x, y, rad float64) (*grid.Real, error) {
	gd := dem.GD

	c0, r0 := gd.TF.Index(x-rad, y+rad)
	c1, r1 := gd.TF.Index(x+rad, y-rad)
	jmin, jmax := int(math.Floor(math.Min(c0, c1))), int(math.Ceil(math.Max(c0, c1)))
	imin, imax := int(math.Floor(math.Min(r0, r1))), int(math.Ceil(math.Max(r0, r1)))
	if jmin < 0 {
		jmin = 0
	}
	if imin < 0 {
		imin = 0
	}
	if jmax > gd.Ncol {
		jmax = gd.Ncol
	}
	if imax > gd.Nrow {
		imax = gd.Nrow
	}
	if imin >= imax || jmin >= jmax {
		return nil, errors.Errorf("clipDEM: buffer does not overlap the DEM (site %v, %v)", x, y)
	}

	cx, cy := gd.TF.Apply(float64(jmin), float64(imin))
	sub := &grid.Definition{
		Nrow:   imax - imin,
		Ncol:   jmax - jmin,
		Nodata: gd.Nodata,
		Proj:   gd.Proj,
		TF:     grid.Transform{A: gd.TF.A, B: gd.TF.B, C: cx, D: gd.TF.D, E: gd.TF.E, F: cy},
	}
	out := grid.NewReal(sub)
	nkept := 0
	for i := imin; i < imax; i++ {
		for j := jmin; j < jmax; j++ {
			px, py := gd.TF.CellCentroid(i, j)
			if (px-x)*(px-x)+(py-y)*(py-y) > rad*rad {
				continue
			}
			v := dem.Value(i, j)
			if gd.IsNodata(v) {
				continue
			}
			out.Set(i-imin, j-jmin, v)
			nkept++
		}
	}
	if nkept == 0 {
		return nil, errors.New("clipDEM: no valid cells within the buffer")
	}
	return out, nil
}
