// Package vector reads and writes the shapefile layers surrounding the
// delineation core: site buffers, clipped reference layers, traced stream
// networks and elevation contours.
package vector

import (
	"math"
	"os"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/pkg/errors"

	"github.com/aashkann/hecras/d8"
)

// Feature is a decoded shapefile record. Attributes are not carried through
// the clip; FID preserves the source row for traceability.
type Feature struct {
	G   geom.Geom
	FID int
}

// streamRecord is the output archetype for stream shapefiles.
type streamRecord struct {
	geom.LineString
	StreamID int `shp:"stream_id"`
}

// contourRecord is the output archetype for contour shapefiles.
type contourRecord struct {
	geom.LineString
	Elevation float64 `shp:"elevation"`
}

// boundaryRecord is the output archetype for buffer-boundary shapefiles.
type boundaryRecord struct {
	geom.Polygon
	BufferM float64 `shp:"buffer_m"`
}

// BufferPolygon approximates a circle of radius rad around (x, y) with a
// regular 64-gon.
func BufferPolygon(x, y, rad float64) geom.Polygon {
	const nseg = 64
	ring := make([]geom.Point, nseg+1)
	for i := 0; i <= nseg; i++ {
		a := 2 * math.Pi * float64(i) / nseg
		ring[i] = geom.Point{X: x + rad*math.Cos(a), Y: y + rad*math.Sin(a)}
	}
	return geom.Polygon{ring}
}

// WriteBuffer emits the buffer boundary with its radius attribute.
func WriteBuffer(fp string, p geom.Polygon, rad float64, proj string) error {
	e, err := shp.NewEncoder(fp, boundaryRecord{})
	if err != nil {
		return errors.Wrapf(err, "WriteBuffer %s", fp)
	}
	if err := e.Encode(boundaryRecord{Polygon: p, BufferM: rad}); err != nil {
		e.Close()
		return errors.Wrapf(err, "WriteBuffer %s", fp)
	}
	e.Close()
	return writePrj(fp, proj)
}

// WriteStreams emits a traced network as a polyline shapefile, one record
// per stream id.
func WriteStreams(fp string, net *d8.Network) error {
	e, err := shp.NewEncoder(fp, streamRecord{})
	if err != nil {
		return errors.Wrapf(err, "WriteStreams %s", fp)
	}
	for _, ln := range net.Lines {
		ls := make(geom.LineString, len(ln.V))
		for i, v := range ln.V {
			ls[i] = geom.Point{X: v[0], Y: v[1]}
		}
		if err := e.Encode(streamRecord{LineString: ls, StreamID: ln.ID}); err != nil {
			e.Close()
			return errors.Wrapf(err, "WriteStreams %s: stream %d", fp, ln.ID)
		}
	}
	e.Close()
	return writePrj(fp, net.Proj)
}

// WriteContours emits contour polylines tagged with their elevation.
func WriteContours(fp string, lines []geom.LineString, elevs []float64, proj string) error {
	if len(lines) != len(elevs) {
		return errors.Errorf("WriteContours %s: %d lines, %d elevations", fp, len(lines), len(elevs))
	}
	e, err := shp.NewEncoder(fp, contourRecord{})
	if err != nil {
		return errors.Wrapf(err, "WriteContours %s", fp)
	}
	for i, ls := range lines {
		if err := e.Encode(contourRecord{LineString: ls, Elevation: elevs[i]}); err != nil {
			e.Close()
			return errors.Wrapf(err, "WriteContours %s: line %d", fp, i)
		}
	}
	e.Close()
	return writePrj(fp, proj)
}

// ReadFeatures decodes every record geometry of a shapefile.
func ReadFeatures(fp string) ([]Feature, error) {
	d, err := shp.NewDecoder(fp)
	if err != nil {
		return nil, errors.Wrapf(err, "ReadFeatures %s", fp)
	}
	defer d.Close()

	var feats []Feature
	for i := 0; ; i++ {
		g, _, more := d.DecodeRowFields()
		if !more {
			break
		}
		feats = append(feats, Feature{G: g, FID: i})
	}
	if err := d.Error(); err != nil {
		return nil, errors.Wrapf(err, "ReadFeatures %s", fp)
	}
	return feats, nil
}

func writePrj(shpPath, proj string) error {
	if proj == "" {
		return nil
	}
	fp := strings.TrimSuffix(shpPath, ".shp") + ".prj"
	return errors.Wrapf(os.WriteFile(fp, []byte(proj), 0644), "writePrj %s", fp)
}
