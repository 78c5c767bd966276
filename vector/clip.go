package vector

import (
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/index/rtree"
	"github.com/pkg/errors"
)

// clipped-layer archetypes; a shapefile carries a single shape type, so the
// encoder is picked from the first kept geometry
type clipPolygonRecord struct {
	geom.Polygon
	FID int `shp:"fid"`
}

type clipLineRecord struct {
	geom.LineString
	FID int `shp:"fid"`
}

type clipPointRecord struct {
	geom.Point
	FID int `shp:"fid"`
}

type spatialFeature struct {
	Feature
}

func (s spatialFeature) Bounds() *geom.Bounds { return s.G.Bounds() }

// ClipFeatures selects the features of a layer whose bounds intersect the
// buffer bounds. Selection is by bounding box, not geometric cutting, so a
// feature straddling the buffer edge is kept whole.
func ClipFeatures(feats []Feature, buffer geom.Polygon) []Feature {
	tree := rtree.NewTree(25, 50)
	for _, f := range feats {
		if f.G == nil {
			continue
		}
		tree.Insert(spatialFeature{f})
	}
	var kept []Feature
	for _, it := range tree.SearchIntersect(buffer.Bounds()) {
		kept = append(kept, it.(spatialFeature).Feature)
	}
	// rtree traversal order is structural; restore source order for a
	// deterministic output layer
	for i := 1; i < len(kept); i++ {
		for j := i; j > 0 && kept[j-1].FID > kept[j].FID; j-- {
			kept[j-1], kept[j] = kept[j], kept[j-1]
		}
	}
	return kept
}

// ClipLayer reads a shapefile, clips it to the buffer, and writes the result.
// Returns the number of features kept; zero is reported, not an error.
func ClipLayer(inFP, outFP string, buffer geom.Polygon, proj string) (int, error) {
	feats, err := ReadFeatures(inFP)
	if err != nil {
		return 0, err
	}
	kept := ClipFeatures(feats, buffer)
	if err := WriteFeatures(outFP, kept, proj); err != nil {
		return 0, err
	}
	return len(kept), nil
}

// WriteFeatures emits features to a shapefile, picking the shape type from
// the first geometry (polygon when empty). Multi-part and mismatched
// geometries are skipped.
func WriteFeatures(outFP string, kept []Feature, proj string) error {
	wrap := func(err error) error { return errors.Wrapf(err, "WriteFeatures %s", outFP) }

	var arch interface{} = clipPolygonRecord{}
	if len(kept) > 0 {
		switch kept[0].G.(type) {
		case geom.LineString, geom.MultiLineString:
			arch = clipLineRecord{}
		case geom.Point, geom.MultiPoint:
			arch = clipPointRecord{}
		}
	}
	e, err := shp.NewEncoder(outFP, arch)
	if err != nil {
		return wrap(err)
	}
	defer e.Close()

	for _, f := range kept {
		switch g := f.G.(type) {
		case geom.Polygon:
			err = e.Encode(clipPolygonRecord{Polygon: g, FID: f.FID})
		case geom.MultiPolygon:
			// one record per part, sharing the source fid
			for _, part := range g {
				if err = e.Encode(clipPolygonRecord{Polygon: part, FID: f.FID}); err != nil {
					break
				}
			}
		case geom.LineString:
			err = e.Encode(clipLineRecord{LineString: g, FID: f.FID})
		case geom.MultiLineString:
			for _, part := range g {
				if err = e.Encode(clipLineRecord{LineString: part, FID: f.FID}); err != nil {
					break
				}
			}
		case geom.Point:
			err = e.Encode(clipPointRecord{Point: g, FID: f.FID})
		case geom.MultiPoint:
			for _, part := range g {
				if err = e.Encode(clipPointRecord{Point: part, FID: f.FID}); err != nil {
					break
				}
			}
		default:
			continue // mixed geometry in a single-type layer
		}
		if err != nil {
			return wrap(err)
		}
	}
	if err := writePrj(outFP, proj); err != nil {
		return wrap(err)
	}
	return nil
}
