// Package fetch downloads public reference datasets for a site: NHD
// hydrography, FEMA flood hazard zones and parcel boundaries from ArcGIS
// REST services, plus bulk seed assets (DEM tiles, shapefile archives).
// Download failures degrade to warnings — the workflow proceeds without the
// missing layer.
package fetch

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/ctessum/geom"
	"github.com/maseology/mmio"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/aashkann/hecras/vector"
)

const (
	nhdMapServer  = "https://hydro.nationalmap.gov/arcgis/rest/services/nhd/MapServer"
	nfhlMapServer = "https://hazards.fema.gov/gis/nfhl/rest/services/public/NFHL/MapServer"
	laParcelsURL  = "https://public.gis.lacounty.gov/public/rest/services/LACounty_Cache/LACounty_Parcel/MapServer"

	nhdFlowlineLayer  = 6
	nhdWaterbodyLayer = 3
	nhdCatchmentLayer = 10
	nfhlHazardLayer   = 28
	laParcelLayer     = 0
)

// Client queries ArcGIS REST MapServer layers around a site.
type Client struct {
	hc  *http.Client
	log *zap.SugaredLogger
}

// NewClient returns a Client logging through lg (zap.NewNop is acceptable).
func NewClient(lg *zap.Logger) *Client {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Client{
		hc:  &http.Client{Timeout: 30 * time.Second},
		log: lg.Sugar(),
	}
}

// bboxWGS84 returns (xmin, ymin, xmax, ymax) in WGS84, roughly bufferM
// meters around the site.
func bboxWGS84(lat, lon, bufferM float64) [4]float64 {
	degLat := bufferM / 111000.
	degLon := bufferM / (111000. * math.Max(.1, math.Abs(math.Cos(lat*math.Pi/180.))))
	return [4]float64{lon - degLon, lat - degLat, lon + degLon, lat + degLat}
}

// query hits one MapServer layer with an envelope filter and writes any
// returned features to a shapefile. An empty path means no features (or a
// degraded failure, logged).
func (c *Client) query(server string, layer int, bbox [4]float64, outFP, label string) string {
	q := url.Values{
		"where":          {"1=1"},
		"geometry":       {fmt.Sprintf("%v,%v,%v,%v", bbox[0], bbox[1], bbox[2], bbox[3])},
		"geometryType":   {"esriGeometryEnvelope"},
		"inSR":           {"4326"},
		"outSR":          {"4326"},
		"spatialRel":     {"esriSpatialRelIntersects"},
		"outFields":      {"*"},
		"returnGeometry": {"true"},
		"f":              {"geojson"},
	}
	queryURL := fmt.Sprintf("%s/%d/query?%s", server, layer, q.Encode())

	body, err := c.get(queryURL)
	if err != nil {
		c.log.Warnw("dataset download failed", "dataset", label, "error", err)
		return ""
	}
	feats := geojsonFeatures(body)
	if len(feats) == 0 {
		c.log.Infow("no features found in area", "dataset", label)
		return ""
	}
	if err := vector.WriteFeatures(outFP, feats, ""); err != nil {
		c.log.Warnw("dataset save failed", "dataset", label, "error", err)
		return ""
	}
	c.log.Infow("dataset written", "dataset", label, "features", len(feats), "path", filepath.Base(outFP))
	return outFP
}

func (c *Client) get(u string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "fetch: build request")
	}
	req.Header.Set("User-Agent", "hecras-gis-tool/1.0")
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetch: request")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch: status %s", resp.Status)
	}
	b, err := io.ReadAll(resp.Body)
	return b, errors.Wrap(err, "fetch: read body")
}

// geojsonFeatures converts a GeoJSON FeatureCollection body to features.
// Unsupported geometry types are skipped.
func geojsonFeatures(body []byte) []vector.Feature {
	var feats []vector.Feature
	gjson.GetBytes(body, "features").ForEach(func(_, f gjson.Result) bool {
		g := toGeom(f.Get("geometry.type").String(), f.Get("geometry.coordinates"))
		if g != nil {
			feats = append(feats, vector.Feature{G: g, FID: len(feats)})
		}
		return true
	})
	return feats
}

func toGeom(typ string, coords gjson.Result) geom.Geom {
	pt := func(r gjson.Result) geom.Point {
		a := r.Array()
		if len(a) < 2 {
			return geom.Point{}
		}
		return geom.Point{X: a[0].Float(), Y: a[1].Float()}
	}
	line := func(r gjson.Result) geom.LineString {
		var ls geom.LineString
		for _, p := range r.Array() {
			ls = append(ls, pt(p))
		}
		return ls
	}
	poly := func(r gjson.Result) geom.Polygon {
		var pg geom.Polygon
		for _, ring := range r.Array() {
			var rg []geom.Point
			for _, p := range ring.Array() {
				rg = append(rg, pt(p))
			}
			pg = append(pg, rg)
		}
		return pg
	}

	switch typ {
	case "Point":
		return pt(coords)
	case "LineString":
		return line(coords)
	case "Polygon":
		return poly(coords)
	case "MultiLineString":
		// flattened: the emitter writes single-part records
		var ls geom.LineString
		for _, part := range coords.Array() {
			ls = append(ls, line(part)...)
		}
		return ls
	case "MultiPolygon":
		var pg geom.Polygon
		for _, part := range coords.Array() {
			pg = append(pg, poly(part)...)
		}
		return pg
	default:
		return nil
	}
}

// DownloadAll fetches every supported dataset for the site area. The result
// maps dataset name to the written path; missing datasets map to "".
func (c *Client) DownloadAll(lat, lon, bufferM float64, outDir string) map[string]string {
	mmio.MakeDir(outDir)
	bbox := bboxWGS84(lat, lon, bufferM)
	join := func(name string) string { return filepath.Join(outDir, name) }
	return map[string]string{
		"nhd_streams":      c.query(nhdMapServer, nhdFlowlineLayer, bbox, join("nhd_streams.shp"), "NHD Streams"),
		"nhd_waterbodies":  c.query(nhdMapServer, nhdWaterbodyLayer, bbox, join("nhd_waterbodies.shp"), "NHD Waterbodies"),
		"nhd_catchments":   c.query(nhdMapServer, nhdCatchmentLayer, bbox, join("nhd_catchments.shp"), "NHD Catchments"),
		"fema_flood_zones": c.query(nfhlMapServer, nfhlHazardLayer, bbox, join("fema_flood_zones.shp"), "FEMA Flood Zones"),
		"parcels":          c.query(laParcelsURL, laParcelLayer, bbox, join("parcels.shp"), "LA County Parcels"),
	}
}
