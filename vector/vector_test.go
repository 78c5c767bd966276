package vector

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/ctessum/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aashkann/hecras/d8"
)

func TestBufferPolygon(t *testing.T) {
	p := BufferPolygon(1000, 2000, 50)
	require.Len(t, p, 1)
	ring := p[0]
	assert.Len(t, ring, 65)
	assert.Equal(t, ring[0], ring[len(ring)-1], "ring closes")
	for i, pt := range ring {
		d := math.Hypot(pt.X-1000, pt.Y-2000)
		assert.InDelta(t, 50., d, 1e-9, "vertex %d", i)
	}
}

func TestClipFeatures(t *testing.T) {
	sq := func(x, y, w float64) geom.Polygon {
		return geom.Polygon{{
			{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + w}, {X: x, Y: y + w}, {X: x, Y: y},
		}}
	}
	feats := []Feature{
		{G: sq(0, 0, 10), FID: 0},     // inside
		{G: sq(95, 95, 10), FID: 1},   // straddles the buffer edge: kept whole
		{G: sq(500, 500, 10), FID: 2}, // far outside
		{G: sq(-5, -5, 4), FID: 3},    // inside
	}
	kept := ClipFeatures(feats, BufferPolygon(0, 0, 100))
	require.Len(t, kept, 3)
	assert.Equal(t, 0, kept[0].FID)
	assert.Equal(t, 1, kept[1].FID)
	assert.Equal(t, 3, kept[2].FID, "source order restored")
}

func TestStreamShapefileRoundTrip(t *testing.T) {
	net := &d8.Network{
		Proj: `PROJCS["rt"]`,
		Lines: []d8.Polyline{
			{ID: 0, V: [][2]float64{{0, 0}, {10, 10}, {20, 15}}},
			{ID: 1, V: [][2]float64{{5, 0}, {10, 10}}},
		},
	}
	fp := filepath.Join(t.TempDir(), "streams.shp")
	require.NoError(t, WriteStreams(fp, net))

	feats, err := ReadFeatures(fp)
	require.NoError(t, err)
	require.Len(t, feats, 2)

	// polyline shapefiles may decode as single- or multi-part
	var ls geom.LineString
	switch g := feats[0].G.(type) {
	case geom.LineString:
		ls = g
	case geom.MultiLineString:
		require.Len(t, g, 1)
		ls = g[0]
	default:
		t.Fatalf("unexpected geometry type %T", feats[0].G)
	}
	require.Len(t, ls, 3)
	assert.Equal(t, 10., ls[1].X)
	assert.Equal(t, 10., ls[1].Y)
}

func TestClipLayerRoundTrip(t *testing.T) {
	dir := t.TempDir()
	inFP := filepath.Join(dir, "in.shp")
	net := &d8.Network{
		Lines: []d8.Polyline{
			{ID: 0, V: [][2]float64{{0, 0}, {5, 5}}},
			{ID: 1, V: [][2]float64{{900, 900}, {910, 910}}},
		},
	}
	require.NoError(t, WriteStreams(inFP, net))

	outFP := filepath.Join(dir, "out.shp")
	n, err := ClipLayer(inFP, outFP, BufferPolygon(0, 0, 50), "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	feats, err := ReadFeatures(outFP)
	require.NoError(t, err)
	assert.Len(t, feats, 1)
}
