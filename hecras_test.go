package hecras

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aashkann/hecras/grid"
)

func flatGrid(nr, nc int, z float64) *grid.Real {
	gd := &grid.Definition{
		Nrow: nr, Ncol: nc, Nodata: -9999.,
		TF: grid.Transform{A: 1, C: 0, E: -1, F: float64(nr)},
	}
	r := grid.NewReal(gd)
	for i := range r.A {
		r.A[i] = z
	}
	return r
}

func TestClipDEMWindow(t *testing.T) {
	dem := flatGrid(10, 10, 5.)

	out, err := clipDEM(dem, 5., 5., 2.)
	require.NoError(t, err)
	assert.Equal(t, 4, out.GD.Nrow)
	assert.Equal(t, 4, out.GD.Ncol)
	assert.Equal(t, 3., out.GD.TF.C, "window origin snaps to the cell lattice")
	assert.Equal(t, 7., out.GD.TF.F)
	// the four window corners fall outside the circle
	assert.Equal(t, 12, out.Nvalid())
	assert.Equal(t, dem.GD.Nodata, out.Value(0, 0))
	assert.Equal(t, 5., out.Value(0, 1))
}

func TestClipDEMOutsideGrid(t *testing.T) {
	dem := flatGrid(10, 10, 5.)
	_, err := clipDEM(dem, 500., 500., 10.)
	assert.Error(t, err)
}

func TestClipDEMClampsToEdge(t *testing.T) {
	dem := flatGrid(10, 10, 5.)
	out, err := clipDEM(dem, 0., 10., 3.)
	require.NoError(t, err)
	assert.LessOrEqual(t, out.GD.Nrow, 4)
	assert.LessOrEqual(t, out.GD.Ncol, 4)
	assert.Greater(t, out.Nvalid(), 0)
}

func TestDelineateWorkflow(t *testing.T) {
	// inclined plane draining southeast
	gd := &grid.Definition{
		Nrow: 5, Ncol: 5, Nodata: -9999.,
		TF: grid.Transform{A: 1, C: 0, E: -1, F: 5},
	}
	dem := grid.NewReal(gd)
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			dem.Set(i, j, 100.-float64(i)-float64(j))
		}
	}
	dir := t.TempDir()
	demFP := filepath.Join(dir, "dem.asc")
	require.NoError(t, grid.WriteASC(demFP, dem))

	outDir := filepath.Join(dir, "out")
	require.NoError(t, Delineate(demFP, 5., 50, outDir))

	_, err := os.Stat(filepath.Join(outDir, "streams.shp"))
	assert.NoError(t, err, "stream shapefile written")
}

func TestBuildQGISProject(t *testing.T) {
	dir := t.TempDir()
	touch := func(name string) string {
		fp := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(fp, []byte("x"), 0644))
		return fp
	}
	cs := &clipSet{
		dem:      flatGrid(2, 2, 1.),
		demFP:    touch("dem_clipped_qgis.asc"),
		bufferFP: touch("site_buffer_qgis.shp"),
		layerFPs: []string{touch("roads_clipped_qgis.shp")},
	}
	cs.dem.GD.Proj = `PROJCS["unit test"]`

	fp, err := buildQGIS(cs, touch("streams.shp"), "", dir, "site_review")
	require.NoError(t, err)

	b, err := os.ReadFile(fp)
	require.NoError(t, err)
	doc := string(b)
	for _, want := range []string{
		"<qgis", `version="3.28.0"`, "PROJCS[&#34;unit test&#34;]",
		"streams", "site_buffer_qgis", "roads_clipped_qgis", "dem_clipped_qgis",
		"<provider>gdal</provider>", "<provider>ogr</provider>",
	} {
		assert.True(t, strings.Contains(doc, want), "missing %q", want)
	}
}

func TestBuildContoursPlane(t *testing.T) {
	gd := &grid.Definition{
		Nrow: 20, Ncol: 20, Nodata: -9999.,
		TF: grid.Transform{A: 1, C: 0, E: -1, F: 20},
	}
	dem := grid.NewReal(gd)
	for i := 0; i < 20; i++ {
		for j := 0; j < 20; j++ {
			dem.Set(i, j, float64(i)) // 0..19, northern edge low
		}
	}
	outDir := t.TempDir()
	fp, n, err := buildContours(dem, 5., outDir)
	require.NoError(t, err)
	require.NotEmpty(t, fp)
	assert.Greater(t, n, 0)
	_, err = os.Stat(fp)
	assert.NoError(t, err)
}

func TestBuildHECRASPackage(t *testing.T) {
	dir := t.TempDir()
	demFP := filepath.Join(dir, "dem_clipped_model.asc")
	require.NoError(t, os.WriteFile(demFP, []byte("ncols 1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dem_clipped_model.prj"), []byte("PROJCS"), 0644))
	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "site_buffer_model"+ext), []byte("x"), 0644))
	}

	cs := &clipSet{demFP: demFP, bufferFP: filepath.Join(dir, "site_buffer_model.shp")}
	pkg, err := buildHECRAS(cs, "", dir)
	require.NoError(t, err)

	for _, name := range []string{"terrain.asc", "terrain.prj", "projection.prj", "site_buffer.shp", "site_buffer.dbf", "README_HECRAS.txt"} {
		_, err := os.Stat(filepath.Join(pkg, name))
		assert.NoError(t, err, name)
	}
	b, err := os.ReadFile(filepath.Join(pkg, "README_HECRAS.txt"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), "streams.shp was not produced"))
}

func TestCheckOutputs(t *testing.T) {
	dir := t.TempDir()
	dem := filepath.Join(dir, "dem_clipped_model.asc")
	require.NoError(t, os.WriteFile(dem, []byte("x"), 0644))

	ok := checkOutputs(dir, map[string]string{
		"clipped DEM":     dem,
		"streams":         "", // stage produced nothing: skipped, not failed
		"HEC-RAS package": dir,
	})
	assert.True(t, ok)

	ok = checkOutputs(dir, map[string]string{
		"clipped DEM": filepath.Join(dir, "missing.asc"),
	})
	assert.False(t, ok)
}

func TestShapefileComplete(t *testing.T) {
	dir := t.TempDir()
	stem := filepath.Join(dir, "layer")
	for _, ext := range []string{".shp", ".shx"} {
		require.NoError(t, os.WriteFile(stem+ext, []byte("x"), 0644))
	}
	assert.False(t, shapefileComplete(stem+".shp"), "dbf missing")
	require.NoError(t, os.WriteFile(stem+".dbf", []byte("x"), 0644))
	assert.True(t, shapefileComplete(stem+".shp"))
}

func TestRunFailsFastOnMissingInputs(t *testing.T) {
	cfg := &Config{CoordFile: "nope.txt", DemFP: "nope.asc"}
	cfg.setDefaults()
	err := Run(cfg)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "coordinate file"), fmt.Sprintf("got %v", err))
}
