package hecras

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "ctl.yaml")
	require.NoError(t, os.WriteFile(fp, []byte("coordfile: site.txt\ndemfp: dem.asc\n"), 0644))

	cfg, err := LoadConfig(fp)
	require.NoError(t, err)
	assert.Equal(t, "output", cfg.OutDir)
	assert.Equal(t, 200., cfg.BufferModel)
	assert.Equal(t, 100., cfg.BufferViz)
	assert.Equal(t, 500., cfg.StreamThreshold)
	assert.Equal(t, 1., cfg.ContourInterval)
	assert.Equal(t, 50, cfg.FillPasses)
}

func TestLoadConfigOverrides(t *testing.T) {
	body := `coordfile: site.txt
demfp: dem.asc
shapedir: shapes
outdir: out
buffer: 350
bufferqgis: 120
streamthreshold: 80
contourinterval: 0.5
fillpasses: 10
assets:
  - name: dem
    url: https://example.com/dem.zip
`
	fp := filepath.Join(t.TempDir(), "ctl.yaml")
	require.NoError(t, os.WriteFile(fp, []byte(body), 0644))

	cfg, err := LoadConfig(fp)
	require.NoError(t, err)
	assert.Equal(t, 350., cfg.BufferModel)
	assert.Equal(t, 120., cfg.BufferViz)
	assert.Equal(t, 80., cfg.StreamThreshold)
	assert.Equal(t, .5, cfg.ContourInterval)
	assert.Equal(t, 10, cfg.FillPasses)
	require.Len(t, cfg.Assets, 1)
	assert.Equal(t, "dem", cfg.Assets[0].Name)
}

func TestLoadConfigRequiredFields(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "ctl.yaml")
	require.NoError(t, os.WriteFile(fp, []byte("outdir: out\n"), 0644))
	_, err := LoadConfig(fp)
	assert.Error(t, err)
}

func TestCheckInputsBufferOrder(t *testing.T) {
	dir := t.TempDir()
	coord := filepath.Join(dir, "site.txt")
	dem := filepath.Join(dir, "dem.asc")
	require.NoError(t, os.WriteFile(coord, []byte("34.05, -118.25\n"), 0644))
	require.NoError(t, os.WriteFile(dem, []byte("x"), 0644))

	cfg := &Config{CoordFile: coord, DemFP: dem, BufferModel: 100, BufferViz: 200}
	assert.Error(t, CheckInputs(cfg), "viz buffer must not exceed the model buffer")

	cfg.BufferViz = 50
	assert.NoError(t, CheckInputs(cfg))
}
