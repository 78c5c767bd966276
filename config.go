package hecras

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/aashkann/hecras/d8"
	"github.com/aashkann/hecras/fetch"
)

// Config is the workflow control file. Everything the core needs is passed
// down as explicit parameters; nothing here is ambient state.
type Config struct {
	CoordFile string `yaml:"coordfile"` // first line: "lat, lon" (WGS84)
	DemFP     string `yaml:"demfp"`     // ESRI ASCII DEM
	ShapeDir  string `yaml:"shapedir"`  // reference layers to clip
	OutDir    string `yaml:"outdir"`

	BufferModel     float64 `yaml:"buffer"`          // model study-area radius [m]
	BufferViz       float64 `yaml:"bufferqgis"`      // visualization radius [m]
	StreamThreshold float64 `yaml:"streamthreshold"` // accumulation threshold [cells]
	ContourInterval float64 `yaml:"contourinterval"` // [vertical units]
	FillPasses      int     `yaml:"fillpasses"`      // sink-fill iteration cap

	Assets []fetch.Asset `yaml:"assets,omitempty"` // optional seed downloads
}

// LoadConfig reads a YAML control file, applying defaults for unset values.
func LoadConfig(fp string) (*Config, error) {
	b, err := os.ReadFile(fp)
	if err != nil {
		return nil, errors.Wrapf(err, "LoadConfig %s", fp)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, errors.Wrapf(err, "LoadConfig %s", fp)
	}
	cfg.setDefaults()
	if cfg.CoordFile == "" || cfg.DemFP == "" {
		return nil, errors.Errorf("LoadConfig %s: coordfile and demfp are required", fp)
	}
	return &cfg, nil
}

func (cfg *Config) setDefaults() {
	if cfg.OutDir == "" {
		cfg.OutDir = "output"
	}
	if cfg.BufferModel <= 0 {
		cfg.BufferModel = 200.
	}
	if cfg.BufferViz <= 0 {
		cfg.BufferViz = 100.
	}
	if cfg.StreamThreshold <= 0 {
		cfg.StreamThreshold = 500.
	}
	if cfg.ContourInterval <= 0 {
		cfg.ContourInterval = 1.
	}
	if cfg.FillPasses <= 0 {
		cfg.FillPasses = d8.DefaultFillPasses
	}
}
