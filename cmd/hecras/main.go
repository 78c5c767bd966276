package main

import (
	"log"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/aashkann/hecras"
	"github.com/aashkann/hecras/fetch"
)

var CLI struct {
	Run struct {
		Config string `arg:"" help:"Workflow control file (YAML)" type:"existingfile"`
	} `cmd:"" help:"Run the full site-preparation workflow: clip, delineate, contour, package"`

	Delineate struct {
		Dem       string  `arg:"" help:"DEM (ESRI ASCII)" type:"existingfile"`
		Threshold float64 `short:"t" default:"500" help:"Stream accumulation threshold [cells]"`
		Passes    int     `default:"50" help:"Sink-fill pass cap"`
		Out       string  `short:"o" default:"output" help:"Output directory"`
	} `cmd:"" help:"Delineate streams from a prepared DEM only"`

	Download struct {
		Lat    float64 `arg:"" help:"Site latitude (WGS84)"`
		Lon    float64 `arg:"" help:"Site longitude (WGS84)"`
		Buffer float64 `default:"2000" help:"Search radius around the site [m]"`
		Out    string  `short:"o" default:"downloads" help:"Output directory"`
	} `cmd:"" help:"Download public reference layers (NHD, FEMA NFHL, parcels) around a site"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("hecras"),
		kong.Description("terrain and hydrology preparation for HEC-RAS flood models"))

	switch ctx.Command() {
	case "run <config>":
		cfg, err := hecras.LoadConfig(CLI.Run.Config)
		if err != nil {
			log.Fatalf("%v", err)
		}
		if err := hecras.Run(cfg); err != nil {
			log.Fatalf("%v", err)
		}
	case "delineate <dem>":
		if err := hecras.Delineate(CLI.Delineate.Dem, CLI.Delineate.Threshold, CLI.Delineate.Passes, CLI.Delineate.Out); err != nil {
			log.Fatalf("%v", err)
		}
	case "download <lat> <lon>":
		lg, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer lg.Sync()
		c := fetch.NewClient(lg)
		paths := c.DownloadAll(CLI.Download.Lat, CLI.Download.Lon, CLI.Download.Buffer, CLI.Download.Out)
		n := 0
		for _, fp := range paths {
			if fp != "" {
				n++
			}
		}
		lg.Sugar().Infow("download complete", "written", n, "of", len(paths))
	default:
		ctx.FatalIfErrorf(ctx.Error)
	}
}
