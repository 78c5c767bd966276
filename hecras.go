// Package hecras assembles flood-model inputs for a single site: it projects
// a WGS84 coordinate, clips a DEM and reference layers to buffered study
// areas, delineates the D8 stream network, marches elevation contours, and
// stages the results as a HEC-RAS import package and a QGIS project.
package hecras

import (
	"fmt"
	"path/filepath"

	"github.com/maseology/mmio"
	"github.com/pkg/errors"

	"github.com/aashkann/hecras/fetch"
	"github.com/aashkann/hecras/grid"
)

// Run executes the full site-preparation workflow described by cfg.
func Run(cfg *Config) error {
	tt := mmio.NewTimer()

	///////////////////////////////////////////////////////
	println("checking inputs..")
	if err := CheckInputs(cfg); err != nil {
		return err
	}
	if len(cfg.Assets) > 0 {
		println(" fetching assets..")
		if err := fetch.FetchAssets(cfg.Assets, filepath.Join(cfg.OutDir, "assets")); err != nil {
			return err
		}
	}

	///////////////////////////////////////////////////////
	println("locating site..")
	lat, lon, err := ReadCoordinates(cfg.CoordFile)
	if err != nil {
		return err
	}
	x, y, err := ProjectSite(lat, lon)
	if err != nil {
		return err
	}
	fmt.Printf("   site %.6f, %.6f projects to %.1f, %.1f\n", lat, lon, x, y)

	println("loading DEM..")
	dem, err := grid.ReadASC(cfg.DemFP)
	if err != nil {
		return err
	}
	printDEMSummary(dem)
	tt.Lap("inputs loaded")

	///////////////////////////////////////////////////////
	fmt.Printf("clipping to model buffer (%.0f m)..\n", cfg.BufferModel)
	csModel, err := buildClip(dem, x, y, cfg.BufferModel, cfg.ShapeDir, cfg.OutDir, "model")
	if err != nil {
		return err
	}
	fmt.Printf("clipping to visualization buffer (%.0f m)..\n", cfg.BufferViz)
	csViz, err := buildClip(dem, x, y, cfg.BufferViz, cfg.ShapeDir, cfg.OutDir, "qgis")
	if err != nil {
		return err
	}
	tt.Lap("clipping complete")

	///////////////////////////////////////////////////////
	fmt.Printf("delineating streams (threshold %.0f cells)..\n", cfg.StreamThreshold)
	_, streamFP, err := buildStreams(csModel.dem, cfg.StreamThreshold, cfg.FillPasses, cfg.OutDir)
	if err != nil {
		return errors.Wrap(err, "stream delineation")
	}
	tt.Lap("delineation complete")

	///////////////////////////////////////////////////////
	fmt.Printf("building contours (interval %.2f)..\n", cfg.ContourInterval)
	contourFP, _, err := buildContours(csViz.dem, cfg.ContourInterval, cfg.OutDir)
	if err != nil {
		return errors.Wrap(err, "contouring")
	}

	///////////////////////////////////////////////////////
	println("staging HEC-RAS package..")
	pkgDir, err := buildHECRAS(csModel, streamFP, cfg.OutDir)
	if err != nil {
		return err
	}
	println("writing QGIS project..")
	qgsFP, err := buildQGIS(csViz, streamFP, contourFP, cfg.OutDir, "site_review")
	if err != nil {
		return err
	}

	if !checkOutputs(cfg.OutDir, map[string]string{
		"clipped DEM":     csModel.demFP,
		"site buffer":     csModel.bufferFP,
		"streams":         streamFP,
		"contours":        contourFP,
		"HEC-RAS package": pkgDir,
		"QGIS project":    qgsFP,
	}) {
		return errors.New("one or more outputs failed verification")
	}

	tt.Print("workflow complete, see " + cfg.OutDir)
	return nil
}

// Delineate runs only the terrain-to-streams core: load a DEM, trace the
// network, write the shapefile. Used when the study area is already prepared.
func Delineate(demFP string, threshold float64, maxpass int, outDir string) error {
	dem, err := grid.ReadASC(demFP)
	if err != nil {
		return err
	}
	printDEMSummary(dem)
	mmio.MakeDir(outDir)
	_, _, err = buildStreams(dem, threshold, maxpass, outDir)
	return err
}
