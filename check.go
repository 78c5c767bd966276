package hecras

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/maseology/mmio"
	"github.com/pkg/errors"

	"github.com/aashkann/hecras/grid"
)

// CheckInputs verifies the control file points at usable inputs before any
// work starts.
func CheckInputs(cfg *Config) error {
	if _, ok := mmio.FileExists(cfg.CoordFile); !ok {
		return errors.Errorf("coordinate file not found: %s", cfg.CoordFile)
	}
	if _, ok := mmio.FileExists(cfg.DemFP); !ok {
		return errors.Errorf("DEM not found: %s", cfg.DemFP)
	}
	if cfg.ShapeDir != "" && !mmio.DirExists(cfg.ShapeDir) {
		return errors.Errorf("shapefile directory not found: %s", cfg.ShapeDir)
	}
	if cfg.BufferViz > cfg.BufferModel {
		return errors.Errorf("visualization buffer (%.0f) exceeds model buffer (%.0f)", cfg.BufferViz, cfg.BufferModel)
	}
	if cfg.ShapeDir != "" {
		shps, _ := filepath.Glob(filepath.Join(cfg.ShapeDir, "*.shp"))
		for _, fp := range shps {
			if !shapefileComplete(fp) {
				fmt.Printf("   warning: incomplete shapefile set (missing .shx or .dbf): %s\n", fp)
			}
		}
	}
	return nil
}

// shapefileComplete reports whether the mandatory sidecars accompany a .shp.
func shapefileComplete(fp string) bool {
	stem := strings.TrimSuffix(fp, ".shp")
	for _, ext := range []string{".shp", ".shx", ".dbf"} {
		if _, ok := mmio.FileExists(stem + ext); !ok {
			return false
		}
	}
	return true
}

// checkOutputs prints the post-run manifest, one OK/FAIL mark per expected
// output. Optional outputs (streams, contours) pass an empty path when the
// stage produced nothing.
func checkOutputs(outDir string, named map[string]string) bool {
	println("\nOutput Summary\n==================================")
	allOK := true
	for _, label := range []string{"clipped DEM", "site buffer", "streams", "contours", "HEC-RAS package", "QGIS project"} {
		fp, want := named[label]
		if !want || fp == "" {
			fmt.Printf(" %-16s   -- (not produced)\n", label)
			continue
		}
		ok := false
		if strings.HasSuffix(fp, ".shp") {
			ok = shapefileComplete(fp)
		} else if _, exists := mmio.FileExists(fp); exists {
			ok = true
		} else if mmio.DirExists(fp) {
			ok = true
		}
		mark := "OK"
		if !ok {
			mark, allOK = "FAIL", false
		}
		rel, err := filepath.Rel(outDir, fp)
		if err != nil {
			rel = fp
		}
		fmt.Printf(" %-16s %4s  %s\n", label, mark, rel)
	}
	return allOK
}

// printDEMSummary reports the loaded elevation field.
func printDEMSummary(dem *grid.Real) {
	gd := dem.GD
	fmt.Printf("   %s x %s cells (%s valid), cell width %.2f\n",
		mmio.Thousands(int64(gd.Nrow)), mmio.Thousands(int64(gd.Ncol)),
		mmio.Thousands(int64(dem.Nvalid())), gd.CellWidth())
	if zmin, zmax, ok := dem.MinMax(); ok {
		fmt.Printf("   elevation range %.2f to %.2f\n", zmin, zmax)
	}
}
