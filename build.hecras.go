package hecras

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/maseology/mmio"
	"github.com/pkg/errors"
)

// shapefile sidecars carried alongside every .shp
var shpSidecars = []string{".shp", ".shx", ".dbf", ".prj", ".cpg"}

// buildHECRAS stages the model-buffer outputs into a folder laid out for
// direct import into HEC-RAS RAS Mapper: the clipped terrain, the study-area
// boundary, the stream centerlines, a standalone projection file and an
// import note.
func buildHECRAS(cs *clipSet, streamFP, outDir string) (string, error) {
	dir := filepath.Join(outDir, "hecras_input")
	mmio.MakeDir(dir)

	if err := copyFile(cs.demFP, filepath.Join(dir, "terrain.asc")); err != nil {
		return "", err
	}
	// .prj sidecar rides along when the source DEM carried one
	srcPrj := strings.TrimSuffix(cs.demFP, ".asc") + ".prj"
	if _, ok := mmio.FileExists(srcPrj); ok {
		if err := copyFile(srcPrj, filepath.Join(dir, "terrain.prj")); err != nil {
			return "", err
		}
		if err := copyFile(srcPrj, filepath.Join(dir, "projection.prj")); err != nil {
			return "", err
		}
	}

	if err := copyShapefile(cs.bufferFP, filepath.Join(dir, "site_buffer.shp")); err != nil {
		return "", err
	}
	if streamFP != "" {
		if err := copyShapefile(streamFP, filepath.Join(dir, "streams.shp")); err != nil {
			return "", err
		}
	}

	note := "HEC-RAS input package\n" +
		"=====================\n\n" +
		"terrain.asc      gridded terrain, ESRI ASCII; import via RAS Mapper > Terrains\n" +
		"projection.prj   coordinate reference for the project (Tools > Set Projection)\n" +
		"site_buffer.shp  study-area boundary\n" +
		"streams.shp      delineated stream centerlines; trace river centerlines against these\n"
	if streamFP == "" {
		note += "\nNo cells reached the stream threshold for this site; streams.shp was not produced.\n"
	}
	if err := os.WriteFile(filepath.Join(dir, "README_HECRAS.txt"), []byte(note), 0644); err != nil {
		return "", errors.Wrap(err, "buildHECRAS")
	}

	fmt.Printf("   HEC-RAS package staged: %s\n", dir)
	return dir, nil
}

// copyShapefile copies a .shp and every sidecar present next to it.
func copyShapefile(src, dst string) error {
	sstem := strings.TrimSuffix(src, ".shp")
	dstem := strings.TrimSuffix(dst, ".shp")
	for _, ext := range shpSidecars {
		if _, ok := mmio.FileExists(sstem + ext); !ok {
			continue
		}
		if err := copyFile(sstem+ext, dstem+ext); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "copy %s", src)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrapf(err, "copy to %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "copy %s to %s", src, dst)
	}
	return errors.Wrapf(out.Close(), "copy to %s", dst)
}
