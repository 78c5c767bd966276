package hecras

import (
	"fmt"
	"path/filepath"

	"github.com/aashkann/hecras/d8"
	"github.com/aashkann/hecras/grid"
	"github.com/aashkann/hecras/vector"
)

// buildStreams delineates the channel network over the clipped DEM and writes
// it as a polyline shapefile. An empty network writes no file; the caller
// gets the network back either way for reporting.
func buildStreams(dem *grid.Real, threshold float64, maxpass int, outDir string) (*d8.Network, string, error) {
	net, err := d8.DelineateCapped(dem, threshold, maxpass)
	if err != nil {
		return nil, "", err
	}
	if net.IsEmpty() {
		fmt.Printf("   no cells reach the accumulation threshold (%.0f); no streams written\n", threshold)
		return net, "", nil
	}

	fp := filepath.Join(outDir, "streams.shp")
	if err := vector.WriteStreams(fp, net); err != nil {
		return nil, "", err
	}
	fmt.Printf("   streams written: %s (%d lines, %d vertices)\n", fp, len(net.Lines), net.Nvertices())
	return net, fp, nil
}
