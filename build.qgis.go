package hecras

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// qgsProject is the skeleton of a QGIS project file: a CRS block, the layer
// registry and a matching layer tree. QGIS fills in rendering state on first
// open.
type qgsProject struct {
	XMLName     xml.Name      `xml:"qgis"`
	ProjectName string        `xml:"projectname,attr"`
	Version     string        `xml:"version,attr"`
	Crs         qgsCrs        `xml:"projectCrs"`
	LayerTree   qgsLayerTree  `xml:"layer-tree-group"`
	Layers      []qgsMapLayer `xml:"projectlayers>maplayer"`
}

type qgsCrs struct {
	Wkt string `xml:"spatialrefsys>wkt"`
}

type qgsLayerTree struct {
	Layers []qgsTreeLayer `xml:"layer-tree-layer"`
}

type qgsTreeLayer struct {
	ID      string `xml:"id,attr"`
	Name    string `xml:"name,attr"`
	Checked string `xml:"checked,attr"`
}

type qgsMapLayer struct {
	Type       string `xml:"type,attr"`
	ID         string `xml:"id"`
	DataSource string `xml:"datasource"`
	LayerName  string `xml:"layername"`
	Provider   string `xml:"provider"`
}

// buildQGIS writes a .qgs project referencing the visualization-buffer
// outputs by relative path, vectors above the terrain raster.
func buildQGIS(cs *clipSet, streamFP, contourFP, outDir, name string) (string, error) {
	fp := filepath.Join(outDir, name+".qgs")

	var p qgsProject
	p.ProjectName = name
	p.Version = "3.28.0"
	p.Crs.Wkt = cs.dem.GD.Proj

	add := func(src, layerType, provider string) {
		rel, err := filepath.Rel(outDir, src)
		if err != nil {
			rel = src
		}
		stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		id := stem + "_layer"
		p.Layers = append(p.Layers, qgsMapLayer{
			Type: layerType, ID: id, DataSource: "./" + filepath.ToSlash(rel),
			LayerName: stem, Provider: provider,
		})
		p.LayerTree.Layers = append(p.LayerTree.Layers, qgsTreeLayer{ID: id, Name: stem, Checked: "Qt::Checked"})
	}

	// tree order is draw order: vectors first, terrain underneath
	if streamFP != "" {
		add(streamFP, "vector", "ogr")
	}
	if contourFP != "" {
		add(contourFP, "vector", "ogr")
	}
	add(cs.bufferFP, "vector", "ogr")
	for _, lfp := range cs.layerFPs {
		add(lfp, "vector", "ogr")
	}
	add(cs.demFP, "raster", "gdal")

	b, err := xml.MarshalIndent(&p, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "buildQGIS")
	}
	doc := append([]byte(xml.Header), b...)
	if err := os.WriteFile(fp, append(doc, '\n'), 0644); err != nil {
		return "", errors.Wrap(err, "buildQGIS")
	}
	fmt.Printf("   QGIS project written: %s (%d layers)\n", fp, len(p.Layers))
	return fp, nil
}
