package hecras

import (
	"strconv"
	"strings"

	"github.com/im7mortal/UTM"
	"github.com/maseology/mmio"
	"github.com/pkg/errors"
)

// ReadCoordinates reads the site coordinate from the first line of a
// coordinate file, formatted "lat, lon" in WGS84.
func ReadCoordinates(fp string) (lat, lon float64, err error) {
	lns, err := mmio.ReadTextLines(fp)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "ReadCoordinates %s", fp)
	}
	if len(lns) == 0 {
		return 0, 0, errors.Errorf("ReadCoordinates %s: empty file", fp)
	}
	parts := strings.Split(strings.TrimSpace(lns[0]), ",")
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("ReadCoordinates %s: expected 'lat, lon', got %q", fp, lns[0])
	}
	if lat, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, errors.Wrapf(err, "ReadCoordinates %s: latitude", fp)
	}
	if lon, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, errors.Wrapf(err, "ReadCoordinates %s: longitude", fp)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, errors.Errorf("ReadCoordinates %s: %v, %v out of range", fp, lat, lon)
	}
	return lat, lon, nil
}

// ProjectSite converts the WGS84 site coordinate to UTM easting/northing,
// matching the projected coordinate reference DEMs in this workflow carry.
func ProjectSite(lat, lon float64) (x, y float64, err error) {
	e, n, _, _, err := UTM.FromLatLon(lat, lon, lat >= 0)
	if err != nil {
		return 0, 0, errors.Wrap(err, "ProjectSite")
	}
	return e, n, nil
}
