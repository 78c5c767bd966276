package grid

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/maseology/mmio"
	"github.com/pkg/errors"
)

// ReadASC imports an ESRI ASCII raster. A sidecar .prj (same path, .prj
// extension), when present, is carried verbatim as the opaque CRS.
func ReadASC(fp string) (*Real, error) {
	lns, err := mmio.ReadTextLines(fp)
	if err != nil {
		return nil, errors.Wrapf(err, "ReadASC %s", fp)
	}
	if len(lns) < 7 {
		return nil, errors.Errorf("ReadASC %s: incomplete header", fp)
	}

	stErr := make([]string, 0)
	errfunc := func(v string, err error) {
		stErr = append(stErr, fmt.Sprintf("     failed to read '%v': %v", v, err))
	}

	var nr, nc int
	var xll, yll, cs, nodata float64
	center := false
	nhdr := 0
	for _, ln := range lns {
		flds := strings.Fields(ln)
		if len(flds) != 2 {
			break
		}
		k := strings.ToLower(flds[0])
		if c := k[0]; c == '-' || c == '.' || (c >= '0' && c <= '9') {
			break // first data row
		}
		switch k {
		case "ncols", "nrows":
			n, err := strconv.Atoi(flds[1])
			if err != nil {
				errfunc(k, err)
			}
			if k == "ncols" {
				nc = n
			} else {
				nr = n
			}
		case "xllcorner", "xllcenter", "yllcorner", "yllcenter", "cellsize", "nodata_value":
			f, err := strconv.ParseFloat(flds[1], 64)
			if err != nil {
				errfunc(k, err)
			}
			switch k {
			case "xllcorner":
				xll = f
			case "xllcenter":
				xll, center = f, true
			case "yllcorner":
				yll = f
			case "yllcenter":
				yll, center = f, true
			case "cellsize":
				cs = f
			case "nodata_value":
				nodata = f
			}
		default:
			errfunc(k, errors.New("unknown header key"))
		}
		nhdr++
	}
	if len(stErr) > 0 {
		return nil, errors.Errorf("ReadASC %s:\n%s", fp, strings.Join(stErr, "\n"))
	}
	if nr <= 0 || nc <= 0 || cs <= 0 {
		return nil, errors.Errorf("ReadASC %s: invalid header (nrows %d, ncols %d, cellsize %v)", fp, nr, nc, cs)
	}
	if center { // shift to cell-corner registration
		xll -= cs / 2.
		yll -= cs / 2.
	}

	gd := &Definition{
		Nrow:   nr,
		Ncol:   nc,
		Nodata: nodata,
		TF: Transform{ // north-up: row 0 is the top of the grid
			A: cs, C: xll,
			E: -cs, F: yll + float64(nr)*cs,
		},
	}
	if _, ok := mmio.FileExists(prjPath(fp)); ok {
		if b, err := os.ReadFile(prjPath(fp)); err == nil {
			gd.Proj = strings.TrimSpace(string(b))
		}
	}

	r := &Real{GD: gd, A: make([]float64, gd.Ncells())}
	k := 0
	for _, ln := range lns[nhdr:] {
		for _, s := range strings.Fields(ln) {
			if k >= len(r.A) {
				return nil, errors.Errorf("ReadASC %s: more samples than nrows*ncols", fp)
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "ReadASC %s: cell %d", fp, k)
			}
			r.A[k] = v
			k++
		}
	}
	if k != len(r.A) {
		return nil, errors.Errorf("ReadASC %s: read %d of %d samples", fp, k, len(r.A))
	}
	return r, nil
}

// WriteASC exports an ESRI ASCII raster, writing the CRS (when known) to a
// sidecar .prj. Only north-up, square-cell transforms can be represented.
func WriteASC(fp string, r *Real) error {
	tf := r.GD.TF
	if tf.B != 0 || tf.D != 0 || tf.A != -tf.E {
		return errors.Errorf("WriteASC %s: rotated or non-square transform not supported", fp)
	}
	cs := tf.A
	yll := tf.F - float64(r.GD.Nrow)*cs

	var sb strings.Builder
	fmt.Fprintf(&sb, "ncols %d\n", r.GD.Ncol)
	fmt.Fprintf(&sb, "nrows %d\n", r.GD.Nrow)
	fmt.Fprintf(&sb, "xllcorner %v\n", tf.C)
	fmt.Fprintf(&sb, "yllcorner %v\n", yll)
	fmt.Fprintf(&sb, "cellsize %v\n", cs)
	fmt.Fprintf(&sb, "NODATA_value %v\n", r.GD.Nodata)
	for i := 0; i < r.GD.Nrow; i++ {
		for j := 0; j < r.GD.Ncol; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%v", r.Value(i, j))
		}
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(fp, []byte(sb.String()), 0644); err != nil {
		return errors.Wrapf(err, "WriteASC %s", fp)
	}
	if r.GD.Proj != "" {
		if err := os.WriteFile(prjPath(fp), []byte(r.GD.Proj), 0644); err != nil {
			return errors.Wrapf(err, "WriteASC %s: prj sidecar", fp)
		}
	}
	return nil
}

func prjPath(fp string) string {
	if i := strings.LastIndex(fp, "."); i > 0 {
		return fp[:i] + ".prj"
	}
	return fp + ".prj"
}
