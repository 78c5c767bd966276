package grid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformRoundTrip(t *testing.T) {
	tf := Transform{A: 10, C: 500000, E: -10, F: 4200000}

	x, y := tf.Apply(3, 2)
	assert.Equal(t, 500030., x)
	assert.Equal(t, 4199980., y)

	col, row := tf.Index(x, y)
	assert.InDelta(t, 3., col, 1e-9)
	assert.InDelta(t, 2., row, 1e-9)

	cx, cy := tf.CellCentroid(0, 0)
	assert.Equal(t, 500005., cx)
	assert.Equal(t, 4199995., cy)
}

func TestDefinitionGeometry(t *testing.T) {
	gd := &Definition{
		Nrow: 4, Ncol: 3, Nodata: -9999.,
		TF: Transform{A: 2, C: 100, E: -2, F: 208},
	}
	assert.Equal(t, 12, gd.Ncells())
	assert.Equal(t, 2., gd.CellWidth())
	assert.Equal(t, 4., gd.CellArea())

	cid := gd.CellID(2, 1)
	r, c := gd.RowCol(cid)
	assert.Equal(t, 2, r)
	assert.Equal(t, 1, c)

	xmin, ymin, xmax, ymax := gd.Extent()
	assert.Equal(t, 100., xmin)
	assert.Equal(t, 200., ymin)
	assert.Equal(t, 106., xmax)
	assert.Equal(t, 208., ymax)
}

func TestASCRoundTrip(t *testing.T) {
	gd := &Definition{
		Nrow: 3, Ncol: 4, Nodata: -9999.,
		Proj: `PROJCS["test"]`,
		TF:   Transform{A: 5, C: 1000, E: -5, F: 2015},
	}
	r := NewReal(gd)
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			r.Set(i, j, float64(i*10+j))
		}
	}
	r.Set(1, 2, gd.Nodata)

	fp := filepath.Join(t.TempDir(), "dem.asc")
	require.NoError(t, WriteASC(fp, r))

	got, err := ReadASC(fp)
	require.NoError(t, err)
	assert.Equal(t, gd.Nrow, got.GD.Nrow)
	assert.Equal(t, gd.Ncol, got.GD.Ncol)
	assert.Equal(t, gd.Nodata, got.GD.Nodata)
	assert.Equal(t, gd.TF, got.GD.TF)
	assert.Equal(t, gd.Proj, got.GD.Proj, "prj sidecar carried through")
	assert.Equal(t, r.A, got.A)
}

func TestReadASCCenterRegistration(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "c.asc")
	body := "ncols 2\nnrows 2\nxllcenter 10\nyllcenter 20\ncellsize 4\nNODATA_value -1\n1 2\n3 4\n"
	require.NoError(t, os.WriteFile(fp, []byte(body), 0644))

	r, err := ReadASC(fp)
	require.NoError(t, err)
	// center registration shifts the corner back a half cell
	assert.Equal(t, 8., r.GD.TF.C)
	assert.Equal(t, 26., r.GD.TF.F)
	assert.Equal(t, []float64{1, 2, 3, 4}, r.A)
}

func TestReadASCRejectsShortData(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "bad.asc")
	body := "ncols 3\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\nNODATA_value -1\n1 2 3\n4 5\n"
	require.NoError(t, os.WriteFile(fp, []byte(body), 0644))
	_, err := ReadASC(fp)
	assert.Error(t, err)
}

func TestWriteASCRejectsRotated(t *testing.T) {
	gd := &Definition{
		Nrow: 2, Ncol: 2, Nodata: -1,
		TF: Transform{A: 1, B: .1, E: -1},
	}
	err := WriteASC(filepath.Join(t.TempDir(), "rot.asc"), NewReal(gd))
	assert.Error(t, err)
}

func TestRealStats(t *testing.T) {
	gd := &Definition{Nrow: 2, Ncol: 2, Nodata: -9999., TF: Transform{A: 1, E: -1, F: 2}}
	r := NewReal(gd)
	assert.Equal(t, 0, r.Nvalid())
	_, _, ok := r.MinMax()
	assert.False(t, ok)

	r.Set(0, 0, 5.)
	r.Set(1, 1, -2.)
	assert.Equal(t, 2, r.Nvalid())
	zmin, zmax, ok := r.MinMax()
	require.True(t, ok)
	assert.Equal(t, -2., zmin)
	assert.Equal(t, 5., zmax)

	cp := r.Copy()
	cp.Set(0, 0, 99.)
	assert.Equal(t, 5., r.Value(0, 0))
}
