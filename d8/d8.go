// Package d8 derives a drainage network from a gridded elevation field using
// eight-direction (D8) flow routing: single-cell sinks are raised to their
// lowest neighbor, each cell is assigned its steepest downslope octant, flow
// accumulation is summed over the resulting parent-pointer forest, and
// channels are traced downstream from headwater cells.
//
// The sink filler is deliberately bounded (see DefaultFillPasses); deep
// multi-cell depressions may remain partially filled, leaving a structurally
// short network. This is a documented limitation, not corrected for.
package d8

import (
	"math"

	"github.com/aashkann/hecras/grid"
	"github.com/pkg/errors"
)

// Octant codes. The scan order E, SE, S, SW, W, NW, N, NE is an observable
// tie-break policy: on equal slopes the first octant scanned wins.
const (
	East int8 = iota
	SouthEast
	South
	SouthWest
	West
	NorthWest
	North
	NorthEast
)

// Undefined marks a cell with no downslope neighbor (pit, plateau, outlet).
const Undefined int8 = -1

// DefaultFillPasses bounds the sink-filling iteration.
const DefaultFillPasses = 50

var (
	dr = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
	dc = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	// diagonal distance carries the exact constant; a rounded literal biases
	// near-tied octants
	dist = [8]float64{1, math.Sqrt2, 1, math.Sqrt2, 1, math.Sqrt2, 1, math.Sqrt2}
)

// Polyline is a traced channel: map-space vertices ordered head to mouth,
// tagged with a stable id assigned in head-discovery order.
type Polyline struct {
	ID int
	V  [][2]float64
}

// Network is an ordered collection of traced channels plus the source
// coordinate reference, carried through untouched.
type Network struct {
	Lines []Polyline
	Proj  string
}

// IsEmpty reports the explicit no-streams outcome: the threshold excluded
// every cell or no head cell exists. Not an error.
func (n *Network) IsEmpty() bool { return len(n.Lines) == 0 }

// Nvertices returns the total traced vertex count.
func (n *Network) Nvertices() int {
	s := 0
	for _, ln := range n.Lines {
		s += len(ln.V)
	}
	return s
}

// Delineate runs the full fill → direct → accumulate → trace pipeline over
// one elevation grid. threshold is the minimum accumulation, in cells, for a
// cell to carry a stream. An empty network is a valid outcome; errors are
// reserved for unusable input.
func Delineate(dem *grid.Real, threshold float64) (*Network, error) {
	return DelineateCapped(dem, threshold, DefaultFillPasses)
}

// DelineateCapped is Delineate with an explicit sink-fill pass cap.
func DelineateCapped(dem *grid.Real, threshold float64, maxpass int) (*Network, error) {
	if dem == nil || dem.GD == nil {
		return nil, errors.New("d8: nil elevation grid")
	}
	if threshold < 1 {
		return nil, errors.Errorf("d8: threshold must be a positive cell count, got %v", threshold)
	}
	if dem.Nvalid() == 0 {
		return nil, errors.New("d8: elevation grid has no valid cells")
	}
	if maxpass < 1 {
		maxpass = DefaultFillPasses
	}

	filled := FillSinks(dem, maxpass)
	fdir := FlowDirections(filled)
	acc := Accumulate(fdir, dem.GD.Nrow, dem.GD.Ncol)
	lines := TraceStreams(fdir, acc, dem.GD, threshold)

	return &Network{Lines: lines, Proj: dem.GD.Proj}, nil
}
