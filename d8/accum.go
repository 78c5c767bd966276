package d8

import "fmt"

// Accumulate counts, for every cell, the number of cells (itself included)
// whose directed flow path terminates at it. The direction grid induces a
// parent-pointer forest — one outgoing edge per cell at most — so the count
// is a single topological pass: cells become eligible once all inflows have
// been summed (Kahn in-degree tracking), headwater cells immediately.
//
// Strict descent in FlowDirections makes a cycle structurally impossible; a
// cell that never becomes eligible is an internal inconsistency and panics.
func Accumulate(fdir []int8, nrow, ncol int) []float64 {
	n := nrow * ncol
	if len(fdir) != n {
		panic(fmt.Sprintf("d8 accumulate: direction grid size %d, expected %d", len(fdir), n))
	}

	// downslope target index per cell, -1 at outlets
	trg := make([]int, n)
	indeg := make([]int, n)
	for i := 0; i < n; i++ {
		trg[i] = -1
		if fdir[i] < 0 {
			continue
		}
		r, c := i/ncol, i%ncol
		rn, cn := r+dr[fdir[i]], c+dc[fdir[i]]
		if rn < 0 || rn >= nrow || cn < 0 || cn >= ncol {
			continue
		}
		trg[i] = rn*ncol + cn
	}
	for _, t := range trg {
		if t >= 0 {
			indeg[t]++
		}
	}

	acc := make([]float64, n)
	q := make([]int, 0, n)
	for i := 0; i < n; i++ {
		acc[i] = 1.
		if indeg[i] == 0 {
			q = append(q, i)
		}
	}

	nproc := 0
	for len(q) > 0 {
		i := q[len(q)-1]
		q = q[:len(q)-1]
		nproc++
		if t := trg[i]; t >= 0 {
			acc[t] += acc[i]
			if indeg[t]--; indeg[t] == 0 {
				q = append(q, t)
			}
		}
	}
	if nproc != n {
		panic(fmt.Sprintf("d8 accumulate: %d of %d cells never became eligible (cyclic drainage)", n-nproc, n))
	}
	return acc
}
