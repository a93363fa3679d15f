package knn

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/floats"

	"github.com/Badg/phynum/node"
)

// bucketSlop is the safety factor between the requested k and the candidate
// count the cube pre-filter must reach. The cube bounds a Chebyshev-style
// box, not a sphere, so k candidates alone would not guarantee the true
// k-nearest set.
const bucketSlop = 2

// Search is hardcoded to the x, y, z coordinate axes; frames without those
// three columns are rejected.
var axes = [3]string{"x", "y", "z"}

// Point is a 3-axis query location.
type Point struct {
	X, Y, Z float64
}

// Result holds the k nearest rows in ascending-distance order. Indices are
// row positions in the searched frame; Rows preserves all original columns.
type Result struct {
	Rows      dataframe.DataFrame
	Indices   []int
	Distances []float64
}

// Search returns the k rows of the frame closest to the query point by
// Euclidean distance, ordered ascending. A k larger than the table returns
// all rows sorted by distance rather than failing.
//
// When scaleLength is positive it is treated as the characteristic spacing
// between nodes: the search first restricts itself to a cube of half-width
// k*scaleLength/2 around the query, doubling the half-width until the cube
// holds at least 2k candidates or covers the whole table. This keeps the
// scanned set small for large tables; a non-positive scaleLength scans the
// entire frame.
func Search(f *node.Frame, k int, query Point, scaleLength float64) (Result, error) {
	if f == nil {
		return Result{}, fmt.Errorf("knn: nil frame")
	}
	if k <= 0 {
		return Result{}, fmt.Errorf("knn: k must be positive, got %d", k)
	}

	df := f.Data()
	coords := make([][]float64, len(axes))
	for i, axis := range axes {
		col := df.Col(axis)
		if col.Err != nil {
			return Result{}, fmt.Errorf("knn: frame has no %q coordinate column", axis)
		}
		coords[i] = col.Float()
	}
	xs, ys, zs := coords[0], coords[1], coords[2]
	n := len(xs)

	var candidates []int
	if scaleLength > 0 {
		// A row with a NaN or Inf offset on any axis can never satisfy the
		// cube predicate no matter how far h grows, so the loop bounds
		// itself by the reachable rows, not the table size. Appended
		// coordinate columns hold NaN until populated and would otherwise
		// keep the bucket growing forever.
		reachable := 0
		for i := 0; i < n; i++ {
			if finite(xs[i]-query.X) && finite(ys[i]-query.Y) && finite(zs[i]-query.Z) {
				reachable++
			}
		}
		h := float64(k) * scaleLength / 2
		for {
			candidates = candidates[:0]
			for i := 0; i < n; i++ {
				dx := xs[i] - query.X
				dy := ys[i] - query.Y
				dz := zs[i] - query.Z
				if dx > -h && dx < h && dy > -h && dy < h && dz > -h && dz < h {
					candidates = append(candidates, i)
				}
			}
			// Stop once the bucket is generous enough, or once it already
			// holds every row it could ever hold.
			if len(candidates) >= bucketSlop*k || len(candidates) == reachable {
				break
			}
			h *= 2
		}
	} else {
		candidates = make([]int, n)
		for i := range candidates {
			candidates[i] = i
		}
	}

	q := []float64{query.X, query.Y, query.Z}
	p := make([]float64, 3)
	dists := make([]float64, len(candidates))
	for ci, i := range candidates {
		p[0], p[1], p[2] = xs[i], ys[i], zs[i]
		dists[ci] = floats.Distance(p, q, 2)
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return dists[order[a]] < dists[order[b]] })

	if k > len(order) {
		k = len(order)
	}
	indices := make([]int, k)
	distances := make([]float64, k)
	for i := 0; i < k; i++ {
		indices[i] = candidates[order[i]]
		distances[i] = dists[order[i]]
	}

	rows := df.Subset(indices)
	if rows.Error() != nil {
		return Result{}, fmt.Errorf("knn: selecting result rows: %w", rows.Error())
	}
	return Result{Rows: rows, Indices: indices, Distances: distances}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
