package knn

import (
	"math"
	"strings"
	"testing"

	"github.com/Badg/phynum/node"
)

func lineFrame(t *testing.T, xs []float64) *node.Frame {
	t.Helper()
	ys := make([]float64, len(xs))
	zs := make([]float64, len(xs))
	f, err := node.FromColumns(
		[]string{"x", "y", "z"},
		[][]float64{xs, ys, zs},
		node.CoordNames("x", "y", "z"),
	)
	if err != nil {
		t.Fatalf("FromColumns failed: %v", err)
	}
	return f
}

func TestSearchNearest(t *testing.T) {
	f := lineFrame(t, []float64{0, 1, 5})

	res, err := Search(f, 2, Point{}, 0)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(res.Indices) != 2 || res.Indices[0] != 0 || res.Indices[1] != 1 {
		t.Fatalf("Indices = %v, want [0 1]", res.Indices)
	}
	if res.Distances[0] != 0 || res.Distances[1] != 1 {
		t.Fatalf("Distances = %v, want [0 1]", res.Distances)
	}
	if res.Rows.Nrow() != 2 {
		t.Fatalf("Rows.Nrow() = %d, want 2", res.Rows.Nrow())
	}
}

func TestSearchKExceedsRows(t *testing.T) {
	f := lineFrame(t, []float64{5, 0, 1})

	res, err := Search(f, 10, Point{}, 0)
	if err != nil {
		t.Fatalf("Search with k > rows failed: %v", err)
	}
	if len(res.Indices) != 3 {
		t.Fatalf("len(Indices) = %d, want 3 (capped at table size)", len(res.Indices))
	}
	// All rows, ascending by distance.
	want := []int{1, 2, 0}
	for i := range want {
		if res.Indices[i] != want[i] {
			t.Fatalf("Indices = %v, want %v", res.Indices, want)
		}
	}
}

func TestSearchBucketed(t *testing.T) {
	xs := make([]float64, 50)
	for i := range xs {
		xs[i] = float64(i)
	}
	f := lineFrame(t, xs)

	res, err := Search(f, 2, Point{}, 1)
	if err != nil {
		t.Fatalf("Search with scale length failed: %v", err)
	}
	if len(res.Indices) != 2 || res.Indices[0] != 0 || res.Indices[1] != 1 {
		t.Fatalf("Indices = %v, want [0 1]", res.Indices)
	}

	// Query from the far end of the line.
	res, err = Search(f, 3, Point{X: 49}, 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	want := []int{49, 48, 47}
	for i := range want {
		if res.Indices[i] != want[i] {
			t.Fatalf("Indices = %v, want %v", res.Indices, want)
		}
	}
}

func TestSearchBucketGrowsOnSparseTable(t *testing.T) {
	// Initial half-width k*L/2 = 1 misses everything but the origin; the
	// bucket must double until it holds a generous candidate set.
	f := lineFrame(t, []float64{0, 40, 80, 120})

	res, err := Search(f, 2, Point{}, 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(res.Indices) != 2 || res.Indices[0] != 0 || res.Indices[1] != 1 {
		t.Fatalf("Indices = %v, want [0 1]", res.Indices)
	}
}

func TestSearchScaleOnSmallTable(t *testing.T) {
	// 2k exceeds the table size; the bucket loop must terminate once it
	// covers the whole table and return everything sorted.
	f := lineFrame(t, []float64{3, 1, 2})

	res, err := Search(f, 2, Point{}, 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(res.Indices) != 2 || res.Indices[0] != 1 || res.Indices[1] != 2 {
		t.Fatalf("Indices = %v, want [1 2]", res.Indices)
	}
}

func TestSearchBucketTerminatesOnNaNRows(t *testing.T) {
	// A NaN coordinate keeps its row outside the cube at every half-width,
	// so the bucket loop must not wait for it before giving up on growing.
	f, err := node.FromColumns(
		[]string{"x", "y", "z"},
		[][]float64{{0, 1, 5, 2}, {0, 0, 0, 0}, {0, 0, 0, math.NaN()}},
		node.CoordNames("x", "y", "z"),
	)
	if err != nil {
		t.Fatalf("FromColumns failed: %v", err)
	}

	res, err := Search(f, 2, Point{}, 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(res.Indices) != 2 || res.Indices[0] != 0 || res.Indices[1] != 1 {
		t.Fatalf("Indices = %v, want [0 1]", res.Indices)
	}
}

func TestSearchBucketTerminatesOnAppendedCoordinate(t *testing.T) {
	// An appended coordinate column is NaN on every row; a bucketed search
	// over such a frame must return empty rather than grow forever.
	f, err := node.FromColumns(
		[]string{"x", "y"},
		[][]float64{{0, 1, 2}, {0, 0, 0}},
		node.CoordNames("x", "y", "z"),
	)
	if err != nil {
		t.Fatalf("FromColumns failed: %v", err)
	}

	res, err := Search(f, 2, Point{}, 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(res.Indices) != 0 {
		t.Fatalf("Indices = %v, want empty (no row has finite coordinates)", res.Indices)
	}
}

func TestSearchPreservesColumns(t *testing.T) {
	f, err := node.FromColumns(
		[]string{"x", "y", "z", "mass"},
		[][]float64{{0, 1}, {0, 0}, {0, 0}, {10, 20}},
		node.CoordNames("x", "y", "z"),
	)
	if err != nil {
		t.Fatalf("FromColumns failed: %v", err)
	}

	res, err := Search(f, 1, Point{X: 0.9}, 0)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if got := res.Rows.Ncol(); got != 4 {
		t.Fatalf("Rows.Ncol() = %d, want 4 (all original columns)", got)
	}
	if got := res.Rows.Col("mass").Float()[0]; got != 20 {
		t.Fatalf("mass of nearest row = %v, want 20", got)
	}
}

func TestSearchMissingAxis(t *testing.T) {
	f, err := node.FromColumns(
		[]string{"x", "y"},
		[][]float64{{0}, {0}},
		node.CoordNames("x", "y"),
	)
	if err != nil {
		t.Fatalf("FromColumns failed: %v", err)
	}

	_, err = Search(f, 1, Point{}, 0)
	if err == nil || !strings.Contains(err.Error(), `"z"`) {
		t.Fatalf("Search without z column: err = %v, want error naming z", err)
	}
}

func TestSearchInvalidK(t *testing.T) {
	f := lineFrame(t, []float64{0})
	if _, err := Search(f, 0, Point{}, 0); err == nil {
		t.Fatal("Search with k = 0 succeeded, want error")
	}
	if _, err := Search(nil, 1, Point{}, 0); err == nil {
		t.Fatal("Search with nil frame succeeded, want error")
	}
}
