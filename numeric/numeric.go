package numeric

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// UnitNorm normalizes each row of a rectangular batch to unit Euclidean
// length and returns a new batch; the input is not modified. A ragged batch
// is an error. A zero-length row divides through to NaN; that is not
// special-cased.
func UnitNorm(rows [][]float64) ([][]float64, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("numeric: ragged batch: row %d has %d values, want %d", i, len(row), width)
		}
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = UnitNormVector(row)
	}
	return out, nil
}

// UnitNormVector normalizes a single vector to unit Euclidean length,
// returning a new slice. A zero vector yields NaN components.
func UnitNormVector(v []float64) []float64 {
	dst := make([]float64, len(v))
	copy(dst, v)
	floats.Scale(1/floats.Norm(dst, 2), dst)
	return dst
}

// Dist returns the Euclidean distance between two sequences. When the
// lengths differ the computation silently truncates to the shorter sequence;
// that is deliberate, documented behavior, not an error.
func Dist(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return floats.Distance(a[:n], b[:n], 2)
}

// Deltas returns the n-1 successive differences between adjacent elements of
// an ordered sequence. Sequences shorter than two elements yield an empty
// result.
func Deltas(xs []float64) []float64 {
	if len(xs) < 2 {
		return nil
	}
	out := make([]float64, len(xs)-1)
	for i := 1; i < len(xs); i++ {
		out[i-1] = xs[i] - xs[i-1]
	}
	return out
}

// Dedupe returns a new slice holding each distinct element of xs exactly
// once, in first-occurrence order. The input is not modified.
func Dedupe[T comparable](xs []T) []T {
	seen := make(map[T]struct{}, len(xs))
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	return out
}
