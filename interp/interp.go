package interp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/Badg/phynum/node"
)

// ErrDegenerateAxis indicates both records share the same value on the
// interpolation axis, leaving the interpolation parameter undefined.
var ErrDegenerateAxis = errors.New("interp: records coincide on interpolation axis")

// Linterp linearly interpolates between records a and b along the named
// axis, evaluated at target. Every other label shared by both records is
// interpolated independently; labels in ignore are skipped, as is the axis
// itself. Both records must carry the axis. Records that coincide on the
// axis make the interpolation degenerate and return ErrDegenerateAxis
// rather than silently producing non-finite values.
func Linterp(a, b node.Record, axis string, target float64, ignore []string) (node.Record, error) {
	ax, ok := a.Value(axis)
	if !ok {
		return node.Record{}, fmt.Errorf("interp: %w: %q", node.ErrMissingAxis, axis)
	}
	bx, ok := b.Value(axis)
	if !ok {
		return node.Record{}, fmt.Errorf("interp: %w: %q", node.ErrMissingAxis, axis)
	}
	if ax == bx {
		return node.Record{}, fmt.Errorf("%w: %q = %v", ErrDegenerateAxis, axis, ax)
	}

	skip := make(map[string]bool, len(ignore)+1)
	skip[axis] = true
	for _, label := range ignore {
		skip[label] = true
	}

	t := (target - ax) / (bx - ax)
	var out node.Record
	for _, label := range a.Labels() {
		if skip[label] {
			continue
		}
		bv, ok := b.Value(label)
		if !ok {
			continue
		}
		av, _ := a.Value(label)
		out.Set(label, av+t*(bv-av))
	}
	return out, nil
}

// CubicWeights assigns each distance a weight proportional to
// (closest/d)^3, normalized so the weights sum to one. Zero distances would
// produce infinite raw weights; they are assigned weight zero instead, with
// the reference minimum taken over the positive distances. All-zero input
// yields all-zero weights.
func CubicWeights(dists []float64) []float64 {
	out := make([]float64, len(dists))
	closest := math.Inf(1)
	for _, d := range dists {
		if d > 0 && d < closest {
			closest = d
		}
	}
	if math.IsInf(closest, 1) {
		return out
	}
	for i, d := range dists {
		if d <= 0 {
			continue
		}
		w := closest / d
		out[i] = w * w * w
	}
	sum := floats.Sum(out)
	if sum == 0 {
		return out
	}
	floats.Scale(1/sum, out)
	return out
}
