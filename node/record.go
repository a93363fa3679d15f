package node

import (
	"errors"
	"fmt"
	"math"
)

// ErrMissingAxis indicates a required coordinate axis absent from a record.
var ErrMissingAxis = errors.New("node: axis missing from record")

// DefaultAxes are the coordinate axes assumed when none are named.
var DefaultAxes = []string{"x", "y", "z"}

// Record is a labeled 1D numeric record: an ordered set of (label, value)
// pairs, typically one row of a Frame. Operations that combine two records
// align them by shared labels.
type Record struct {
	labels []string
	values map[string]float64
}

// NewRecord builds a record from parallel label and value slices.
func NewRecord(labels []string, values []float64) (Record, error) {
	if len(labels) != len(values) {
		return Record{}, fmt.Errorf("node: record with %d labels but %d values", len(labels), len(values))
	}
	r := Record{}
	for i, label := range labels {
		r.Set(label, values[i])
	}
	return r, nil
}

// Origin returns the record at the origin of the default x, y, z axes.
func Origin() Record {
	r, _ := NewRecord(DefaultAxes, []float64{0, 0, 0})
	return r
}

// Labels returns the record's labels in insertion order.
func (r Record) Labels() []string { return append([]string(nil), r.labels...) }

// Len returns the number of labeled values.
func (r Record) Len() int { return len(r.labels) }

// Has reports whether the record holds a value for the label.
func (r Record) Has(label string) bool {
	_, ok := r.values[label]
	return ok
}

// Value returns the value for the label and whether it is present.
func (r Record) Value(label string) (float64, bool) {
	v, ok := r.values[label]
	return v, ok
}

// Set stores a value for the label, appending the label when new.
func (r *Record) Set(label string, v float64) {
	if r.values == nil {
		r.values = make(map[string]float64)
	}
	if _, ok := r.values[label]; !ok {
		r.labels = append(r.labels, label)
	}
	r.values[label] = v
}

// DistanceTo returns the Euclidean distance to another record over the named
// coordinate axes; nil axes default to x, y, z. An axis absent from either
// record is an error naming the offending axis.
func (r Record) DistanceTo(other Record, axes []string) (float64, error) {
	if axes == nil {
		axes = DefaultAxes
	}
	var total float64
	for _, axis := range axes {
		a, ok := r.Value(axis)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrMissingAxis, axis)
		}
		b, ok := other.Value(axis)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrMissingAxis, axis)
		}
		d := b - a
		total += d * d
	}
	return math.Sqrt(total), nil
}

// DistanceToOrigin returns the Euclidean distance from the record to the
// origin over the named axes; nil axes default to x, y, z.
func (r Record) DistanceToOrigin(axes []string) (float64, error) {
	return r.DistanceTo(Origin(), axes)
}
