package node

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Schema errors surfaced at Frame construction.
var (
	// ErrNoColumns indicates the input table named no columns at all.
	ErrNoColumns = errors.New("node: at least one column must be named")
	// ErrNoCoords indicates no column ended up flagged as a coordinate.
	ErrNoCoords = errors.New("node: at least one column must be a coordinate")
	// ErrTooManyCoords indicates more coordinate flags than columns.
	ErrTooManyCoords = errors.New("node: cannot have more coordinates than named columns")
	// ErrMaskLength indicates a positional coordinate mask whose length does
	// not match the column count.
	ErrMaskLength = errors.New("node: length of coordinate mask must match number of columns")
	// ErrCoordSpec indicates a coordinate spec that is none of the accepted
	// forms.
	ErrCoordSpec = errors.New("node: coords must be one of CoordFlags, CoordNames or CoordMask")
)

// Frame is a table of point-like nodes: an owned dataframe plus sibling
// metadata declaring which columns are spatial coordinates, optional
// per-column units, and a per-row adjacency list. The metadata lives beside
// the table, never inside its rows.
//
// A Frame is constructed once with a fixed schema and treated as immutable
// afterwards; the adjacency lists are the only state expected to change via
// Connect. Callers must not mutate a Frame concurrently with a search over
// it.
type Frame struct {
	df          dataframe.DataFrame
	columns     []string
	coords      map[string]bool
	units       map[string]string
	connections [][]int
}

// Option configures optional Frame metadata.
type Option func(*options)

type options struct {
	units      map[string]string
	unitList   []string
	hasUnits   bool
	hasUnitLst bool
}

// WithUnits attaches a unit label per column name. Entries for unknown
// columns are dropped; units degrade to absent rather than failing
// construction.
func WithUnits(units map[string]string) Option {
	return func(o *options) {
		o.units = units
		o.hasUnits = true
	}
}

// WithUnitList attaches unit labels positionally aligned to the columns. A
// list whose length does not match the column count degrades to no units.
func WithUnitList(units ...string) Option {
	return func(o *options) {
		o.unitList = append([]string(nil), units...)
		o.hasUnitLst = true
	}
}

// New builds a Frame around an existing dataframe. Column order is taken
// from the dataframe. Coordinate names not present in the columns are
// appended as NaN-filled float columns rather than silently dropped.
func New(df dataframe.DataFrame, coords CoordSpec, opts ...Option) (*Frame, error) {
	if df.Error() != nil {
		return nil, fmt.Errorf("node: invalid dataframe: %w", df.Error())
	}
	if df.Ncol() == 0 {
		return nil, ErrNoColumns
	}
	return build(df, coords, opts)
}

// FromColumns builds a Frame from an ordered mapping of column name to
// values. All columns share the same length.
func FromColumns(names []string, cols [][]float64, coords CoordSpec, opts ...Option) (*Frame, error) {
	if len(names) == 0 {
		return nil, ErrNoColumns
	}
	if len(cols) != len(names) {
		return nil, fmt.Errorf("node: %d columns named but %d value slices given", len(names), len(cols))
	}
	ss := make([]series.Series, len(names))
	for i, name := range names {
		ss[i] = series.New(cols[i], series.Float, name)
	}
	df := dataframe.New(ss...)
	if df.Error() != nil {
		return nil, fmt.Errorf("node: invalid columns: %w", df.Error())
	}
	return build(df, coords, opts)
}

func build(df dataframe.DataFrame, coords CoordSpec, opts []Option) (*Frame, error) {
	columns := df.Names()

	flags, missing, err := coords.resolve(columns)
	if err != nil {
		return nil, err
	}

	// Appended coordinates exist but hold NaN until populated, so any
	// distance touching them is visibly poisoned rather than silently wrong.
	for _, name := range missing {
		nan := make([]float64, df.Nrow())
		for i := range nan {
			nan[i] = math.NaN()
		}
		df = df.Mutate(series.New(nan, series.Float, name))
		if df.Error() != nil {
			return nil, fmt.Errorf("node: appending coordinate column %q: %w", name, df.Error())
		}
		columns = append(columns, name)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Frame{
		df:          df,
		columns:     columns,
		coords:      flags,
		units:       resolveUnits(columns, o),
		connections: make([][]int, df.Nrow()),
	}, nil
}

// resolveUnits applies the degrade-to-absent unit policy: unknown mapping
// keys are dropped and a positional list of the wrong length yields no units.
func resolveUnits(columns []string, o options) map[string]string {
	units := make(map[string]string)
	switch {
	case o.hasUnits:
		known := make(map[string]bool, len(columns))
		for _, col := range columns {
			known[col] = true
		}
		for name, unit := range o.units {
			if known[name] {
				units[name] = unit
			}
		}
	case o.hasUnitLst:
		if len(o.unitList) != len(columns) {
			return units
		}
		for i, col := range columns {
			units[col] = o.unitList[i]
		}
	}
	return units
}

// Data returns the underlying dataframe. The dataframe API never mutates its
// receiver, so the returned value may be shared freely.
func (f *Frame) Data() dataframe.DataFrame { return f.df }

// Columns returns the column names in declaration order.
func (f *Frame) Columns() []string { return append([]string(nil), f.columns...) }

// NumRows returns the number of node rows.
func (f *Frame) NumRows() int { return f.df.Nrow() }

// Coords returns the per-column coordinate flags.
func (f *Frame) Coords() map[string]bool {
	flags := make(map[string]bool, len(f.coords))
	for name, flag := range f.coords {
		flags[name] = flag
	}
	return flags
}

// CoordNames returns the coordinate column names in column order.
func (f *Frame) CoordNames() []string {
	var names []string
	for _, col := range f.columns {
		if f.coords[col] {
			names = append(names, col)
		}
	}
	return names
}

// Units returns the per-column unit labels; columns without units are
// absent.
func (f *Frame) Units() map[string]string {
	units := make(map[string]string, len(f.units))
	for name, unit := range f.units {
		units[name] = unit
	}
	return units
}

// Unit returns the unit label for a column, if any.
func (f *Frame) Unit(column string) (string, bool) {
	unit, ok := f.units[column]
	return unit, ok
}

// Connect records connections from row i to the given rows. Repeated targets
// are kept once, preserving first-occurrence order.
func (f *Frame) Connect(i int, targets ...int) error {
	if err := f.checkRow(i); err != nil {
		return err
	}
	for _, j := range targets {
		if err := f.checkRow(j); err != nil {
			return err
		}
	}
	existing := f.connections[i]
	seen := make(map[int]bool, len(existing)+len(targets))
	for _, j := range existing {
		seen[j] = true
	}
	for _, j := range targets {
		if !seen[j] {
			seen[j] = true
			existing = append(existing, j)
		}
	}
	f.connections[i] = existing
	return nil
}

// Connections returns the rows connected to row i; empty when none were
// recorded.
func (f *Frame) Connections(i int) ([]int, error) {
	if err := f.checkRow(i); err != nil {
		return nil, err
	}
	return append([]int(nil), f.connections[i]...), nil
}

func (f *Frame) checkRow(i int) error {
	if i < 0 || i >= f.df.Nrow() {
		return fmt.Errorf("node: row %d out of range [0, %d)", i, f.df.Nrow())
	}
	return nil
}

// Filter selects the rows satisfying the conjunction of the given
// per-column predicates, delegating the boolean masking to the dataframe.
func (f *Frame) Filter(filters ...dataframe.F) (dataframe.DataFrame, error) {
	out := f.df.FilterAggregation(dataframe.And, filters...)
	if out.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("node: filter: %w", out.Error())
	}
	return out, nil
}

// Row returns the numeric fields of row i as a labeled Record, preserving
// column order. Non-numeric columns are skipped.
func (f *Frame) Row(i int) (Record, error) {
	if err := f.checkRow(i); err != nil {
		return Record{}, err
	}
	types := f.df.Types()
	names := f.df.Names()
	var labels []string
	var values []float64
	for j, name := range names {
		switch types[j] {
		case series.Float, series.Int:
			labels = append(labels, name)
			values = append(values, f.df.Elem(i, j).Float())
		}
	}
	rec, err := NewRecord(labels, values)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}
