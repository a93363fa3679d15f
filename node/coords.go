package node

import "sort"

// coordKind discriminates the accepted coordinate-spec forms.
type coordKind int

const (
	coordInvalid coordKind = iota
	coordFlags
	coordNames
	coordMask
)

// CoordSpec declares which columns of a Frame are spatial coordinates. It is
// a tagged union over the three accepted forms: a mapping of column name to
// flag, a list of coordinate column names, or a list of flags positionally
// aligned to the columns. The zero CoordSpec is invalid and rejected at
// construction.
type CoordSpec struct {
	kind  coordKind
	flags map[string]bool
	names []string
	mask  []bool
}

// CoordFlags declares coordinates as a mapping of column name to flag.
// Names absent from the mapping default to false.
func CoordFlags(flags map[string]bool) CoordSpec {
	copied := make(map[string]bool, len(flags))
	for name, flag := range flags {
		copied[name] = flag
	}
	return CoordSpec{kind: coordFlags, flags: copied}
}

// CoordNames declares coordinates as a list of column names; the named
// columns are flagged true and all others false.
func CoordNames(names ...string) CoordSpec {
	return CoordSpec{kind: coordNames, names: append([]string(nil), names...)}
}

// CoordMask declares coordinates as a list of flags positionally aligned to
// the frame's columns. Its length must match the column count exactly.
func CoordMask(mask ...bool) CoordSpec {
	return CoordSpec{kind: coordMask, mask: append([]bool(nil), mask...)}
}

// resolve turns the spec into a full per-column flag mapping against the
// given column list. It returns the final flags together with any coordinate
// names that were not present in the columns; those are appended as new
// columns by the caller rather than silently dropped.
func (c CoordSpec) resolve(columns []string) (map[string]bool, []string, error) {
	known := make(map[string]bool, len(columns))
	for _, col := range columns {
		known[col] = true
	}

	flags := make(map[string]bool, len(columns))
	for _, col := range columns {
		flags[col] = false
	}

	var missing []string
	switch c.kind {
	case coordFlags:
		if len(c.flags) > len(columns) {
			return nil, nil, ErrTooManyCoords
		}
		// Deterministic order for appended columns.
		for _, name := range sortedKeys(c.flags) {
			if !known[name] {
				missing = append(missing, name)
			}
			flags[name] = c.flags[name]
		}
	case coordNames:
		for _, name := range c.names {
			if !known[name] {
				missing = append(missing, name)
			}
			flags[name] = true
		}
	case coordMask:
		if len(c.mask) != len(columns) {
			return nil, nil, ErrMaskLength
		}
		for i, col := range columns {
			flags[col] = c.mask[i]
		}
	default:
		return nil, nil, ErrCoordSpec
	}

	anyCoord := false
	for _, flag := range flags {
		if flag {
			anyCoord = true
			break
		}
	}
	if !anyCoord {
		return nil, nil, ErrNoCoords
	}
	return flags, missing, nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
