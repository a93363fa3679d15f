package store

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodeValues encodes a slice of float64 values into a BLOB representation
// suitable for storage in SQLite: a little-endian sequence of IEEE 754
// float64 values without a length prefix; the length is derived from the
// BLOB size on decode. float64 is kept end to end so a saved frame
// round-trips losslessly.
func EncodeValues(vals []float64) ([]byte, error) {
	if len(vals) == 0 {
		return nil, nil
	}
	b := make([]byte, len(vals)*8)
	for i, v := range vals {
		binary.LittleEndian.PutUint64(b[i*8:], math.Float64bits(v))
	}
	return b, nil
}

// DecodeValues decodes a BLOB produced by EncodeValues back into a slice of
// float64 values.
func DecodeValues(b []byte) ([]float64, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("store: invalid values blob length %d (not multiple of 8)", len(b))
	}
	n := len(b) / 8
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		vals[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return vals, nil
}
