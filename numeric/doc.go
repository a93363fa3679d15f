// Package numeric provides pure vector helpers over float64 slices: unit
// normalization, Euclidean distance, successive deltas, and order-preserving
// deduplication.
package numeric
