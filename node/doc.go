// Package node provides a tabular representation of point-like nodes. A
// Frame wraps a gota dataframe and tags a subset of its columns as spatial
// coordinates, attaches optional per-column units, and keeps a per-row
// adjacency list for connections between nodes. It includes:
//   - Frame construction with coordinate-spec and unit validation
//   - Record: a labeled 1D numeric view of a single row
//   - Distance between labeled records over named coordinate axes
package node
