// Package knn implements nearest-neighbour search over a node frame using a
// bounding-box pre-filter plus a linear scan. It is deliberately not a
// spatial index: when a characteristic cell length is supplied, candidates
// are pre-selected from an axis-aligned cube around the query point that is
// grown until it holds a generous candidate set, and the true Euclidean
// distances are only computed within that bucket.
package knn
