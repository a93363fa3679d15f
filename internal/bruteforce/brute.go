// Package bruteforce provides a linear-scan Euclidean top-k index over
// float32 vectors, used by the store package to answer nearest queries
// against persisted frames.
package bruteforce

import (
	"fmt"
	"sort"

	"github.com/viant/vec/search"
)

// Index is a simple brute-force index returning neighbours in ascending
// Euclidean distance order.
type Index struct {
	ids  []int
	vecs []search.Float32s
	dim  int
}

// Build loads ids and vectors into the index, replacing any prior content.
func (i *Index) Build(ids []int, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("bruteforce: ids and vectors length mismatch: %d != %d", len(ids), len(vectors))
	}
	if len(ids) == 0 {
		i.ids, i.vecs, i.dim = nil, nil, 0
		return nil
	}
	dim := len(vectors[0])
	for j := range vectors {
		if len(vectors[j]) != dim {
			return fmt.Errorf("bruteforce: inconsistent vector dims %d vs %d", len(vectors[j]), dim)
		}
	}
	i.ids = append([]int(nil), ids...)
	i.vecs = make([]search.Float32s, len(vectors))
	for j := range vectors {
		i.vecs[j] = append(search.Float32s(nil), vectors[j]...)
	}
	i.dim = dim
	return nil
}

// Query returns the ids of the k vectors closest to the query together with
// their distances, ascending. A k larger than the index size returns
// everything.
func (i *Index) Query(query []float32, k int) ([]int, []float64, error) {
	if i.dim == 0 || len(i.vecs) == 0 {
		return nil, nil, nil
	}
	if len(query) != i.dim {
		return nil, nil, fmt.Errorf("bruteforce: query dim %d != index dim %d", len(query), i.dim)
	}
	type scored struct {
		idx  int
		dist float64
	}
	scoreds := make([]scored, len(i.vecs))
	for j := range i.vecs {
		scoreds[j] = scored{idx: j, dist: float64(i.vecs[j].EuclideanDistance(query))}
	}
	sort.SliceStable(scoreds, func(a, b int) bool { return scoreds[a].dist < scoreds[b].dist })
	if k <= 0 || k > len(scoreds) {
		k = len(scoreds)
	}
	outIDs := make([]int, k)
	outDists := make([]float64, k)
	for n := 0; n < k; n++ {
		outIDs[n] = i.ids[scoreds[n].idx]
		outDists[n] = scoreds[n].dist
	}
	return outIDs, outDists, nil
}

// Size returns the number of indexed vectors.
func (i *Index) Size() int { return len(i.ids) }
