package vecindex

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDimensionMismatch is returned when vectors of different dimensions are
// mixed within one index, or a query vector does not match the index dimension.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Result is one search hit: the position of the vector in the order it was
// given to Build, and its squared Euclidean distance to the query.
type Result struct {
	Index    int
	Distance float64
}

// FlatIndex is an exact nearest-neighbor index over a fixed set of vectors,
// using a brute-force squared Euclidean scan.
type FlatIndex struct {
	dimension int
	vectors   [][]float32
}

// Build constructs an index over the given vectors. A nil index (with nil
// error) is returned for empty input; callers must check before searching.
// All vectors must share one dimension.
func Build(vectors [][]float32) (*FlatIndex, error) {
	if len(vectors) == 0 {
		return nil, nil
	}

	dimension := len(vectors[0])
	if dimension == 0 {
		return nil, fmt.Errorf("build index: zero-dimension vector at position 0: %w", ErrDimensionMismatch)
	}
	for i, v := range vectors {
		if len(v) != dimension {
			return nil, fmt.Errorf("build index: vector %d has dimension %d, want %d: %w",
				i, len(v), dimension, ErrDimensionMismatch)
		}
	}

	return &FlatIndex{
		dimension: dimension,
		vectors:   vectors,
	}, nil
}

// Len returns the number of indexed vectors.
func (ix *FlatIndex) Len() int {
	return len(ix.vectors)
}

// Dimension returns the shared dimension of the indexed vectors.
func (ix *FlatIndex) Dimension() int {
	return ix.dimension
}

// Search returns the k nearest vectors to the query, ordered by ascending
// squared Euclidean distance. Ties keep insertion order. If k exceeds the
// number of indexed vectors the result is clamped, never padded.
func (ix *FlatIndex) Search(query []float32, k int) ([]Result, error) {
	if k <= 0 {
		return nil, fmt.Errorf("search: k must be positive, got %d", k)
	}
	if len(query) != ix.dimension {
		return nil, fmt.Errorf("search: query has dimension %d, want %d: %w",
			len(query), ix.dimension, ErrDimensionMismatch)
	}

	results := make([]Result, len(ix.vectors))
	for i, v := range ix.vectors {
		results[i] = Result{Index: i, Distance: squaredL2(query, v)}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Distance < results[b].Distance
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
