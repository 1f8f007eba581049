// Package index provides an in-memory flat vector index with exhaustive
// squared-Euclidean nearest-neighbor search. The index is built once and is
// read-only afterwards, so concurrent searches need no locking.
package index

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrEmptyIndex     = errors.New("index must contain at least one vector")
	ErrRaggedVectors  = errors.New("index vectors must share one dimension")
	ErrQueryDimension = errors.New("query dimension does not match index dimension")
	ErrZeroDimension  = errors.New("index vectors must have a positive dimension")
)

// Match is a single search hit: the position of a vector in construction
// order and its squared Euclidean distance to the query.
type Match struct {
	Position int
	Distance float64
}

// Flat is an exhaustive nearest-neighbor index over a fixed vector set.
type Flat struct {
	dim     int
	vectors [][]float64
}

// NewFlat builds a Flat index over the given vectors. The vectors are copied;
// their order determines match positions.
func NewFlat(vectors [][]float64) (*Flat, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyIndex
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, ErrZeroDimension
	}
	cp := make([][]float64, len(vectors))
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, want %d",
				ErrRaggedVectors, i, len(v), dim)
		}
		row := make([]float64, dim)
		copy(row, v)
		cp[i] = row
	}
	return &Flat{dim: dim, vectors: cp}, nil
}

// Dimension returns the vector dimension the index was built with.
func (f *Flat) Dimension() int { return f.dim }

// Len returns the number of indexed vectors.
func (f *Flat) Len() int { return len(f.vectors) }

// Search returns the k nearest vectors to query, ordered by non-decreasing
// squared Euclidean distance. Exact distance ties keep construction order.
// k <= 0 yields an empty result; k larger than the index size is clamped.
func (f *Flat) Search(query []float64, k int) ([]Match, error) {
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrQueryDimension, len(query), f.dim)
	}
	if k <= 0 {
		return nil, nil
	}
	if k > len(f.vectors) {
		k = len(f.vectors)
	}

	matches := make([]Match, len(f.vectors))
	for i, v := range f.vectors {
		matches[i] = Match{Position: i, Distance: squaredL2(query, v)}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Distance < matches[b].Distance
	})
	return matches[:k], nil
}

func squaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
