// Bookmarket - Book Recommendation and Pricing Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookmarket

package tfidf

import (
	"math"
	"sort"
)

// Vector is a sparse vector with strictly increasing indices.
type Vector struct {
	Indices []int
	Values  []float64
}

// newVector builds a Vector from an index->value map, dropping zeros.
func newVector(m map[int]float64) Vector {
	idx := make([]int, 0, len(m))
	for i, v := range m {
		if v != 0 {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)

	vals := make([]float64, len(idx))
	for k, i := range idx {
		vals[k] = m[i]
	}
	return Vector{Indices: idx, Values: vals}
}

// IsZero reports whether every component is zero.
func (v Vector) IsZero() bool {
	return len(v.Indices) == 0
}

// Norm returns the Euclidean length.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of two vectors.
func Dot(a, b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Cosine returns the cosine similarity of a and b, or 0 when either is zero.
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return Dot(a, b) / (na * nb)
}

// Sum adds vectors component-wise.
func Sum(vs ...Vector) Vector {
	acc := make(map[int]float64)
	for _, v := range vs {
		for k, i := range v.Indices {
			acc[i] += v.Values[k]
		}
	}
	return newVector(acc)
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vector) Normalize() Vector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	vals := make([]float64, len(v.Values))
	for k, x := range v.Values {
		vals[k] = x / n
	}
	idx := make([]int, len(v.Indices))
	copy(idx, v.Indices)
	return Vector{Indices: idx, Values: vals}
}

// Dense expands v into a slice of the given size. Indices beyond size are
// ignored.
func (v Vector) Dense(size int) []float64 {
	out := make([]float64, size)
	for k, i := range v.Indices {
		if i < size {
			out[i] = v.Values[k]
		}
	}
	return out
}
