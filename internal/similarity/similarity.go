// ABOUTME: Pure numeric layer for vector similarity
// ABOUTME: Remapped cosine similarity and order-preserving batch scoring
package similarity

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch indicates two vectors of unequal length were compared.
// This is a caller bug, not a recoverable condition.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Cosine returns cosine similarity remapped from [-1, 1] into [0, 1] via
// (1 + cos) / 2, so 0 means opposite, 0.5 orthogonal, and 1 identical.
// The remap is relied on by every threshold in the engine and must not change.
// If either vector has zero norm the result is 0.0 rather than a division
// by zero.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return (1 + cos) / 2, nil
}

// BatchCosine scores query against every candidate, one remapped similarity
// per candidate, preserving candidate order.
func BatchCosine(query []float32, candidates [][]float32) ([]float64, error) {
	scores := make([]float64, len(candidates))
	for i, candidate := range candidates {
		score, err := Cosine(query, candidate)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		scores[i] = score
	}
	return scores, nil
}
