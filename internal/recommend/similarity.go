// Reelrank - Movie Recommendation Engine and Offline Evaluator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import "math"

// Cosine computes the cosine similarity between two equal-length vectors:
// dot(a,b) / (norm(a) * norm(b)).
//
// For the non-negative vectors used throughout this package the result lies
// in [0,1]. A length mismatch or a zero-norm vector on either side yields 0;
// the function never divides by zero and never produces NaN, so scores are
// always safe to sort. This is the single similarity primitive shared by the
// user-movie and user-user comparisons.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
