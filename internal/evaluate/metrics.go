// Reelrank - Movie Recommendation Engine and Offline Evaluator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package evaluate

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRecommendations signals a precision computation over an empty
	// recommendation list.
	ErrNoRecommendations = errors.New("recommendation list is empty")

	// ErrEmptyTestSet signals a recall computation over a test user with no
	// rated movies.
	ErrEmptyTestSet = errors.New("test set has no rated movies")
)

// DivisionError reports a zero denominator in a retrieval metric. It wraps
// one of the sentinel errors above so callers can distinguish the cases with
// errors.Is.
type DivisionError struct {
	Metric string
	Cause  error
}

func (e *DivisionError) Error() string {
	return fmt.Sprintf("%s undefined: %v", e.Metric, e.Cause)
}

func (e *DivisionError) Unwrap() error {
	return e.Cause
}

// Precision returns the fraction of recommended movies present in the test
// user's rated set. An empty recommendation list yields a *DivisionError.
func Precision(recommended []int, rated map[int]struct{}) (float64, error) {
	if len(recommended) == 0 {
		return 0, &DivisionError{Metric: "precision", Cause: ErrNoRecommendations}
	}
	return float64(hits(recommended, rated)) / float64(len(recommended)), nil
}

// Recall returns the fraction of the test user's rated movies that were
// recommended. An empty rated set yields a *DivisionError.
func Recall(recommended []int, rated map[int]struct{}) (float64, error) {
	if len(rated) == 0 {
		return 0, &DivisionError{Metric: "recall", Cause: ErrEmptyTestSet}
	}
	return float64(hits(recommended, rated)) / float64(len(rated)), nil
}

// FMeasure returns the harmonic mean of precision and recall, defined as 0
// when both are 0.
func FMeasure(precision, recall float64) float64 {
	if precision+recall == 0 {
		return 0
	}
	return 2 * precision * recall / (precision + recall)
}

// hits counts recommended movie IDs present in the rated set.
func hits(recommended []int, rated map[int]struct{}) int {
	var n int
	for _, id := range recommended {
		if _, ok := rated[id]; ok {
			n++
		}
	}
	return n
}
