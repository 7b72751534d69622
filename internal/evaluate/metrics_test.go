// Reelrank - Movie Recommendation Engine and Offline Evaluator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package evaluate

import (
	"errors"
	"math"
	"testing"
)

func ratedSet(ids ...int) map[int]struct{} {
	s := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func TestPrecision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		recommended []int
		rated       map[int]struct{}
		want        float64
	}{
		{
			name:        "all recommended are relevant",
			recommended: []int{1, 2, 3},
			rated:       ratedSet(1, 2, 3, 4),
			want:        1.0,
		},
		{
			name:        "half relevant",
			recommended: []int{1, 2, 5, 6},
			rated:       ratedSet(1, 2),
			want:        0.5,
		},
		{
			name:        "none relevant",
			recommended: []int{5, 6},
			rated:       ratedSet(1, 2),
			want:        0.0,
		},
		{
			name:        "empty rated set is fine for precision",
			recommended: []int{5},
			rated:       nil,
			want:        0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Precision(tt.recommended, tt.rated)
			if err != nil {
				t.Fatalf("Precision() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Precision() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestPrecisionEmptyRecommendations(t *testing.T) {
	t.Parallel()

	_, err := Precision(nil, ratedSet(1))
	if !errors.Is(err, ErrNoRecommendations) {
		t.Fatalf("error = %v, want ErrNoRecommendations", err)
	}

	var divErr *DivisionError
	if !errors.As(err, &divErr) {
		t.Fatalf("error type = %T, want *DivisionError", err)
	}
	if divErr.Metric != "precision" {
		t.Errorf("Metric = %q, want precision", divErr.Metric)
	}
}

func TestRecall(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		recommended []int
		rated       map[int]struct{}
		want        float64
	}{
		{
			name:        "all rated movies recommended",
			recommended: []int{1, 2, 3, 9},
			rated:       ratedSet(1, 2, 3),
			want:        1.0,
		},
		{
			name:        "one of three found",
			recommended: []int{1, 7},
			rated:       ratedSet(1, 2, 3),
			want:        1.0 / 3.0,
		},
		{
			name:        "empty recommendations is fine for recall",
			recommended: nil,
			rated:       ratedSet(1),
			want:        0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Recall(tt.recommended, tt.rated)
			if err != nil {
				t.Fatalf("Recall() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Recall() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRecallEmptyTestSet(t *testing.T) {
	t.Parallel()

	// A test user with zero rated movies must raise, not silently return 0.
	_, err := Recall([]int{1, 2}, nil)
	if !errors.Is(err, ErrEmptyTestSet) {
		t.Fatalf("error = %v, want ErrEmptyTestSet", err)
	}

	var divErr *DivisionError
	if !errors.As(err, &divErr) {
		t.Fatalf("error type = %T, want *DivisionError", err)
	}
	if divErr.Metric != "recall" {
		t.Errorf("Metric = %q, want recall", divErr.Metric)
	}
}

func TestFMeasure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		precision float64
		recall    float64
		want      float64
	}{
		{"both perfect", 1, 1, 1},
		{"both zero is defined as zero", 0, 0, 0},
		{"harmonic mean", 0.5, 1, 2.0 / 3.0},
		{"zero precision", 0, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FMeasure(tt.precision, tt.recall)
			if math.IsNaN(got) {
				t.Fatal("FMeasure() = NaN")
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("FMeasure(%f, %f) = %f, want %f", tt.precision, tt.recall, got, tt.want)
			}
		})
	}
}
