// Reelrank - Movie Recommendation Engine and Offline Evaluator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package main

import (
	"strings"
	"testing"

	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/evaluate"
	"github.com/tomtom215/reelrank/internal/recommend"
)

func TestBuildStrategy(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Engine.Limit = 5
	cfg.Engine.TopSimilarUsers = 7
	cfg.Engine.ContentWeight = 0.6
	cfg.Engine.CollabWeight = 0.4

	tests := []struct {
		name     string
		strategy string
		want     evaluate.Strategy
		wantErr  bool
	}{
		{
			name:     "content",
			strategy: "content",
			want:     evaluate.ContentBased{Limit: 5},
		},
		{
			name:     "collaborative",
			strategy: "collaborative",
			want:     evaluate.Collaborative{Limit: 5, TopSimilarUsers: 7},
		},
		{
			name:     "hybrid",
			strategy: "hybrid",
			want: evaluate.Hybrid{
				Limit:           5,
				ContentWeight:   0.6,
				CollabWeight:    0.4,
				TopSimilarUsers: 7,
			},
		},
		{
			name:     "unknown",
			strategy: "random",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfgCopy := *cfg
			cfgCopy.Evaluation.Strategy = tt.strategy

			got, err := buildStrategy(&cfgCopy)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error for unknown strategy")
				}
				return
			}
			if err != nil {
				t.Fatalf("buildStrategy() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("buildStrategy() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWriteReportTable(t *testing.T) {
	t.Parallel()

	reports := []*evaluate.Report{
		{UserID: 1, Strategy: "content", Precision: 0.5, Recall: 0.25, FMeasure: 1.0 / 3.0},
		{UserID: 2, Strategy: "content", Precision: 1, Recall: 1, FMeasure: 1},
	}

	var buf strings.Builder
	if err := writeReportTable(&buf, reports); err != nil {
		t.Fatalf("writeReportTable() error: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "PRECISION") {
		t.Errorf("header missing PRECISION column: %q", lines[0])
	}
	if !strings.Contains(lines[1], "0.5000") {
		t.Errorf("row 1 missing precision value: %q", lines[1])
	}
}

func TestWriteJSONRanking(t *testing.T) {
	t.Parallel()

	ranking := []recommend.ScoredMovie{
		{MovieID: 3, Score: 0.75},
		{MovieID: 9, Score: 0.5},
	}

	var buf strings.Builder
	if err := writeJSON(&buf, ranking); err != nil {
		t.Fatalf("writeJSON() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"movie_id": 3`) {
		t.Errorf("output missing movie_id field:\n%s", out)
	}
	if !strings.Contains(out, `"score": 0.75`) {
		t.Errorf("output missing score field:\n%s", out)
	}
}
