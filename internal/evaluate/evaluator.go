// Reelrank - Movie Recommendation Engine and Offline Evaluator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package evaluate measures recommendation quality against a held-out test
// split.
//
// An Evaluator pairs a trained recommendation engine (built from the training
// split) with test profiles built from the testing split over the same
// catalog. For one user and one strategy it produces a Report with precision,
// recall, and F-measure; batch evaluation over many users isolates per-user
// failures so one undefined metric never aborts the run.
package evaluate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tomtom215/reelrank/internal/profile"
	"github.com/tomtom215/reelrank/internal/recommend"
)

// Report holds the metrics for one evaluation call, with an echo of the
// strategy parameters for external presentation.
type Report struct {
	// RunID uniquely identifies this evaluation call.
	RunID string `json:"run_id"`

	// UserID is the evaluated user.
	UserID int `json:"user_id"`

	// Strategy is the strategy name.
	Strategy string `json:"strategy"`

	// Params echoes the strategy parameters used.
	Params map[string]float64 `json:"params"`

	// Recommended is the number of recommended movies.
	Recommended int `json:"recommended"`

	// Relevant is the number of recommended movies present in the test set.
	Relevant int `json:"relevant"`

	// TestRated is the number of movies the test user rated.
	TestRated int `json:"test_rated"`

	// Precision is relevant / recommended.
	Precision float64 `json:"precision"`

	// Recall is relevant / test_rated.
	Recall float64 `json:"recall"`

	// FMeasure is the harmonic mean of precision and recall.
	FMeasure float64 `json:"f_measure"`

	// Timestamp is when the report was generated.
	Timestamp time.Time `json:"timestamp"`
}

// UnknownTestUserError reports an evaluation request for a user absent from
// the test profiles.
type UnknownTestUserError struct {
	UserID int
}

func (e *UnknownTestUserError) Error() string {
	return fmt.Sprintf("user %d not present in test profiles", e.UserID)
}

// Evaluator scores recommendation strategies against held-out test profiles.
type Evaluator struct {
	engine       *recommend.Engine
	testProfiles profile.Set
	logger       zerolog.Logger
}

// NewEvaluator creates an evaluator over a trained engine and test profiles.
// The test profiles must be built over the same catalog as the engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEvaluator(engine *recommend.Engine, testProfiles profile.Set, logger zerolog.Logger) *Evaluator {
	return &Evaluator{
		engine:       engine,
		testProfiles: testProfiles,
		logger:       logger.With().Str("component", "evaluate").Logger(),
	}
}

// Evaluate runs one strategy for one user and computes precision, recall,
// and F-measure against the user's test-split rated set.
//
// Error cases: invalid strategy parameters (*ConfigurationError), user
// missing from test profiles (*UnknownTestUserError), user missing from
// training profiles (*recommend.UnknownUserError), and zero-denominator
// metrics (*DivisionError). Each failure is confined to this call; shared
// state is never touched.
func (ev *Evaluator) Evaluate(ctx context.Context, userID int, strategy Strategy) (*Report, error) {
	if err := strategy.Validate(); err != nil {
		return nil, err
	}

	testUser, ok := ev.testProfiles[userID]
	if !ok {
		return nil, &UnknownTestUserError{UserID: userID}
	}

	ranking, err := strategy.rank(ctx, ev.engine, userID)
	if err != nil {
		return nil, fmt.Errorf("rank %s: %w", strategy.Name(), err)
	}

	recommended := make([]int, len(ranking))
	for i, sm := range ranking {
		recommended[i] = sm.MovieID
	}

	precision, err := Precision(recommended, testUser.Rated)
	if err != nil {
		return nil, err
	}

	recall, err := Recall(recommended, testUser.Rated)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:       uuid.NewString(),
		UserID:      userID,
		Strategy:    strategy.Name(),
		Params:      strategy.Params(),
		Recommended: len(recommended),
		Relevant:    hits(recommended, testUser.Rated),
		TestRated:   len(testUser.Rated),
		Precision:   precision,
		Recall:      recall,
		FMeasure:    FMeasure(precision, recall),
		Timestamp:   time.Now(),
	}

	ev.logger.Debug().
		Str("run_id", report.RunID).
		Int("user_id", userID).
		Str("strategy", strategy.Name()).
		Float64("precision", precision).
		Float64("recall", recall).
		Float64("f_measure", report.FMeasure).
		Msg("evaluation complete")

	return report, nil
}

// EvaluateAll runs one strategy for every user present in both the training
// and test profiles. Per-user failures are logged and skipped; the batch
// continues. Invalid strategy parameters fail the whole batch up front.
func (ev *Evaluator) EvaluateAll(ctx context.Context, strategy Strategy) ([]*Report, error) {
	if err := strategy.Validate(); err != nil {
		return nil, err
	}

	reports := make([]*Report, 0, len(ev.testProfiles))
	skipped := 0

	for userID := range ev.testProfiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		report, err := ev.Evaluate(ctx, userID, strategy)
		if err != nil {
			skipped++
			ev.logger.Warn().
				Int("user_id", userID).
				Err(err).
				Msg("skipping user evaluation")
			continue
		}
		reports = append(reports, report)
	}

	ev.logger.Info().
		Str("strategy", strategy.Name()).
		Int("evaluated", len(reports)).
		Int("skipped", skipped).
		Msg("batch evaluation complete")

	return reports, nil
}
