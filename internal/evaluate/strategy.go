// Reelrank - Movie Recommendation Engine and Offline Evaluator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package evaluate

import (
	"context"
	"fmt"

	"github.com/tomtom215/reelrank/internal/recommend"
)

// Strategy selects a recommendation algorithm together with exactly the
// parameters it requires. Each concrete strategy validates its own parameters
// so a missing parameter surfaces as a *ConfigurationError before any scoring
// happens, not as a runtime lookup failure mid-evaluation.
type Strategy interface {
	// Name returns the strategy identifier (e.g. "content", "collaborative").
	Name() string

	// Validate checks the strategy's parameters.
	Validate() error

	// Params echoes the parameters for reporting.
	Params() map[string]float64

	// rank produces the ranked recommendation list for a user.
	rank(ctx context.Context, engine *recommend.Engine, userID int) ([]recommend.ScoredMovie, error)
}

// ConfigurationError reports a missing or invalid strategy parameter.
type ConfigurationError struct {
	Strategy string
	Param    string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("strategy %s: parameter %s: %s", e.Strategy, e.Param, e.Reason)
}

// ContentBased evaluates the content-based strategy.
type ContentBased struct {
	// Limit truncates the ranking; non-positive means the full ranking.
	Limit int
}

// Name returns the strategy identifier.
func (s ContentBased) Name() string { return "content" }

// Validate checks the strategy's parameters.
func (s ContentBased) Validate() error { return nil }

// Params echoes the parameters for reporting.
func (s ContentBased) Params() map[string]float64 {
	return map[string]float64{"limit": float64(s.Limit)}
}

func (s ContentBased) rank(ctx context.Context, engine *recommend.Engine, userID int) ([]recommend.ScoredMovie, error) {
	return engine.ContentBased(ctx, userID, s.Limit)
}

// Collaborative evaluates the collaborative strategy.
type Collaborative struct {
	// Limit truncates the ranking; non-positive means the full ranking.
	Limit int

	// TopSimilarUsers is the neighborhood size. Required.
	TopSimilarUsers int
}

// Name returns the strategy identifier.
func (s Collaborative) Name() string { return "collaborative" }

// Validate checks the strategy's parameters.
func (s Collaborative) Validate() error {
	if s.TopSimilarUsers <= 0 {
		return &ConfigurationError{
			Strategy: s.Name(),
			Param:    "top_similar_users",
			Reason:   "must be positive",
		}
	}
	return nil
}

// Params echoes the parameters for reporting.
func (s Collaborative) Params() map[string]float64 {
	return map[string]float64{
		"limit":             float64(s.Limit),
		"top_similar_users": float64(s.TopSimilarUsers),
	}
}

func (s Collaborative) rank(ctx context.Context, engine *recommend.Engine, userID int) ([]recommend.ScoredMovie, error) {
	return engine.Collaborative(ctx, userID, s.Limit, s.TopSimilarUsers)
}

// Hybrid evaluates the weighted hybrid strategy.
type Hybrid struct {
	// Limit truncates the ranking; non-positive means the full ranking.
	Limit int

	// ContentWeight scales the content-based score. Required.
	ContentWeight float64

	// CollabWeight scales the collaborative score. Required.
	CollabWeight float64

	// TopSimilarUsers is the neighborhood size. Required.
	TopSimilarUsers int
}

// Name returns the strategy identifier.
func (s Hybrid) Name() string { return "hybrid" }

// Validate checks the strategy's parameters.
func (s Hybrid) Validate() error {
	if s.ContentWeight <= 0 {
		return &ConfigurationError{Strategy: s.Name(), Param: "content_weight", Reason: "must be positive"}
	}
	if s.CollabWeight <= 0 {
		return &ConfigurationError{Strategy: s.Name(), Param: "collab_weight", Reason: "must be positive"}
	}
	if s.TopSimilarUsers <= 0 {
		return &ConfigurationError{Strategy: s.Name(), Param: "top_similar_users", Reason: "must be positive"}
	}
	return nil
}

// Params echoes the parameters for reporting.
func (s Hybrid) Params() map[string]float64 {
	return map[string]float64{
		"limit":             float64(s.Limit),
		"content_weight":    s.ContentWeight,
		"collab_weight":     s.CollabWeight,
		"top_similar_users": float64(s.TopSimilarUsers),
	}
}

func (s Hybrid) rank(ctx context.Context, engine *recommend.Engine, userID int) ([]recommend.ScoredMovie, error) {
	return engine.Hybrid(ctx, userID, s.Limit, s.ContentWeight, s.CollabWeight, s.TopSimilarUsers)
}
