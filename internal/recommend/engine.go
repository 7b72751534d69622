// Reelrank - Movie Recommendation Engine and Offline Evaluator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package recommend scores movies for users over an immutable catalog and
// training profile set.
//
// Three strategies are provided: content-based (cosine between the user's
// genre-preference vector and each unrated movie's genre vector),
// collaborative (similarity-weighted mean of neighbor ratings for unseen
// movies), and a hybrid weighted combination of the two. Every call is a pure
// function of catalog, profiles, and parameters; there is no cross-call
// state. Scoring loops run on a bounded worker pool; the post-sort ranking is
// unaffected by scheduling because results are written by index and the final
// order is a deterministic sort.
package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/tomtom215/reelrank/internal/catalog"
	"github.com/tomtom215/reelrank/internal/profile"
)

// ScoredMovie is one entry of a ranked recommendation list.
type ScoredMovie struct {
	MovieID int     `json:"movie_id"`
	Score   float64 `json:"score"`
}

// UnknownUserError reports a recommendation request for a user absent from
// the training profiles.
type UnknownUserError struct {
	UserID int
}

func (e *UnknownUserError) Error() string {
	return fmt.Sprintf("unknown user %d", e.UserID)
}

// Config contains engine tuning parameters.
type Config struct {
	// NumWorkers bounds the worker pool used for similarity loops.
	// Default: 4.
	NumWorkers int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{NumWorkers: 4}
}

// Engine scores movies against a training profile set. It is safe for
// concurrent use: catalog and profiles are read-only after construction.
type Engine struct {
	catalog *catalog.Catalog
	users   profile.Set
	workers int
	logger  zerolog.Logger

	// userIDs and movieIDs are sorted once so every scoring loop iterates
	// in a deterministic order.
	userIDs  []int
	movieIDs []int
}

// NewEngine creates an engine over a catalog and training profiles.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cat *catalog.Catalog, users profile.Set, cfg Config, logger zerolog.Logger) *Engine {
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = 4
	}

	userIDs := make([]int, 0, len(users))
	for id := range users {
		userIDs = append(userIDs, id)
	}
	sort.Ints(userIDs)

	movieIDs := make([]int, 0, cat.Len())
	for id := range cat.Movies() {
		movieIDs = append(movieIDs, id)
	}
	sort.Ints(movieIDs)

	return &Engine{
		catalog:  cat,
		users:    users,
		workers:  cfg.NumWorkers,
		logger:   logger.With().Str("component", "recommend").Logger(),
		userIDs:  userIDs,
		movieIDs: movieIDs,
	}
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// user resolves a user ID against the training profiles.
func (e *Engine) user(userID int) (*profile.User, error) {
	u, ok := e.users[userID]
	if !ok {
		return nil, &UnknownUserError{UserID: userID}
	}
	return u, nil
}

// sortRanking orders scored movies by score descending with movie ID as a
// deterministic tie break, then truncates to limit when limit is positive.
func sortRanking(ranking []ScoredMovie, limit int) []ScoredMovie {
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return ranking[i].MovieID < ranking[j].MovieID
	})

	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}

// forEachChunk runs fn over chunks of ids on the engine's worker pool and
// waits for completion. fn receives the chunk together with its starting
// offset in ids so results can be written by index.
func (e *Engine) forEachChunk(ctx context.Context, ids []int, fn func(offset int, chunk []int)) {
	workers := e.workers
	if workers > len(ids) {
		workers = len(ids)
	}
	if workers <= 1 {
		fn(0, ids)
		return
	}

	var wg sync.WaitGroup
	chunkSize := (len(ids) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > len(ids) {
			end = len(ids)
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(offset int, chunk []int) {
			defer wg.Done()
			if contextCancelled(ctx) {
				return
			}
			fn(offset, chunk)
		}(start, ids[start:end])
	}

	wg.Wait()
}

// contextCancelled checks if the context has been canceled.
func contextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
