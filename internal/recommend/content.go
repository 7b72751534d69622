// Reelrank - Movie Recommendation Engine and Offline Evaluator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"

	"github.com/tomtom215/reelrank/internal/profile"
)

// ContentBased ranks every movie the user has not rated by the cosine
// similarity between the user's genre-preference vector and the movie's
// genre vector. Highest score first; ties break on movie ID. A non-positive
// limit returns the full ranking.
func (e *Engine) ContentBased(ctx context.Context, userID, limit int) ([]ScoredMovie, error) {
	user, err := e.user(userID)
	if err != nil {
		return nil, err
	}

	candidates := e.unratedMovies(user)
	scores := make([]float64, len(candidates))

	e.forEachChunk(ctx, candidates, func(offset int, chunk []int) {
		for i, movieID := range chunk {
			movie, _ := e.catalog.Movie(movieID)
			scores[offset+i] = Cosine(user.GenrePrefs, movie.GenreVector)
		}
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ranking := make([]ScoredMovie, len(candidates))
	for i, movieID := range candidates {
		ranking[i] = ScoredMovie{MovieID: movieID, Score: scores[i]}
	}

	ranking = sortRanking(ranking, limit)

	e.logger.Debug().
		Int("user_id", userID).
		Int("candidates", len(candidates)).
		Int("returned", len(ranking)).
		Msg("content-based ranking complete")

	return ranking, nil
}

// unratedMovies returns the IDs of all catalog movies the user has not
// rated, in ascending ID order.
func (e *Engine) unratedMovies(user *profile.User) []int {
	candidates := make([]int, 0, len(e.movieIDs))
	for _, movieID := range e.movieIDs {
		if !user.HasRated(movieID) {
			candidates = append(candidates, movieID)
		}
	}
	return candidates
}
