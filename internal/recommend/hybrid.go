// Reelrank - Movie Recommendation Engine and Offline Evaluator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import "context"

// Hybrid combines the full content-based and collaborative rankings
// additively per movie:
//
//	final = content*contentWeight + collab*collabWeight
//
// Movies absent from the collaborative ranking contribute only their content
// term; the content ranking covers every unrated movie, so no movie is absent
// from it. Highest combined score first; a non-positive limit returns the
// full ranking.
func (e *Engine) Hybrid(ctx context.Context, userID, limit int, contentWeight, collabWeight float64, topSimilarUsers int) ([]ScoredMovie, error) {
	content, err := e.ContentBased(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	collab, err := e.Collaborative(ctx, userID, 0, topSimilarUsers)
	if err != nil {
		return nil, err
	}

	combined := make(map[int]float64, len(content))
	for _, sm := range content {
		combined[sm.MovieID] = sm.Score * contentWeight
	}
	for _, sm := range collab {
		combined[sm.MovieID] += sm.Score * collabWeight
	}

	ranking := make([]ScoredMovie, 0, len(combined))
	for movieID, score := range combined {
		ranking = append(ranking, ScoredMovie{MovieID: movieID, Score: score})
	}

	ranking = sortRanking(ranking, limit)

	e.logger.Debug().
		Int("user_id", userID).
		Float64("content_weight", contentWeight).
		Float64("collab_weight", collabWeight).
		Int("returned", len(ranking)).
		Msg("hybrid ranking complete")

	return ranking, nil
}
