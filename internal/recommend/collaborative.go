// Reelrank - Movie Recommendation Engine and Offline Evaluator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import (
	"context"
	"sort"
)

// neighbor is a similar user with their similarity score.
type neighbor struct {
	UserID     int
	Similarity float64
}

// ratingAccum accumulates similarity-weighted ratings for one movie.
type ratingAccum struct {
	sum   float64
	count int
}

// Collaborative ranks movies the user has not rated by a similarity-weighted
// mean of neighbor ratings.
//
// The topSimilarUsers most similar other users are selected by cosine
// similarity of genre-preference vectors. For each movie a neighbor rated
// that the target user has not, rating*similarity accumulates into a per-movie
// sum and count; the predicted score is sum/count, so movies unseen by some
// neighbors are not diluted. Scores are then divided by the maximum so a
// non-empty result's top score is exactly 1.0. If no neighbor rated any
// unseen movie the result is empty; if the maximum is zero the scores stay
// zero. A non-positive limit returns the full ranking.
func (e *Engine) Collaborative(ctx context.Context, userID, limit, topSimilarUsers int) ([]ScoredMovie, error) {
	user, err := e.user(userID)
	if err != nil {
		return nil, err
	}

	neighbors := e.similarUsers(ctx, userID, topSimilarUsers)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	accums := make(map[int]*ratingAccum)
	for _, n := range neighbors {
		other := e.users[n.UserID]
		for movieID, rating := range other.Ratings {
			if user.HasRated(movieID) {
				continue
			}
			acc, ok := accums[movieID]
			if !ok {
				acc = &ratingAccum{}
				accums[movieID] = acc
			}
			acc.sum += rating * n.Similarity
			acc.count++
		}
	}

	ranking := make([]ScoredMovie, 0, len(accums))
	var maxScore float64
	for movieID, acc := range accums {
		score := acc.sum / float64(acc.count)
		if score > maxScore {
			maxScore = score
		}
		ranking = append(ranking, ScoredMovie{MovieID: movieID, Score: score})
	}

	if maxScore > 0 {
		for i := range ranking {
			ranking[i].Score /= maxScore
		}
	}

	ranking = sortRanking(ranking, limit)

	e.logger.Debug().
		Int("user_id", userID).
		Int("neighbors", len(neighbors)).
		Int("returned", len(ranking)).
		Msg("collaborative ranking complete")

	return ranking, nil
}

// similarUsers returns the topN most similar other users by cosine similarity
// of genre-preference vectors, descending, with user ID as a deterministic
// tie break. The target user is excluded. A non-positive topN yields no
// neighbors.
func (e *Engine) similarUsers(ctx context.Context, userID, topN int) []neighbor {
	if topN <= 0 {
		return nil
	}

	user := e.users[userID]
	sims := make([]float64, len(e.userIDs))

	e.forEachChunk(ctx, e.userIDs, func(offset int, chunk []int) {
		for i, otherID := range chunk {
			if otherID == userID {
				sims[offset+i] = -1 // sentinel, filtered below
				continue
			}
			sims[offset+i] = Cosine(user.GenrePrefs, e.users[otherID].GenrePrefs)
		}
	})

	neighbors := make([]neighbor, 0, len(e.userIDs))
	for i, otherID := range e.userIDs {
		if otherID == userID {
			continue
		}
		neighbors = append(neighbors, neighbor{UserID: otherID, Similarity: sims[i]})
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return neighbors[i].UserID < neighbors[j].UserID
	})

	if len(neighbors) > topN {
		neighbors = neighbors[:topN]
	}
	return neighbors
}
