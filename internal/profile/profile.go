// Reelrank - Movie Recommendation Engine and Offline Evaluator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package profile builds per-user genre-preference vectors from raw ratings.
//
// The builder is invoked once per data split: the training split feeds the
// recommendation engine and the testing split feeds the evaluator as ground
// truth. Both builds run the same construction logic over the same catalog
// and leave the catalog untouched. Profiles are immutable after Build
// returns.
package profile

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tomtom215/reelrank/internal/catalog"
	"github.com/tomtom215/reelrank/internal/dataset"
)

// LikedThreshold is the fixed star rating at and above which a rating counts
// as a liked movie for genre-preference purposes.
const LikedThreshold = 2.5

// User is a per-user profile over one data split.
type User struct {
	// ID is the external user identifier.
	ID int

	// GenrePrefs is the dense genre-preference vector, indexed by the
	// catalog vocabulary. Each entry counts distinct liked movies carrying
	// that genre, then the whole vector is divided by its maximum entry so
	// values lie in [0,1]. A user with no liked ratings keeps the all-zero
	// vector.
	GenrePrefs []float64

	// Ratings maps movie ID to the literal star rating given. All ratings
	// are retained here, liked or not.
	Ratings map[int]float64

	// Rated is the set of movie IDs the user has rated, used strictly to
	// exclude already-seen movies from recommendations, never for scoring.
	Rated map[int]struct{}
}

// HasRated reports whether the user has rated the given movie.
func (u *User) HasRated(movieID int) bool {
	_, ok := u.Rated[movieID]
	return ok
}

// Set maps user ID to profile for one data split.
type Set map[int]*User

// UnknownMovieError reports a rating that references a movie absent from the
// catalog.
type UnknownMovieError struct {
	UserID  int
	MovieID int
}

func (e *UnknownMovieError) Error() string {
	return fmt.Sprintf("rating by user %d references unknown movie %d", e.UserID, e.MovieID)
}

// Build constructs user profiles from raw rating records. Any rating naming a
// movie outside the catalog aborts the whole build; the genre counts depend
// on having resolved every record.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Build(cat *catalog.Catalog, ratings []dataset.RatingRecord, logger zerolog.Logger) (Set, error) {
	g := cat.Vocabulary().Len()
	users := make(Set)

	for _, rec := range ratings {
		movie, ok := cat.Movie(rec.MovieID)
		if !ok {
			return nil, &UnknownMovieError{UserID: rec.UserID, MovieID: rec.MovieID}
		}

		user, ok := users[rec.UserID]
		if !ok {
			user = &User{
				ID:         rec.UserID,
				GenrePrefs: make([]float64, g),
				Ratings:    make(map[int]float64),
				Rated:      make(map[int]struct{}),
			}
			users[rec.UserID] = user
		}

		user.Ratings[rec.MovieID] = rec.Rating
		user.Rated[rec.MovieID] = struct{}{}

		if rec.Rating >= LikedThreshold {
			for _, genre := range movie.Genres {
				i, found := cat.Vocabulary().Index(genre)
				if !found {
					// Unreachable: catalog construction guarantees coverage.
					return nil, fmt.Errorf("genre %q missing from vocabulary", genre)
				}
				user.GenrePrefs[i]++
			}
		}
	}

	coldUsers := 0
	for _, user := range users {
		if !normalizePrefs(user.GenrePrefs) {
			coldUsers++
		}
	}

	logger.Debug().
		Int("users", len(users)).
		Int("ratings", len(ratings)).
		Int("cold_users", coldUsers).
		Msg("user profiles built")

	return users, nil
}

// normalizePrefs divides the vector by its maximum entry. A zero maximum
// (user with no liked ratings) leaves the vector untouched and returns false.
func normalizePrefs(prefs []float64) bool {
	var max float64
	for _, v := range prefs {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return false
	}

	for i := range prefs {
		prefs[i] /= max
	}
	return true
}
