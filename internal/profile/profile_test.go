// Reelrank - Movie Recommendation Engine and Offline Evaluator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package profile

import (
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/tomtom215/reelrank/internal/catalog"
	"github.com/tomtom215/reelrank/internal/dataset"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cat, err := catalog.Build([]dataset.MovieRecord{
		{ID: 1, Title: "A", Genres: "Comedy"},
		{ID: 2, Title: "B", Genres: "Drama"},
		{ID: 3, Title: "C", Genres: "Comedy|Drama"},
		{ID: 4, Title: "D", Genres: "Action"},
	})
	if err != nil {
		t.Fatalf("catalog.Build() error = %v", err)
	}
	return cat
}

// Vocabulary for testCatalog is [Action Comedy Drama].

func TestBuildGenreCounts(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	ratings := []dataset.RatingRecord{
		{UserID: 1, MovieID: 1, Rating: 4.0},  // liked, Comedy
		{UserID: 1, MovieID: 3, Rating: 3.0},  // liked, Comedy+Drama
		{UserID: 1, MovieID: 2, Rating: 1.0},  // not liked, Drama
		{UserID: 1, MovieID: 4, Rating: 2.49}, // just below threshold
	}

	users, err := Build(cat, ratings, zerolog.Nop())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	user, ok := users[1]
	if !ok {
		t.Fatal("user 1 missing")
	}

	// Counts before normalization: Action 0, Comedy 2, Drama 1.
	// Normalized by max (2): [0, 1, 0.5].
	want := []float64{0, 1, 0.5}
	for i, v := range want {
		if math.Abs(user.GenrePrefs[i]-v) > 1e-9 {
			t.Errorf("GenrePrefs[%d] = %f, want %f", i, user.GenrePrefs[i], v)
		}
	}

	// The rating map retains literal stars for all ratings.
	if len(user.Ratings) != 4 {
		t.Errorf("Ratings has %d entries, want 4", len(user.Ratings))
	}
	if user.Ratings[2] != 1.0 {
		t.Errorf("Ratings[2] = %f, want 1.0", user.Ratings[2])
	}

	// Rated set covers every rating map key.
	for movieID := range user.Ratings {
		if !user.HasRated(movieID) {
			t.Errorf("Rated missing movie %d present in Ratings", movieID)
		}
	}
}

func TestBuildThresholdBoundary(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	users, err := Build(cat, []dataset.RatingRecord{
		{UserID: 1, MovieID: 1, Rating: 2.5}, // exactly at threshold counts as liked
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	comedy, _ := cat.Vocabulary().Index("Comedy")
	if users[1].GenrePrefs[comedy] != 1.0 {
		t.Errorf("rating of exactly 2.5 not counted as liked: prefs = %v", users[1].GenrePrefs)
	}
}

func TestBuildNoLikedRatings(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	users, err := Build(cat, []dataset.RatingRecord{
		{UserID: 7, MovieID: 1, Rating: 1.0},
		{UserID: 7, MovieID: 2, Rating: 2.0},
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// No liked ratings: the preference vector stays all zero, never NaN.
	for i, v := range users[7].GenrePrefs {
		if v != 0 {
			t.Errorf("GenrePrefs[%d] = %f, want 0", i, v)
		}
		if math.IsNaN(v) {
			t.Errorf("GenrePrefs[%d] is NaN", i)
		}
	}

	// Ratings and rated set are still recorded.
	if len(users[7].Ratings) != 2 {
		t.Errorf("Ratings has %d entries, want 2", len(users[7].Ratings))
	}
}

func TestBuildUnknownMovie(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	_, err := Build(cat, []dataset.RatingRecord{
		{UserID: 1, MovieID: 999, Rating: 4.0},
	}, zerolog.Nop())

	var refErr *UnknownMovieError
	if !errors.As(err, &refErr) {
		t.Fatalf("error = %v, want *UnknownMovieError", err)
	}
	if refErr.MovieID != 999 || refErr.UserID != 1 {
		t.Errorf("error fields = %+v", refErr)
	}
}

func TestBuildMonotonicCounts(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	comedy, _ := cat.Vocabulary().Index("Comedy")

	// Adding more liked comedy ratings never decreases the comedy count.
	// Compare raw counts via profiles built from growing prefixes; use a
	// second liked genre so normalization keeps the comedy entry comparable.
	ratings := []dataset.RatingRecord{
		{UserID: 1, MovieID: 4, Rating: 5.0}, // Action anchor
		{UserID: 1, MovieID: 1, Rating: 4.0}, // Comedy
		{UserID: 1, MovieID: 3, Rating: 4.0}, // Comedy+Drama
	}

	var prev float64
	for n := 1; n <= len(ratings); n++ {
		users, err := Build(cat, ratings[:n], zerolog.Nop())
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		got := users[1].GenrePrefs[comedy]
		if got < prev {
			t.Errorf("comedy preference decreased from %f to %f after %d ratings", prev, got, n)
		}
		prev = got
	}
}

func TestBuildIsSplitIndependent(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)

	train := []dataset.RatingRecord{{UserID: 1, MovieID: 1, Rating: 4.0}}
	test := []dataset.RatingRecord{{UserID: 1, MovieID: 2, Rating: 5.0}}

	trainSet, err := Build(cat, train, zerolog.Nop())
	if err != nil {
		t.Fatalf("Build(train) error = %v", err)
	}
	testSet, err := Build(cat, test, zerolog.Nop())
	if err != nil {
		t.Fatalf("Build(test) error = %v", err)
	}

	// The two builds are independent: each split sees only its own ratings.
	if trainSet[1].HasRated(2) {
		t.Error("training profile contains test rating")
	}
	if testSet[1].HasRated(1) {
		t.Error("testing profile contains training rating")
	}
}
