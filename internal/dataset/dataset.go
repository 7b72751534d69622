// Reelrank - Movie Recommendation Engine and Offline Evaluator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package dataset loads MovieLens-style CSV files into typed records.
//
// Two files are consumed: a movie file (movieId,title,genres with genres
// pipe-delimited) and a ratings file (userId,movieId,rating[,timestamp]).
// Both are expected to carry a single header row. A malformed row aborts the
// whole load with a *ParseError; downstream vocabulary and vector construction
// depends on having seen every record, so partial loads are never usable.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// MovieRecord is one raw movie row. Genres is kept as the raw pipe-delimited
// string; splitting and sentinel filtering belong to the catalog.
type MovieRecord struct {
	ID     int
	Title  string
	Genres string
}

// RatingRecord is one raw rating row. Timestamps are discarded on load.
type RatingRecord struct {
	UserID  int
	MovieID int
	Rating  float64
}

// ParseError reports a malformed CSV row.
type ParseError struct {
	Path   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s:%d: %s", e.Path, e.Line, e.Reason)
}

// LoadMovies reads a movie CSV file. The first row is treated as a header and
// skipped. Each remaining row must have at least three fields with an integer
// movie ID.
func LoadMovies(path string) ([]MovieRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open movies: %w", err)
	}
	defer f.Close()

	return ReadMovies(f, path)
}

// ReadMovies parses movie records from r. The path is used only for error
// reporting.
func ReadMovies(r io.Reader, path string) ([]MovieRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // validated per row for precise errors

	var movies []MovieRecord
	line := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Path: path, Line: line + 1, Reason: err.Error()}
		}
		line++

		if line == 1 {
			continue // header
		}

		if len(row) < 3 {
			return nil, &ParseError{Path: path, Line: line, Reason: fmt.Sprintf("want 3 fields, got %d", len(row))}
		}

		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Reason: fmt.Sprintf("movie id %q is not an integer", row[0])}
		}

		movies = append(movies, MovieRecord{
			ID:     id,
			Title:  row[1],
			Genres: row[2],
		})
	}

	return movies, nil
}

// LoadRatings reads a rating CSV file. The first row is treated as a header
// and skipped. Each remaining row must have at least three fields: integer
// user ID, integer movie ID, and a float rating. A trailing timestamp field
// is ignored.
func LoadRatings(path string) ([]RatingRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ratings: %w", err)
	}
	defer f.Close()

	return ReadRatings(f, path)
}

// ReadRatings parses rating records from r. The path is used only for error
// reporting.
func ReadRatings(r io.Reader, path string) ([]RatingRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var ratings []RatingRecord
	line := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Path: path, Line: line + 1, Reason: err.Error()}
		}
		line++

		if line == 1 {
			continue // header
		}

		if len(row) < 3 {
			return nil, &ParseError{Path: path, Line: line, Reason: fmt.Sprintf("want 3 fields, got %d", len(row))}
		}

		userID, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Reason: fmt.Sprintf("user id %q is not an integer", row[0])}
		}

		movieID, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Reason: fmt.Sprintf("movie id %q is not an integer", row[1])}
		}

		rating, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Reason: fmt.Sprintf("rating %q is not a number", row[2])}
		}

		ratings = append(ratings, RatingRecord{
			UserID:  userID,
			MovieID: movieID,
			Rating:  rating,
		})
	}

	return ratings, nil
}

// SplitRatings partitions ratings into training and testing slices. Each
// record lands in the test slice with probability testFraction; the split is
// deterministic for a fixed seed. The input slice is not modified.
func SplitRatings(ratings []RatingRecord, testFraction float64, seed int64) (train, test []RatingRecord) {
	if testFraction <= 0 {
		train = append(train, ratings...)
		return train, nil
	}
	if testFraction >= 1 {
		test = append(test, ratings...)
		return nil, test
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic split, not security-sensitive

	for _, r := range ratings {
		if rng.Float64() < testFraction {
			test = append(test, r)
		} else {
			train = append(train, r)
		}
	}

	return train, test
}
