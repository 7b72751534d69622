// Reelrank - Movie Recommendation Engine and Offline Evaluator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package catalog holds the movie catalog and the genre vocabulary derived
// from it.
//
// Construction is a two-phase process: first the vocabulary is built as the
// sorted set union of every movie's genre labels, then each movie is assigned
// a dense binary genre vector indexed by that vocabulary. A movie genre token
// absent from the vocabulary cannot occur by construction. Catalog and
// vocabulary are immutable after Build returns; no locking is needed because
// there is no concurrent writer.
package catalog

import (
	"fmt"
	"strings"

	"github.com/tomtom215/reelrank/internal/dataset"
)

// SentinelNoGenres is the literal token MovieLens uses for movies without
// genre information. It is discarded during catalog construction; a movie may
// end up with zero genres.
const SentinelNoGenres = "(no genres listed)"

// Movie is a catalog entry with its derived genre vector.
type Movie struct {
	// ID is the externally assigned unique movie identifier.
	ID int

	// Title is the display title.
	Title string

	// Genres is the list of distinct non-sentinel genre labels.
	Genres []string

	// GenreVector is the dense binary genre vector: 1 at index i when the
	// movie carries the vocabulary's i-th genre, 0 otherwise. Populated once
	// after the vocabulary is finalized.
	GenreVector []float64
}

// Catalog is the immutable movie catalog plus its genre vocabulary.
type Catalog struct {
	movies map[int]*Movie
	vocab  *Vocabulary
}

// DuplicateMovieError reports two records carrying the same movie ID.
type DuplicateMovieError struct {
	MovieID int
}

func (e *DuplicateMovieError) Error() string {
	return fmt.Sprintf("duplicate movie id %d", e.MovieID)
}

// Build constructs a catalog from raw movie records. Genre tokens are
// whitespace-trimmed and the sentinel token is dropped. Any construction
// error aborts the whole load; a partial catalog is never usable because the
// vocabulary depends on having seen every record.
func Build(records []dataset.MovieRecord) (*Catalog, error) {
	movies := make(map[int]*Movie, len(records))
	labels := make(map[string]struct{})

	for _, rec := range records {
		if _, exists := movies[rec.ID]; exists {
			return nil, &DuplicateMovieError{MovieID: rec.ID}
		}

		genres := splitGenres(rec.Genres)
		for _, g := range genres {
			labels[g] = struct{}{}
		}

		movies[rec.ID] = &Movie{
			ID:     rec.ID,
			Title:  rec.Title,
			Genres: genres,
		}
	}

	vocab := newVocabulary(labels)

	for _, movie := range movies {
		vec := make([]float64, vocab.Len())
		for _, g := range movie.Genres {
			i, ok := vocab.Index(g)
			if !ok {
				// Unreachable: the vocabulary is the union of all movie genres.
				return nil, fmt.Errorf("genre %q missing from vocabulary", g)
			}
			vec[i] = 1
		}
		movie.GenreVector = vec
	}

	return &Catalog{movies: movies, vocab: vocab}, nil
}

// splitGenres splits a pipe-delimited genre string into trimmed, de-duplicated
// labels, dropping empties and the sentinel.
func splitGenres(raw string) []string {
	var genres []string
	seen := make(map[string]struct{})

	for _, token := range strings.Split(raw, "|") {
		token = strings.TrimSpace(token)
		if token == "" || token == SentinelNoGenres {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		genres = append(genres, token)
	}

	return genres
}

// Movie returns the movie with the given ID.
func (c *Catalog) Movie(id int) (*Movie, bool) {
	m, ok := c.movies[id]
	return m, ok
}

// Movies returns the movie map keyed by ID. Callers must treat it as
// read-only.
func (c *Catalog) Movies() map[int]*Movie {
	return c.movies
}

// Len returns the number of movies in the catalog.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// Vocabulary returns the genre vocabulary.
func (c *Catalog) Vocabulary() *Vocabulary {
	return c.vocab
}
