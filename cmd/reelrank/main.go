// Reelrank - Movie Recommendation Engine and Offline Evaluator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package main is the entry point for the Reelrank command-line tool.
//
// Reelrank is a batch movie recommender and offline evaluator. It loads a
// movie catalog and user ratings from CSV files, builds genre-based user
// profiles, and produces ranked recommendation lists via content-based,
// collaborative, or hybrid strategies. In evaluation mode it holds out a
// fraction of ratings and reports precision, recall, and F-measure against
// the held-out set.
//
// # Application Flow
//
// The tool initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Dataset: Parse movie and rating CSV files
//  3. Catalog: Build the genre vocabulary and per-movie genre vectors
//  4. Profiles: Build per-user genre preference vectors from ratings
//  5. Engine: Construct the recommendation engine with a bounded worker pool
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (REELRANK_ prefix)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Example Usage
//
// Recommend 10 movies for user 42 with the hybrid strategy:
//
//	reelrank -mode recommend -user 42
//
// Evaluate the collaborative strategy for every test user, emitting JSON:
//
//	REELRANK_EVALUATION_STRATEGY=collaborative reelrank -mode evaluate -json
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelrank/internal/catalog"
	"github.com/tomtom215/reelrank/internal/config"
	"github.com/tomtom215/reelrank/internal/dataset"
	"github.com/tomtom215/reelrank/internal/evaluate"
	"github.com/tomtom215/reelrank/internal/logging"
	"github.com/tomtom215/reelrank/internal/profile"
	"github.com/tomtom215/reelrank/internal/recommend"
)

type cliFlags struct {
	mode     string
	userID   int
	strategy string
	limit    int
	jsonOut  bool
}

func main() {
	flags := parseFlags()

	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	if flags.strategy != "" {
		cfg.Evaluation.Strategy = flags.strategy
	}
	if flags.limit >= 0 {
		cfg.Engine.Limit = flags.limit
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, flags, os.Stdout); err != nil {
		logging.Fatal().Err(err).Msg("Run failed")
	}
}

func parseFlags() cliFlags {
	var flags cliFlags
	flag.StringVar(&flags.mode, "mode", "recommend", "operation mode: recommend or evaluate")
	flag.IntVar(&flags.userID, "user", 0, "user ID to recommend for or evaluate (0 = all users in evaluate mode)")
	flag.StringVar(&flags.strategy, "strategy", "", "strategy override: content, collaborative, or hybrid")
	flag.IntVar(&flags.limit, "limit", -1, "recommendation list size override (0 = full ranking)")
	flag.BoolVar(&flags.jsonOut, "json", false, "emit JSON instead of a table")
	flag.Parse()
	return flags
}

func run(ctx context.Context, cfg *config.Config, flags cliFlags, out io.Writer) error {
	logger := logging.Logger()

	movies, err := dataset.LoadMovies(cfg.Dataset.MoviesPath)
	if err != nil {
		return fmt.Errorf("load movies: %w", err)
	}

	ratings, err := dataset.LoadRatings(cfg.Dataset.RatingsPath)
	if err != nil {
		return fmt.Errorf("load ratings: %w", err)
	}

	logger.Info().
		Int("movies", len(movies)).
		Int("ratings", len(ratings)).
		Str("mode", flags.mode).
		Msg("Dataset loaded")

	cat, err := catalog.Build(movies)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	switch flags.mode {
	case "recommend":
		return runRecommend(ctx, cfg, flags, cat, ratings, logger, out)
	case "evaluate":
		return runEvaluate(ctx, cfg, flags, cat, ratings, logger, out)
	default:
		return fmt.Errorf("unknown mode %q (want recommend or evaluate)", flags.mode)
	}
}

// runRecommend trains on the full rating set and prints a ranked list for a
// single user.
func runRecommend(ctx context.Context, cfg *config.Config, flags cliFlags,
	cat *catalog.Catalog, ratings []dataset.RatingRecord,
	logger zerolog.Logger, out io.Writer,
) error {
	if flags.userID <= 0 {
		return fmt.Errorf("recommend mode requires -user")
	}

	users, err := profile.Build(cat, ratings, logger)
	if err != nil {
		return fmt.Errorf("build profiles: %w", err)
	}

	engine := recommend.NewEngine(cat, users, recommend.Config{
		NumWorkers: cfg.Engine.NumWorkers,
	}, logger)

	strategy, err := buildStrategy(cfg)
	if err != nil {
		return err
	}

	ranking, err := rank(ctx, engine, flags.userID, strategy)
	if err != nil {
		return fmt.Errorf("recommend for user %d: %w", flags.userID, err)
	}

	if flags.jsonOut {
		return writeJSON(out, ranking)
	}
	return writeRankingTable(out, cat, ranking)
}

// runEvaluate splits the ratings into train and test sets and reports
// precision, recall, and F-measure.
func runEvaluate(ctx context.Context, cfg *config.Config, flags cliFlags,
	cat *catalog.Catalog, ratings []dataset.RatingRecord,
	logger zerolog.Logger, out io.Writer,
) error {
	train, test := dataset.SplitRatings(ratings, cfg.Dataset.TestFraction, cfg.Dataset.Seed)

	logger.Info().
		Int("train", len(train)).
		Int("test", len(test)).
		Float64("test_fraction", cfg.Dataset.TestFraction).
		Int64("seed", cfg.Dataset.Seed).
		Msg("Split ratings")

	trainUsers, err := profile.Build(cat, train, logger)
	if err != nil {
		return fmt.Errorf("build train profiles: %w", err)
	}

	testUsers, err := profile.Build(cat, test, logger)
	if err != nil {
		return fmt.Errorf("build test profiles: %w", err)
	}

	engine := recommend.NewEngine(cat, trainUsers, recommend.Config{
		NumWorkers: cfg.Engine.NumWorkers,
	}, logger)
	evaluator := evaluate.NewEvaluator(engine, testUsers, logger)

	strategy, err := buildStrategy(cfg)
	if err != nil {
		return err
	}

	var reports []*evaluate.Report
	if flags.userID > 0 {
		report, err := evaluator.Evaluate(ctx, flags.userID, strategy)
		if err != nil {
			return fmt.Errorf("evaluate user %d: %w", flags.userID, err)
		}
		reports = []*evaluate.Report{report}
	} else {
		reports, err = evaluator.EvaluateAll(ctx, strategy)
		if err != nil {
			return fmt.Errorf("evaluate all users: %w", err)
		}
	}

	if flags.jsonOut {
		return writeJSON(out, reports)
	}
	return writeReportTable(out, reports)
}

// buildStrategy maps the configured strategy name to its typed parameters.
func buildStrategy(cfg *config.Config) (evaluate.Strategy, error) {
	switch cfg.Evaluation.Strategy {
	case "content":
		return evaluate.ContentBased{Limit: cfg.Engine.Limit}, nil
	case "collaborative":
		return evaluate.Collaborative{
			Limit:           cfg.Engine.Limit,
			TopSimilarUsers: cfg.Engine.TopSimilarUsers,
		}, nil
	case "hybrid":
		return evaluate.Hybrid{
			Limit:           cfg.Engine.Limit,
			ContentWeight:   cfg.Engine.ContentWeight,
			CollabWeight:    cfg.Engine.CollabWeight,
			TopSimilarUsers: cfg.Engine.TopSimilarUsers,
		}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", cfg.Evaluation.Strategy)
	}
}

func rank(ctx context.Context, engine *recommend.Engine, userID int, strategy evaluate.Strategy) ([]recommend.ScoredMovie, error) {
	switch s := strategy.(type) {
	case evaluate.ContentBased:
		return engine.ContentBased(ctx, userID, s.Limit)
	case evaluate.Collaborative:
		return engine.Collaborative(ctx, userID, s.Limit, s.TopSimilarUsers)
	case evaluate.Hybrid:
		return engine.Hybrid(ctx, userID, s.Limit, s.ContentWeight, s.CollabWeight, s.TopSimilarUsers)
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy.Name())
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRankingTable(out io.Writer, cat *catalog.Catalog, ranking []recommend.ScoredMovie) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tMOVIE\tTITLE\tSCORE")
	for i, sm := range ranking {
		title := ""
		if movie, ok := cat.Movie(sm.MovieID); ok {
			title = movie.Title
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%.4f\n", i+1, sm.MovieID, title, sm.Score)
	}
	return w.Flush()
}

func writeReportTable(out io.Writer, reports []*evaluate.Report) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USER\tSTRATEGY\tPRECISION\tRECALL\tF-MEASURE")
	for _, r := range reports {
		fmt.Fprintf(w, "%d\t%s\t%.4f\t%.4f\t%.4f\n", r.UserID, r.Strategy, r.Precision, r.Recall, r.FMeasure)
	}
	return w.Flush()
}
