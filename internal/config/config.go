// Reelrank - Movie Recommendation Engine and Offline Evaluator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package config loads Reelrank configuration using Koanf v2 with layered
// sources (highest priority wins):
//
//  1. Environment variables (REELRANK_ prefix, e.g. REELRANK_ENGINE_NUM_WORKERS)
//  2. Config file (config.yaml, or CONFIG_PATH)
//  3. Built-in defaults
//
// The merged configuration is validated with go-playground/validator struct
// tags before it is handed to any component.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelrank/config.yaml",
	"/etc/reelrank/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config
// file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix namespaces Reelrank environment variables.
const envPrefix = "REELRANK_"

// Config is the full application configuration.
type Config struct {
	// Dataset holds input file locations and split parameters.
	Dataset DatasetConfig `koanf:"dataset"`

	// Engine holds recommendation engine parameters.
	Engine EngineConfig `koanf:"engine"`

	// Evaluation holds offline evaluation parameters.
	Evaluation EvaluationConfig `koanf:"evaluation"`

	// Logging holds log level and format.
	Logging LoggingConfig `koanf:"logging"`
}

// DatasetConfig holds input file locations and the train/test split.
type DatasetConfig struct {
	// MoviesPath is the movie CSV file.
	MoviesPath string `koanf:"movies_path" validate:"required"`

	// RatingsPath is the rating CSV file.
	RatingsPath string `koanf:"ratings_path" validate:"required"`

	// TestFraction is the share of ratings held out for evaluation.
	TestFraction float64 `koanf:"test_fraction" validate:"gte=0,lt=1"`

	// Seed makes the split deterministic.
	Seed int64 `koanf:"seed"`
}

// EngineConfig holds recommendation engine parameters.
type EngineConfig struct {
	// NumWorkers bounds the similarity worker pool.
	NumWorkers int `koanf:"num_workers" validate:"gte=1,lte=256"`

	// Limit is the default recommendation list size; 0 means the full
	// ranking.
	Limit int `koanf:"limit" validate:"gte=0"`

	// TopSimilarUsers is the collaborative neighborhood size.
	TopSimilarUsers int `koanf:"top_similar_users" validate:"gte=1"`

	// ContentWeight scales the content-based score in the hybrid strategy.
	ContentWeight float64 `koanf:"content_weight" validate:"gt=0"`

	// CollabWeight scales the collaborative score in the hybrid strategy.
	CollabWeight float64 `koanf:"collab_weight" validate:"gt=0"`
}

// EvaluationConfig holds offline evaluation parameters.
type EvaluationConfig struct {
	// Strategy selects the evaluated algorithm: content, collaborative, or
	// hybrid.
	Strategy string `koanf:"strategy" validate:"oneof=content collaborative hybrid"`
}

// LoggingConfig holds log level and format.
type LoggingConfig struct {
	// Level is the minimum log level.
	Level string `koanf:"level" validate:"oneof=trace debug info warn error fatal disabled"`

	// Format is json or console.
	Format string `koanf:"format" validate:"oneof=json console"`
}

// Default returns a Config with all default values applied.
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			MoviesPath:   "data/movies.csv",
			RatingsPath:  "data/ratings.csv",
			TestFraction: 0.2,
			Seed:         42,
		},
		Engine: EngineConfig{
			NumWorkers:      4,
			Limit:           10,
			TopSimilarUsers: 25,
			ContentWeight:   0.5,
			CollabWeight:    0.5,
		},
		Evaluation: EvaluationConfig{
			Strategy: "hybrid",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// REELRANK_ENGINE_NUM_WORKERS -> engine.num_workers
	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("field %s failed %q validation", first.Namespace(), first.Tag())
		}
		return err
	}
	return nil
}

// findConfigFile searches for a config file, honoring CONFIG_PATH first.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransform maps an environment variable name to a koanf path. The first
// underscore after the prefix separates the section from the key:
// REELRANK_DATASET_MOVIES_PATH -> dataset.movies_path.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return key
	}
	return parts[0] + "." + parts[1]
}
