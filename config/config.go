/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config persists tracing parameters to YAML and layers
// environment overrides on top. Presets distributed as JSON packs are
// validated against an embedded schema before use.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"rastervec/pipeline"
)

// Tracing is the user-editable parameter set for one vectorization
// profile.
type Tracing struct {
	SimilarityShift     int     `yaml:"similarity_shift" json:"similarity_shift"`
	SimilarityThreshold int     `yaml:"similarity_threshold" json:"similarity_threshold"`
	MinArea             int     `yaml:"min_area" json:"min_area"`
	MergeDiff           int     `yaml:"merge_diff" json:"merge_diff"`
	Tolerance           float64 `yaml:"tolerance" json:"tolerance"`
	CornerThreshold     float64 `yaml:"corner_threshold" json:"corner_threshold"`
	Workers             int     `yaml:"workers" json:"workers"`
}

// Config is the persisted configuration file.
type Config struct {
	ConfigVersion int     `yaml:"config_version"`
	Tracing       Tracing `yaml:"tracing"`
}

// Defaults returns the tracing defaults, matching
// pipeline.DefaultOptions.
func Defaults() Config {
	o := pipeline.DefaultOptions()
	return Config{
		ConfigVersion: 1,
		Tracing: Tracing{
			SimilarityShift:     int(o.SimilarityShift),
			SimilarityThreshold: o.SimilarityThreshold,
			MinArea:             o.MinArea,
			MergeDiff:           o.MergeDiff,
			Tolerance:           o.Tolerance,
			CornerThreshold:     o.CornerThreshold,
			Workers:             o.Workers,
		},
	}
}

// Env var names used as overrides.
const (
	EnvSimilarityShift     = "RV_SIMILARITY_SHIFT"
	EnvSimilarityThreshold = "RV_SIMILARITY_THRESHOLD"
	EnvMinArea             = "RV_MIN_AREA"
	EnvMergeDiff           = "RV_MERGE_DIFF"
	EnvTolerance           = "RV_TOLERANCE"
	EnvCornerThreshold     = "RV_CORNER_THRESHOLD"
	EnvWorkers             = "RV_WORKERS"
)

// Options converts the tracing section into pipeline options.
func (t Tracing) Options() pipeline.Options {
	shift := t.SimilarityShift
	if shift < 0 {
		shift = 0
	}
	return pipeline.Options{
		SimilarityShift:     uint(shift),
		SimilarityThreshold: t.SimilarityThreshold,
		MinArea:             t.MinArea,
		MergeDiff:           t.MergeDiff,
		Tolerance:           t.Tolerance,
		CornerThreshold:     t.CornerThreshold,
		Workers:             t.Workers,
	}
}

// Load reads the config file at path (if present), applies defaults
// for missing values, and merges environment overrides. A missing file
// is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, err
		}
		mergeInto(&cfg, &fileCfg)
	} else if !os.IsNotExist(err) {
		return cfg, err
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the config YAML, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *Config, src *Config) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	mergeTracing(&dst.Tracing, &src.Tracing)
}

// mergeTracing copies the fields the file actually set. Zero is a
// meaningful value for most knobs here, so absence is approximated by
// the zero value only where the default is non-zero.
func mergeTracing(dst *Tracing, src *Tracing) {
	if src.SimilarityShift != 0 {
		dst.SimilarityShift = src.SimilarityShift
	}
	if src.SimilarityThreshold != 0 {
		dst.SimilarityThreshold = src.SimilarityThreshold
	}
	if src.MinArea != 0 {
		dst.MinArea = src.MinArea
	}
	if src.MergeDiff != 0 {
		dst.MergeDiff = src.MergeDiff
	}
	if src.Tolerance != 0 {
		dst.Tolerance = src.Tolerance
	}
	if src.CornerThreshold != 0 {
		dst.CornerThreshold = src.CornerThreshold
	}
	if src.Workers != 0 {
		dst.Workers = src.Workers
	}
}

func applyEnvOverrides(cfg *Config) {
	envInt(EnvSimilarityShift, &cfg.Tracing.SimilarityShift)
	envInt(EnvSimilarityThreshold, &cfg.Tracing.SimilarityThreshold)
	envInt(EnvMinArea, &cfg.Tracing.MinArea)
	envInt(EnvMergeDiff, &cfg.Tracing.MergeDiff)
	envFloat(EnvTolerance, &cfg.Tracing.Tolerance)
	envFloat(EnvCornerThreshold, &cfg.Tracing.CornerThreshold)
	envInt(EnvWorkers, &cfg.Tracing.Workers)
}

func envInt(key string, dst *int) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envFloat(key string, dst *float64) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
