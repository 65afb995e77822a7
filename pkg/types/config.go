// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the catalog-engine
// pipeline: paper records, subject classifications, and per-stage
// configuration.
package types

import "time"

// AIConfig holds shared settings for stages that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL is the API root (default "https://api.openai.com/v1").
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Timeout is the HTTP request timeout (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ExtractionConfig holds settings for the metadata extraction stage.
type ExtractionConfig struct {
	// CacheDir is the root of the on-disk extraction cache
	// (default ".cache/pdf_metadata"). Empty disables caching only when
	// UseCache is false; the directory is created on first use.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`

	// UseCache enables the fingerprint-keyed result cache (default true).
	UseCache bool `json:"use_cache" yaml:"use_cache"`

	// UseVision enables the model-assisted extraction path. It also
	// requires a configured API key; without one the heuristic path runs
	// alone.
	UseVision bool `json:"use_vision" yaml:"use_vision"`

	// MaxWorkers bounds concurrent batch extraction (default 4). The same
	// bound caps in-flight vision calls.
	MaxWorkers int `json:"max_workers" yaml:"max_workers"`

	// MaxPages caps how many pages of text feed metadata mining
	// (default 10; fast mode uses FastMaxPages).
	MaxPages int `json:"max_pages" yaml:"max_pages"`

	// FastMaxPages is the page cap in fast mode (default 3).
	FastMaxPages int `json:"fast_max_pages" yaml:"fast_max_pages"`

	// Vision configures the model-assisted extractor.
	Vision AIConfig `json:"vision" yaml:"vision"`
}

// ClassifierConfig holds settings for the subject classification stage.
type ClassifierConfig struct {
	AIConfig `yaml:",inline"`

	// Categories overrides the default subject taxonomy when non-empty.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// CatalogConfig holds settings for catalog generation.
type CatalogConfig struct {
	// OutputDir is the directory catalog files are written to (default "output").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Formats lists the catalog formats to emit: json, csv, html, yaml.
	// Empty means all.
	Formats []string `json:"formats,omitempty" yaml:"formats,omitempty"`
}

// ScanConfig holds settings for local directory scanning.
type ScanConfig struct {
	// SourceURL, when set, identifies where the scanned PDFs were crawled
	// from; known sources map to authoritative journal names.
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	Classifier ClassifierConfig `json:"classifier" yaml:"classifier"`
	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog"`
	Scan       ScanConfig       `json:"scan" yaml:"scan"`
}
