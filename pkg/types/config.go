package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "leakhound/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for querying the Offshore Leaks database.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of results to keep after filtering
	// (default 20, valid range 5-100).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// MaxRetries is the retry budget for rate-limited requests (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// HistoryConfig holds settings for the search history store.
type HistoryConfig struct {
	// Path is the SQLite database file (default "leakhound.db").
	Path string `json:"path" yaml:"path"`

	// Recent is the default number of history entries to list (default 15).
	Recent int `json:"recent" yaml:"recent"`
}

// ExportConfig holds settings for result export files.
type ExportConfig struct {
	// Dir is the directory export files are written to (default ".").
	Dir string `json:"dir" yaml:"dir"`
}

// Config groups all stage configurations.
type Config struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	History HistoryConfig `json:"history" yaml:"history"`
	Export  ExportConfig  `json:"export" yaml:"export"`
}
