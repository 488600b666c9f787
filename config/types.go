package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Display DisplayConfig `mapstructure:"display"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig holds Watchmode API connection details
type CatalogConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
	// RateLimit is the number of requests per second, 0 disables limiting
	RateLimit int `mapstructure:"rate_limit"`
	// Concurrency caps parallel details requests, 0 means one per listed title
	Concurrency int `mapstructure:"concurrency"`
}

// DisplayConfig contains list and details view settings
type DisplayConfig struct {
	Limit       int           `mapstructure:"limit"`
	ShowDetails bool          `mapstructure:"show_details"`
	LoadTimeout time.Duration `mapstructure:"load_timeout"`
}

// FilterConfig contains filter definitions
type FilterConfig struct {
	DefaultExpression string                  `mapstructure:"default_expression"`
	Presets           map[string]PresetConfig `mapstructure:"presets"`
}

// PresetConfig is a named filter expression
type PresetConfig struct {
	Expression  string `mapstructure:"expression"`
	Description string `mapstructure:"description"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// PresetExpressions returns the preset expressions keyed by name
func (f FilterConfig) PresetExpressions() map[string]string {
	out := make(map[string]string, len(f.Presets))
	for name, preset := range f.Presets {
		out[name] = preset.Expression
	}
	return out
}
