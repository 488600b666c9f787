package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TITLEWATCH_CATALOG_API_KEY
const EnvPrefix = "TITLEWATCH"

const placeholderAPIKey = "your-api-key-here"

// Load loads the configuration from file and environment. Without an explicit
// path a missing file is not an error, so the API key can come from the
// environment alone.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".titlewatch"))
		}

		// Check /etc
		v.AddConfigPath("/etc/titlewatch/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key is registered so
// AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Catalog defaults
	v.SetDefault("catalog.base_url", "https://api.watchmode.com/v1")
	v.SetDefault("catalog.api_key", "")
	v.SetDefault("catalog.timeout", 15*time.Second)
	v.SetDefault("catalog.rate_limit", 10)
	v.SetDefault("catalog.concurrency", 0)

	// Display defaults
	v.SetDefault("display.limit", 15)
	v.SetDefault("display.show_details", true)
	v.SetDefault("display.load_timeout", 30*time.Second)

	// Filter defaults
	v.SetDefault("filter.default_expression", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog.base_url is required")
	}
	if u, err := url.Parse(cfg.Catalog.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("catalog.base_url must be an http(s) URL: %s", cfg.Catalog.BaseURL)
	}

	if cfg.Catalog.APIKey == "" || cfg.Catalog.APIKey == placeholderAPIKey {
		return fmt.Errorf("catalog.api_key must be set to a valid API key")
	}

	if cfg.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog.timeout must be positive: %s", cfg.Catalog.Timeout)
	}
	if cfg.Catalog.RateLimit < 0 {
		return fmt.Errorf("catalog.rate_limit must not be negative: %d", cfg.Catalog.RateLimit)
	}
	if cfg.Catalog.Concurrency < 0 {
		return fmt.Errorf("catalog.concurrency must not be negative: %d", cfg.Catalog.Concurrency)
	}

	if cfg.Display.Limit < 1 {
		return fmt.Errorf("display.limit must be at least 1: %d", cfg.Display.Limit)
	}
	if cfg.Display.LoadTimeout < 0 {
		return fmt.Errorf("display.load_timeout must not be negative: %s", cfg.Display.LoadTimeout)
	}

	for name, preset := range cfg.Filter.Presets {
		if strings.TrimSpace(preset.Expression) == "" {
			return fmt.Errorf("filter.presets.%s.expression is required", name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
