package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func validConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL: "https://api.watchmode.com/v1",
			APIKey:  "valid-api-key",
			Timeout: 15 * time.Second,
		},
		Display: DisplayConfig{Limit: 15},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
catalog:
  api_key: abc123
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.watchmode.com/v1", cfg.Catalog.BaseURL)
	assert.Equal(t, "abc123", cfg.Catalog.APIKey)
	assert.Equal(t, 15*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 10, cfg.Catalog.RateLimit)
	assert.Zero(t, cfg.Catalog.Concurrency)
	assert.Equal(t, 15, cfg.Display.Limit)
	assert.True(t, cfg.Display.ShowDetails)
	assert.Equal(t, 30*time.Second, cfg.Display.LoadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
catalog:
  base_url: http://localhost:8080/v1
  api_key: abc123
  timeout: 5s
  rate_limit: 3
  concurrency: 4
display:
  limit: 5
  show_details: false
  load_timeout: 1m
filter:
  default_expression: UserRating > 6
  presets:
    acclaimed:
      expression: UserRating >= 8.5
      description: Highly rated titles
    recent:
      expression: Year >= 2020
logging:
  level: debug
  format: json
  color: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/v1", cfg.Catalog.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 3, cfg.Catalog.RateLimit)
	assert.Equal(t, 4, cfg.Catalog.Concurrency)
	assert.Equal(t, 5, cfg.Display.Limit)
	assert.False(t, cfg.Display.ShowDetails)
	assert.Equal(t, time.Minute, cfg.Display.LoadTimeout)
	assert.Equal(t, "UserRating > 6", cfg.Filter.DefaultExpression)
	assert.Equal(t, map[string]string{
		"acclaimed": "UserRating >= 8.5",
		"recent":    "Year >= 2020",
	}, cfg.Filter.PresetExpressions())
	assert.Equal(t, "Highly rated titles", cfg.Filter.Presets["acclaimed"].Description)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Logging.Color)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
catalog:
  api_key: from-file
display:
  limit: 5
`)
	t.Setenv("TITLEWATCH_CATALOG_API_KEY", "from-env")
	t.Setenv("TITLEWATCH_DISPLAY_LIMIT", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Catalog.APIKey)
	assert.Equal(t, 7, cfg.Display.Limit)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	t.Run("api key from environment", func(t *testing.T) {
		t.Setenv("TITLEWATCH_CATALOG_API_KEY", "from-env")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Catalog.APIKey)
	})

	t.Run("no api key", func(t *testing.T) {
		_, err := Load("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "catalog.api_key")
	})
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.Catalog.BaseURL = "" },
			wantErr: "catalog.base_url is required",
		},
		{
			name:    "base url without scheme",
			mutate:  func(c *Config) { c.Catalog.BaseURL = "api.watchmode.com" },
			wantErr: "catalog.base_url must be an http(s) URL",
		},
		{
			name:    "placeholder api key",
			mutate:  func(c *Config) { c.Catalog.APIKey = "your-api-key-here" },
			wantErr: "catalog.api_key",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Catalog.Timeout = 0 },
			wantErr: "catalog.timeout",
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.Catalog.RateLimit = -1 },
			wantErr: "catalog.rate_limit",
		},
		{
			name:    "negative concurrency",
			mutate:  func(c *Config) { c.Catalog.Concurrency = -2 },
			wantErr: "catalog.concurrency",
		},
		{
			name:    "zero limit",
			mutate:  func(c *Config) { c.Display.Limit = 0 },
			wantErr: "display.limit",
		},
		{
			name:    "negative load timeout",
			mutate:  func(c *Config) { c.Display.LoadTimeout = -time.Second },
			wantErr: "display.load_timeout",
		},
		{
			name: "empty preset",
			mutate: func(c *Config) {
				c.Filter.Presets = map[string]PresetConfig{"broken": {Description: "no expression"}}
			},
			wantErr: "filter.presets.broken.expression",
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "invalid logging level: trace",
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
