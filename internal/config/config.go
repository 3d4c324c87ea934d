// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/jonathan/application-tailor/internal/artifacts"
	"github.com/jonathan/application-tailor/internal/llm"
	"github.com/jonathan/application-tailor/internal/types"
)

// Environment variables consulted when the matching setting is empty.
const (
	EnvAPIKey      = "GEMINI_API_KEY"
	EnvDatabaseURL = "DATABASE_URL"
	EnvChromePath  = "CHROME_PATH"
)

// Config represents the CLI configuration that can be loaded from a JSON or TOML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Storage
	DatabaseURL string `json:"database_url,omitempty" toml:"database_url,omitempty"` // PostgreSQL connection URL
	SQLitePath  string `json:"sqlite_path,omitempty" toml:"sqlite_path,omitempty"`   // Used when no database URL is set

	// Generation
	APIKey            string            `json:"api_key,omitempty" toml:"api_key,omitempty"`                         // Gemini API key
	Models            map[string]string `json:"models,omitempty" toml:"models,omitempty"`                           // Model per tier (lite, standard, advanced)
	RequestsPerSecond float64           `json:"requests_per_second,omitempty" toml:"requests_per_second,omitempty"` // 0 disables throttling
	Burst             int               `json:"burst,omitempty" toml:"burst,omitempty"`
	Concurrency       int               `json:"concurrency,omitempty" toml:"concurrency,omitempty"` // Parallel field rewrites

	// Template defaults
	Locale       string `json:"locale,omitempty" toml:"locale,omitempty"`
	Style        string `json:"style,omitempty" toml:"style,omitempty"`
	Compliant    bool   `json:"compliant,omitempty" toml:"compliant,omitempty"`
	IncludePhoto bool   `json:"include_photo,omitempty" toml:"include_photo,omitempty"`

	// Rendering and output
	ChromePath   string              `json:"chrome_path,omitempty" toml:"chrome_path,omitempty"`
	OutputDir    string              `json:"output_dir,omitempty" toml:"output_dir,omitempty"`
	PreviewScale float64             `json:"preview_scale,omitempty" toml:"preview_scale,omitempty"`
	S3           *artifacts.S3Config `json:"s3,omitempty" toml:"s3,omitempty"` // Store downloads in S3 instead of OutputDir

	// Server
	Port int `json:"port,omitempty" toml:"port,omitempty"`

	// Behavior
	Verbose   bool   `json:"verbose,omitempty" toml:"verbose,omitempty"`       // Print detailed debug information
	LogFormat string `json:"log_format,omitempty" toml:"log_format,omitempty"` // text or json
}

// Defaults returns the values used for settings left empty.
func Defaults() Config {
	return Config{
		SQLitePath:   "application-tailor.db",
		Burst:        1,
		Concurrency:  4,
		Locale:       string(types.LocaleDE),
		Style:        string(types.StyleFormal),
		OutputDir:    "out",
		PreviewScale: 1.5,
		Port:         8080,
		LogFormat:    "text",
	}
}

// LoadConfig loads configuration from a JSON file, or a TOML file when the name ends in .toml.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
		return &cfg, nil
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate numeric ranges
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("config error: 'requests_per_second' must be non-negative")
	}
	if c.Burst < 0 {
		return fmt.Errorf("config error: 'burst' must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.PreviewScale != 0 && (c.PreviewScale < 0.5 || c.PreviewScale > 4) {
		return fmt.Errorf("config error: 'preview_scale' must be between 0.5 and 4")
	}

	// Validate enumerations
	if c.Locale != "" && c.Locale != string(types.LocaleDE) && c.Locale != string(types.LocaleEN) {
		return fmt.Errorf("config error: unsupported locale %q", c.Locale)
	}
	if c.Style != "" && c.Style != string(types.StyleFormal) && c.Style != string(types.StyleEnhanced) {
		return fmt.Errorf("config error: unsupported style %q", c.Style)
	}
	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("config error: 'log_format' must be text or json")
	}
	for tier := range c.Models {
		if _, err := llm.ParseTier(tier); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if c.S3 != nil && c.S3.Bucket == "" {
		return fmt.Errorf("config error: 's3.bucket' is required when s3 is configured")
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SQLitePath == "" {
		result.SQLitePath = defaults.SQLitePath
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Locale == "" {
		result.Locale = defaults.Locale
	}
	if result.Style == "" {
		result.Style = defaults.Style
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Numeric fields: use default if zero
	if result.RequestsPerSecond == 0 {
		result.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if result.Burst == 0 {
		result.Burst = defaults.Burst
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.PreviewScale == 0 {
		result.PreviewScale = defaults.PreviewScale
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if len(result.Models) == 0 && len(defaults.Models) > 0 {
		result.Models = make(map[string]string, len(defaults.Models))
		for k, v := range defaults.Models {
			result.Models[k] = v
		}
	}
	if result.S3 == nil && defaults.S3 != nil {
		s3 := *defaults.S3
		result.S3 = &s3
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv fills the API key, database URL and Chrome path from the environment when empty.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if c.APIKey == "" {
		c.APIKey = getenv(EnvAPIKey)
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = getenv(EnvDatabaseURL)
	}
	if c.ChromePath == "" {
		c.ChromePath = getenv(EnvChromePath)
	}
}

// LLMConfig returns the generation settings with configured model overrides applied.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	for tier, model := range c.Models {
		if model != "" {
			cfg = cfg.WithModel(llm.ModelTier(tier), model)
		}
	}
	cfg.RequestsPerSecond = c.RequestsPerSecond
	cfg.Burst = c.Burst
	return cfg
}

// Template returns the default document template.
func (c *Config) Template() types.Template {
	return types.Template{
		Locale:       types.Locale(c.Locale),
		Style:        types.Style(c.Style),
		Compliant:    c.Compliant,
		IncludePhoto: c.IncludePhoto,
	}
}
