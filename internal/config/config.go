// Package config loads the application configuration from environment
// variables with an optional YAML file underneath. Environment variables and
// tag defaults win over the file; the file fills whatever they left unset.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix namespaces all environment variables, e.g. LIQREPORT_SERVER_PORT.
const envPrefix = "LIQREPORT"

// Config represents the complete application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server" envconfig:"SERVER"`
	Security    SecurityConfig    `yaml:"security" envconfig:"SECURITY"`
	Logging     LoggingConfig     `yaml:"logging" envconfig:"LOGGING"`
	Sheets      SheetsConfig      `yaml:"sheets" envconfig:"SHEETS"`
	PriceLookup PriceLookupConfig `yaml:"price_lookup" envconfig:"PRICE_LOOKUP"`
	PDF         PDFConfig         `yaml:"pdf" envconfig:"PDF"`
	Environment string            `yaml:"environment" envconfig:"ENVIRONMENT" default:"development"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// SecurityConfig contains CORS and rate limiting configuration.
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"20"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"10"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// SheetsConfig configures the Google Sheets importer. Without an API key the
// sheet endpoint is disabled and CSV/XLSX ingestion still works.
type SheetsConfig struct {
	APIKey       string        `yaml:"api_key" envconfig:"API_KEY"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" envconfig:"FETCH_TIMEOUT" default:"30s"`
}

// PriceLookupConfig configures the market-data client used to price balance
// assets and fetch chart history.
type PriceLookupConfig struct {
	Enabled bool          `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	BaseURL string        `yaml:"base_url" envconfig:"BASE_URL"`
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"15s"`
}

// PDFConfig configures the headless-browser PDF printer.
type PDFConfig struct {
	Enabled bool          `yaml:"enabled" envconfig:"ENABLED" default:"false"`
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"60s"`
}

// Load loads configuration from environment variables and an optional config
// file. The file path comes from LIQREPORT_CONFIG_FILE and defaults to
// config.yaml in the working directory.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	configFile := os.Getenv(envPrefix + "_CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	if data, err := os.ReadFile(configFile); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configFile, err)
		}
		mergeFromFile(&cfg, &fileCfg)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", configFile, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// mergeFromFile fills fields the environment and defaults left empty. Only
// fields without a default tag can come from the file; the rest are already
// set by envconfig.
func mergeFromFile(cfg, fileCfg *Config) {
	if cfg.Sheets.APIKey == "" {
		cfg.Sheets.APIKey = fileCfg.Sheets.APIKey
	}
	if cfg.PriceLookup.BaseURL == "" {
		cfg.PriceLookup.BaseURL = fileCfg.PriceLookup.BaseURL
	}
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Security.RateLimit.Enabled && c.Security.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive, got %v", c.Security.RateLimit.RPS)
	}
	switch c.Logging.Output {
	case "", "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %q", c.Logging.Output)
	}
	return nil
}

// SheetImportEnabled reports whether Google Sheets ingestion is configured.
func (c *Config) SheetImportEnabled() bool {
	return c.Sheets.APIKey != ""
}
