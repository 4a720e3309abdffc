package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the quote fetcher.
type Config struct {
	// Quote site access
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`

	// Transport behaviour
	RetryCount        int     `mapstructure:"retry_count"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`

	// Items to fetch
	Tickers []string `mapstructure:"tickers"`

	// Output and logging
	Output   string `mapstructure:"output"`
	LogLevel string `mapstructure:"log_level"`
}

var (
	validOutputs   = []string{"text", "json"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

// Load reads configuration from environment variables and optional config file.
// Environment variables take precedence over config file values.
//
// Recognized environment variables:
//   - QUOTE_BASE_URL (optional, defaults to https://finance.yahoo.com/)
//   - QUOTE_USER_AGENT (optional)
//   - QUOTE_TIMEOUT (optional, e.g. 15s)
//   - QUOTE_RETRY_COUNT (optional, defaults to 3)
//   - QUOTE_REQUESTS_PER_SECOND (optional, 0 disables pacing)
//   - QUOTE_TICKERS (optional, space or comma separated)
//   - QUOTE_OUTPUT (optional, text or json)
//   - QUOTE_LOG_LEVEL (optional, debug, info, warn or error)
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("QUOTE")
	v.AutomaticEnv()

	v.SetDefault("base_url", "https://finance.yahoo.com/")
	v.SetDefault("user_agent", "")
	v.SetDefault("timeout", 15*time.Second)
	v.SetDefault("retry_count", 3)
	v.SetDefault("requests_per_second", 2.0)
	v.SetDefault("tickers", []string{})
	v.SetDefault("output", "text")
	v.SetDefault("log_level", "info")

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.quotefetcher")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.Tickers = splitTickers(config.Tickers)
	config.Output = strings.ToLower(strings.TrimSpace(config.Output))
	config.LogLevel = strings.ToLower(strings.TrimSpace(config.LogLevel))

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks field values that cannot be defaulted
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.BaseURL) == "" {
		problems = append(problems, "QUOTE_BASE_URL must not be empty")
	}
	if c.Timeout <= 0 {
		problems = append(problems, "QUOTE_TIMEOUT must be positive")
	}
	if c.RetryCount < 0 {
		problems = append(problems, "QUOTE_RETRY_COUNT must not be negative")
	}
	if c.RequestsPerSecond < 0 {
		problems = append(problems, "QUOTE_REQUESTS_PER_SECOND must not be negative")
	}
	if !contains(validOutputs, c.Output) {
		problems = append(problems, fmt.Sprintf("QUOTE_OUTPUT must be one of %s", strings.Join(validOutputs, ", ")))
	}
	if !contains(validLogLevels, c.LogLevel) {
		problems = append(problems, fmt.Sprintf("QUOTE_LOG_LEVEL must be one of %s", strings.Join(validLogLevels, ", ")))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// splitTickers accepts tickers given as a list or as one comma separated value
func splitTickers(in []string) []string {
	var out []string
	for _, item := range in {
		for _, t := range strings.FieldsFunc(item, func(r rune) bool { return r == ',' || r == ' ' }) {
			out = append(out, t)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
