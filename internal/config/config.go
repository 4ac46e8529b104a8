// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	BaseURL        string `mapstructure:"base_url"`
	RefreshSeconds int    `mapstructure:"refresh_seconds"`
	BaseCurrency   string `mapstructure:"base_currency"`
	RequestTimeout int    `mapstructure:"request_timeout_seconds"`
	DebugLogging   bool   `mapstructure:"debug_logging"`
}

const (
	DefaultRefreshSeconds = 15
	MinRefreshSeconds     = 5
	DefaultBaseCurrency   = "CNY"
	DefaultRequestTimeout = 30
)

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"refresh_seconds":         DefaultRefreshSeconds,
		"base_currency":           DefaultBaseCurrency,
		"request_timeout_seconds": DefaultRequestTimeout,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := loadEnvironmentVariables(v, &cfg); err != nil {
		return nil, err
	}

	return &cfg, validateConfig(&cfg)
}

// RefreshInterval returns the polling interval with the minimum floor applied.
func (c *Config) RefreshInterval() time.Duration {
	seconds := c.RefreshSeconds
	if seconds < MinRefreshSeconds {
		seconds = MinRefreshSeconds
	}
	return time.Duration(seconds) * time.Second
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}

func validateConfig(cfg *Config) error {
	if cfg.BaseURL == "" {
		return errors.New("missing base_url in configuration")
	}
	if err := validateURL(cfg.BaseURL, "http"); err != nil {
		return errors.New("invalid base_url protocol")
	}
	if cfg.RefreshSeconds <= 0 {
		return errors.New("invalid refresh_seconds")
	}
	if cfg.RequestTimeout <= 0 {
		return errors.New("invalid request_timeout_seconds")
	}
	if strings.TrimSpace(cfg.BaseCurrency) == "" {
		return errors.New("missing base_currency")
	}
	return nil
}

func validateURL(rawURL string, protocol string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if !strings.HasPrefix(parsed.Scheme, protocol) {
		return errors.New("invalid URL protocol")
	}
	return nil
}

func loadEnvironmentVariables(v *viper.Viper, cfg *Config) error {
	v.AutomaticEnv()
	v.SetEnvPrefix("FUNDWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBaseURL := v.GetString("BASE_URL")
	if envBaseURL != "" {
		cfg.BaseURL = envBaseURL
	}

	envCurrency := v.GetString("BASE_CURRENCY")
	if envCurrency != "" {
		cfg.BaseCurrency = strings.TrimSpace(envCurrency)
	}
	return nil
}
