package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

const (
	devBaseURL  = "http://localhost:8900/api"
	prodBaseURL = "https://care360-backend.vercel.app/api"
)

type Config struct {
	APIBaseURL  string `mapstructure:"CARE360_API_URL"`
	Env         string `mapstructure:"ENV"`
	HTTPTimeout int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`
	SessionFile string `mapstructure:"SESSION_FILE"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("ENV", "development")
	v.SetDefault("HTTP_TIMEOUT_SECONDS", 30)
	v.SetDefault("LOG_LEVEL", "info")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("CARE360_API_URL")
	v.BindEnv("ENV")
	v.BindEnv("HTTP_TIMEOUT_SECONDS")
	v.BindEnv("SESSION_FILE")
	v.BindEnv("LOG_LEVEL")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.APIBaseURL == "" {
		if cfg.IsProduction() {
			cfg.APIBaseURL = prodBaseURL
		} else {
			cfg.APIBaseURL = devBaseURL
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Timeout returns the HTTP client timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// Validate checks that the configuration can reach a backend at all.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("CARE360_API_URL is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("CARE360_API_URL must be http or https, got %q", c.APIBaseURL)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive, got %d", c.HTTPTimeout)
	}
	return nil
}
