// Package quotes provides a client for the public Yahoo Finance quote API.
package quotes

import (
	"os"
	"time"
)

// Environment variable keys for the quotes API configuration.
const (
	EnvKeyBaseURL = "QUOTES_BASE_URL"
	EnvKeyRegion  = "QUOTES_REGION"
)

// Config holds the quotes API settings.
type Config struct {
	BaseURL string
	Region  string
	Timeout time.Duration
}

// LoadConfig loads the quotes API configuration from environment
// variables, falling back to the public Yahoo Finance endpoint.
func LoadConfig() Config {
	cfg := Config{
		BaseURL: os.Getenv(EnvKeyBaseURL),
		Region:  os.Getenv(EnvKeyRegion),
		Timeout: 10 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://query1.finance.yahoo.com"
	}
	if cfg.Region == "" {
		cfg.Region = "US"
	}
	return cfg
}
