// Package edgar provides a client for the SEC EDGAR data APIs.
package edgar

import (
	"os"
	"time"
)

// Config holds configuration for the EDGAR client.
type Config struct {
	DataBaseURL  string        // Base URL for data.sec.gov (submissions, companyfacts)
	FilesBaseURL string        // Base URL for www.sec.gov (ticker directory, archives)
	UserAgent    string        // Required by SEC fair-access policy: "product contact@example.com"
	Timeout      time.Duration // HTTP request timeout
}

// LoadConfig loads EDGAR configuration from environment variables,
// defaulting the base URLs to the public SEC hosts.
func LoadConfig() Config {
	cfg := Config{
		DataBaseURL:  os.Getenv("EDGAR_DATA_BASE_URL"),
		FilesBaseURL: os.Getenv("EDGAR_FILES_BASE_URL"),
		UserAgent:    os.Getenv("EDGAR_USER_AGENT"),
		Timeout:      15 * time.Second,
	}
	if cfg.DataBaseURL == "" {
		cfg.DataBaseURL = "https://data.sec.gov"
	}
	if cfg.FilesBaseURL == "" {
		cfg.FilesBaseURL = "https://www.sec.gov"
	}
	return cfg
}
