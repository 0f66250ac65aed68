package client

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultEndpoint is where the analysis service listens in local setups
const DefaultEndpoint = "http://localhost:8000/analyze/"

// Config holds analysis service connection settings
type Config struct {
	// Endpoint is the full URL the multipart form is posted to
	Endpoint string `json:"endpoint"`

	// Timeout bounds one request including upload and response
	Timeout time.Duration `json:"timeout"`

	// UserAgent is sent with every request
	UserAgent string `json:"user_agent"`
}

// DefaultConfig returns a default service configuration
func DefaultConfig() *Config {
	return &Config{
		Endpoint:  DefaultEndpoint,
		Timeout:   120 * time.Second,
		UserAgent: "docsum",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("service endpoint is required")
	}

	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid service endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid service endpoint: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid service endpoint: missing host")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("service timeout must be positive")
	}

	return nil
}
