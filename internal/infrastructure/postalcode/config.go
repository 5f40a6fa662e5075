package postalcode

import (
	"errors"
	"net/url"
)

// DefaultBaseURL is the public ViaCEP endpoint
const DefaultBaseURL = "https://viacep.com.br"

// Lookup errors
var (
	ErrMissingBaseURL     = errors.New("postalcode: base URL is required")
	ErrInvalidBaseURL     = errors.New("postalcode: base URL must be an absolute http(s) URL")
	ErrInvalidCode        = errors.New("postalcode: code must have 8 digits")
	ErrServiceUnavailable = errors.New("postalcode: service unavailable")
	ErrInvalidResponse    = errors.New("postalcode: invalid response")
)

// Config holds the lookup service settings
type Config struct {
	BaseURL string
}

// DefaultConfig returns the configuration for the public service
func DefaultConfig() *Config {
	return &Config{BaseURL: DefaultBaseURL}
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidBaseURL
	}
	return nil
}
