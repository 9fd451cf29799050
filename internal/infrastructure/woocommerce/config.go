package woocommerce

import (
	"errors"
	"time"
)

// Config errors
var (
	ErrConfigMissingBaseURL = errors.New("woocommerce: config missing base URL")
	ErrConfigMissingKeys    = errors.New("woocommerce: config missing consumer key or secret")
)

// Config holds WooCommerce REST API credentials for the connected store
type Config struct {
	// BaseURL is the store root, e.g. "https://store.example.com"
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	// APIVersion is the REST namespace version, defaults to "wc/v3"
	APIVersion string
	// Timeout bounds each HTTP call
	Timeout time.Duration
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.ConsumerKey == "" || c.ConsumerSecret == "" {
		return ErrConfigMissingKeys
	}
	return nil
}
