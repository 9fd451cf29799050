package shopify

import (
	"errors"
	"time"
)

// Config errors
var (
	ErrConfigMissingAPIVersion = errors.New("shopify: config missing API version")
)

// Config holds Shopify Admin API client settings. Credentials are NOT part
// of the config; every call carries an explicit shop session.
type Config struct {
	// APIVersion is the versioned Admin API, e.g. "2024-10"
	APIVersion string
	// Timeout bounds each HTTP call
	Timeout time.Duration
	// BaseURLOverride replaces the https://{shop} scheme+host, used by tests
	BaseURLOverride string
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.APIVersion == "" {
		return ErrConfigMissingAPIVersion
	}
	return nil
}
