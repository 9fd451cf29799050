package dfin

import (
	"errors"
	"time"
)

// Config errors
var (
	ErrConfigMissingBaseURL       = errors.New("dfin: config missing base URL")
	ErrConfigMissingKeys          = errors.New("dfin: config missing public or secret key")
	ErrConfigMissingWebhookSecret = errors.New("dfin: config missing webhook secret")
)

// Config holds Dfin gateway credentials. PublicKey authenticates session
// requests, SecretKey is passed inside the request body, WebhookSecret
// signs inbound confirmation webhooks.
type Config struct {
	BaseURL       string
	PublicKey     string
	SecretKey     string
	WebhookSecret string
	// Timeout bounds each HTTP call
	Timeout time.Duration
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.PublicKey == "" || c.SecretKey == "" {
		return ErrConfigMissingKeys
	}
	if c.WebhookSecret == "" {
		return ErrConfigMissingWebhookSecret
	}
	return nil
}
