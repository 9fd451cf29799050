package dfin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/syncbridge/backend/internal/domain/payment"
	"github.com/syncbridge/backend/internal/domain/sync"
)

const (
	// maxResponseSize limits the response body size to prevent memory exhaustion
	maxResponseSize = 1 * 1024 * 1024 // 1MB max response

	defaultTimeout = 30 * time.Second
)

// Client implements payment.Gateway against the Dfin hosted-payment API
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a Dfin client with the given configuration
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

var _ payment.Gateway = (*Client)(nil)

// CreateSession opens a hosted payment session and returns the pay ID and
// the customer-facing payment link.
func (c *Client) CreateSession(ctx context.Context, sessionReq *payment.SessionRequest) (*payment.SessionResult, error) {
	form := url.Values{}
	form.Set("api_secret", c.config.SecretKey)
	form.Set("first_name", sessionReq.FirstName)
	form.Set("last_name", sessionReq.LastName)
	form.Set("request_for", sessionReq.RequestFor)
	form.Set("country_code", sessionReq.CountryCode)
	form.Set("amount", sessionReq.Amount)
	form.Set("redirect_url", sessionReq.RedirectURL)
	form.Set("redirect_time", sessionReq.RedirectTimeSecs)
	form.Set("ip_address", sessionReq.IPAddress)
	form.Set("meta_data", sessionReq.Metadata)
	form.Set("source", sessionReq.Source)
	form.Set("billing_address_line1", sessionReq.BillingAddress1)
	form.Set("billing_address_line2", sessionReq.BillingAddress2)
	form.Set("billing_city", sessionReq.BillingCity)
	form.Set("billing_state", sessionReq.BillingState)
	form.Set("billing_postal_code", sessionReq.BillingPostalCode)
	form.Set("billing_country", sessionReq.BillingCountry)
	if sessionReq.SendNotifications {
		form.Set("send_notifications", "yes")
	} else {
		form.Set("send_notifications", "no")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("dfin: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.PublicKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sync.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("dfin: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", sync.ErrPlatformRequestFailed, resp.StatusCode, truncate(respBody, 512))
	}

	var session sessionResponse
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", sync.ErrPlatformInvalidResponse, err)
	}
	if session.Data.PayID == "" || session.Data.PaymentLink == "" {
		return nil, fmt.Errorf("%w: session response missing pay_id or payment_link", sync.ErrPlatformInvalidResponse)
	}

	return &payment.SessionResult{
		PayID:       session.Data.PayID,
		PaymentLink: session.Data.PaymentLink,
	}, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
