package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/syncbridge/backend/internal/domain/sync"
)

const (
	// maxResponseSize limits the response body size to prevent memory exhaustion
	maxResponseSize = 10 * 1024 * 1024 // 10MB max response

	defaultTimeout    = 30 * time.Second
	defaultAPIVersion = "wc/v3"
)

// Client implements sync.WooCommerceGateway against the WooCommerce REST API.
// Authentication uses consumer key/secret as query parameters, which requires
// the store to be served over HTTPS.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a WooCommerce REST client with the given configuration
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

var _ sync.WooCommerceGateway = (*Client)(nil)

// endpoint builds an authenticated REST URL for the given resource path
func (c *Client) endpoint(path string, extra url.Values) string {
	version := c.config.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}

	query := url.Values{}
	query.Set("consumer_key", c.config.ConsumerKey)
	query.Set("consumer_secret", c.config.ConsumerSecret)
	for k, vs := range extra {
		for _, v := range vs {
			query.Add(k, v)
		}
	}

	base := strings.TrimSuffix(c.config.BaseURL, "/")
	return fmt.Sprintf("%s/wp-json/%s/%s?%s", base, version, strings.TrimPrefix(path, "/"), query.Encode())
}

// doRequest executes one REST call and returns the response body
func (c *Client) doRequest(ctx context.Context, method, url string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("woocommerce: failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("woocommerce: failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sync.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("woocommerce: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", sync.ErrPlatformRequestFailed, resp.StatusCode, truncate(respBody, 512))
	}

	return respBody, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// productResponse is the subset of a WooCommerce product we read back
type productResponse struct {
	ID sync.FlexString `json:"id"`
}

// orderResponse is the subset of a WooCommerce order we read back
type orderResponse struct {
	ID         sync.FlexString `json:"id"`
	PaymentURL string          `json:"payment_url"`
}

// CreateProduct creates a product and returns its WooCommerce ID
func (c *Client) CreateProduct(ctx context.Context, product sync.WooProductCreate) (string, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, c.endpoint("products", nil), product)
	if err != nil {
		return "", err
	}

	var created productResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return "", fmt.Errorf("%w: %v", sync.ErrPlatformInvalidResponse, err)
	}
	if created.ID.String() == "" {
		return "", fmt.Errorf("%w: product create returned no id", sync.ErrPlatformInvalidResponse)
	}

	return created.ID.String(), nil
}

// DeleteProduct permanently deletes a product, bypassing the trash
func (c *Client) DeleteProduct(ctx context.Context, wooProductID string) error {
	extra := url.Values{}
	extra.Set("force", "true")

	_, err := c.doRequest(ctx, http.MethodDelete, c.endpoint("products/"+wooProductID, extra), nil)
	return err
}

// CreateOrder creates an order and returns its ID and hosted payment URL
func (c *Client) CreateOrder(ctx context.Context, order sync.WooOrderCreate) (*sync.WooOrderResult, error) {
	respBody, err := c.doRequest(ctx, http.MethodPost, c.endpoint("orders", nil), order)
	if err != nil {
		return nil, err
	}

	var created orderResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("%w: %v", sync.ErrPlatformInvalidResponse, err)
	}
	if created.ID.String() == "" {
		return nil, fmt.Errorf("%w: order create returned no id", sync.ErrPlatformInvalidResponse)
	}

	return &sync.WooOrderResult{
		ID:         created.ID.String(),
		PaymentURL: created.PaymentURL,
	}, nil
}
