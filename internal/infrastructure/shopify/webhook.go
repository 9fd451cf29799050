package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

// WebhookSignatureHeader carries the base64 HMAC-SHA256 digest Shopify
// computes over the raw request body with the app's webhook secret.
const WebhookSignatureHeader = "X-Shopify-Hmac-Sha256"

// WebhookTopicHeader carries the Shopify event topic, e.g. products/delete
const WebhookTopicHeader = "X-Shopify-Topic"

// ErrInvalidWebhookSignature indicates a missing or mismatched webhook signature
var ErrInvalidWebhookSignature = errors.New("shopify: invalid webhook signature")

// WebhookVerifier validates inbound Shopify webhook signatures
type WebhookVerifier struct {
	secret []byte
}

// NewWebhookVerifier creates a verifier with the app's webhook secret
func NewWebhookVerifier(secret string) *WebhookVerifier {
	return &WebhookVerifier{secret: []byte(secret)}
}

// Verify checks the signature against the raw, unparsed request body.
// Verification must happen before any JSON decoding.
func (v *WebhookVerifier) Verify(rawBody []byte, signature string) error {
	if signature == "" {
		return ErrInvalidWebhookSignature
	}

	provided, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return ErrInvalidWebhookSignature
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(rawBody)

	if !hmac.Equal(provided, mac.Sum(nil)) {
		return ErrInvalidWebhookSignature
	}
	return nil
}
