package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signWebhookBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestWebhookVerifier(t *testing.T) {
	verifier := NewWebhookVerifier("shpss_test")
	body := []byte(`{"id":9001,"title":"Linen Shirt"}`)

	t.Run("valid signature", func(t *testing.T) {
		assert.NoError(t, verifier.Verify(body, signWebhookBody("shpss_test", body)))
	})

	t.Run("wrong secret", func(t *testing.T) {
		err := verifier.Verify(body, signWebhookBody("shpss_other", body))
		assert.ErrorIs(t, err, ErrInvalidWebhookSignature)
	})

	t.Run("tampered body", func(t *testing.T) {
		sig := signWebhookBody("shpss_test", body)
		assert.ErrorIs(t, verifier.Verify([]byte(`{"id":9002}`), sig), ErrInvalidWebhookSignature)
	})

	t.Run("missing signature", func(t *testing.T) {
		assert.ErrorIs(t, verifier.Verify(body, ""), ErrInvalidWebhookSignature)
	})

	t.Run("signature is not base64", func(t *testing.T) {
		assert.ErrorIs(t, verifier.Verify(body, "not-base64!!"), ErrInvalidWebhookSignature)
	})
}
