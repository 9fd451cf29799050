package dfin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncbridge/backend/internal/domain/payment"
	"github.com/syncbridge/backend/internal/domain/sync"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&Config{
		BaseURL:       server.URL,
		PublicKey:     "pk_test",
		SecretKey:     "sk_test",
		WebhookSecret: "whsec_test",
		Timeout:       5 * time.Second,
	})
	require.NoError(t, err)

	return client
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(&Config{BaseURL: "https://pay.dfin.example", PublicKey: "pk"})
	assert.ErrorIs(t, err, ErrConfigMissingKeys)

	_, err = NewClient(&Config{BaseURL: "https://pay.dfin.example", PublicKey: "pk", SecretKey: "sk"})
	assert.ErrorIs(t, err, ErrConfigMissingWebhookSecret)
}

func TestCreateSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer pk_test", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseForm())

		assert.Equal(t, "sk_test", r.PostForm.Get("api_secret"))
		assert.Equal(t, "Ada", r.PostForm.Get("first_name"))
		assert.Equal(t, "42.50", r.PostForm.Get("amount"))
		assert.Equal(t, "yes", r.PostForm.Get("send_notifications"))
		assert.Contains(t, r.PostForm.Get("meta_data"), "order_id")

		w.Write([]byte(`{"data": {"pay_id": "pay_789", "payment_link": "https://pay.dfin.example/s/pay_789"}}`))
	})

	result, err := client.CreateSession(context.Background(), &payment.SessionRequest{
		FirstName:         "Ada",
		LastName:          "Lovelace",
		RequestFor:        "buyer@example.com",
		CountryCode:       "1",
		Amount:            "42.50",
		RedirectURL:       "https://store.example.com/thanks",
		RedirectTimeSecs:  "5",
		IPAddress:         "203.0.113.9",
		Metadata:          `{"source":"Shopify Order","order_id":"gid://shopify/Order/5005"}`,
		SendNotifications: true,
		Source:            "web",
	})
	require.NoError(t, err)

	assert.Equal(t, "pay_789", result.PayID)
	assert.Equal(t, "https://pay.dfin.example/s/pay_789", result.PaymentLink)
}

func TestCreateSessionErrors(t *testing.T) {
	t.Run("gateway rejects", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error": "amount invalid"}`))
		})

		_, err := client.CreateSession(context.Background(), &payment.SessionRequest{Amount: "-1"})
		assert.ErrorIs(t, err, sync.ErrPlatformRequestFailed)
	})

	t.Run("incomplete session", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": {"pay_id": "pay_789"}}`))
		})

		_, err := client.CreateSession(context.Background(), &payment.SessionRequest{Amount: "42.50"})
		assert.ErrorIs(t, err, sync.ErrPlatformInvalidResponse)
	})
}
