package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	checkoutapp "github.com/syncbridge/backend/internal/application/checkout"
	"github.com/syncbridge/backend/internal/domain/sync"
	"github.com/syncbridge/backend/internal/infrastructure/config"
	"github.com/syncbridge/backend/internal/interfaces/http/dto"
)

type checkoutFixture struct {
	engine   *gin.Engine
	mappings *MockProductMappingRepository
	woo      *MockWooCommerceGateway
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &checkoutFixture{
		mappings: new(MockProductMappingRepository),
		woo:      new(MockWooCommerceGateway),
	}

	log := zap.NewNop()
	service := checkoutapp.NewService(f.mappings, f.woo, log)

	tiers, err := checkoutapp.NewTierTable(config.ProtectionConfig{
		Tiers: []config.ProtectionTierConfig{
			{Threshold: "0", VariantID: "gid://shopify/ProductVariant/101"},
			{Threshold: "60", VariantID: "gid://shopify/ProductVariant/102"},
			{Threshold: "120", VariantID: "gid://shopify/ProductVariant/103"},
			{Threshold: "180", VariantID: "gid://shopify/ProductVariant/104"},
		},
	})
	require.NoError(t, err)

	h := NewCheckoutHandler(service, tiers, log)

	f.engine = gin.New()
	h.RegisterRoutes(f.engine.Group("/api/v1"))
	return f
}

func TestCheckoutHandler_Checkout(t *testing.T) {
	t.Run("creates order and returns payment link", func(t *testing.T) {
		f := newCheckoutFixture(t)

		mapping, _ := sync.NewProductMapping("742", "gid://shopify/Product/9001")
		f.mappings.On("FindByShopifyID", mock.Anything, "gid://shopify/Product/9001").
			Return(mapping, nil)
		f.woo.On("CreateOrder", mock.Anything, mock.Anything).
			Return(&sync.WooOrderResult{ID: "311", PaymentURL: "https://shop.example.com/pay/311"}, nil)

		body := `{"items":[{"productId":"gid://shopify/Product/9001","quantity":1}],"email":"buyer@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "https://shop.example.com/pay/311", data["paymentLink"])
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		f := newCheckoutFixture(t)

		body := `{"items":[],"email":"buyer@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects fully unmapped cart", func(t *testing.T) {
		f := newCheckoutFixture(t)

		f.mappings.On("FindByShopifyID", mock.Anything, "gid://shopify/Product/9999").
			Return(nil, sync.ErrMappingNotFound)

		body := `{"items":[{"productId":"gid://shopify/Product/9999","quantity":1}],"email":"buyer@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.woo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})
}

func TestCheckoutHandler_ProtectionTier(t *testing.T) {
	get := func(f *checkoutFixture, query string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/protection/tier"+query, nil)
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)
		return w
	}

	t.Run("selects tier for subtotal", func(t *testing.T) {
		f := newCheckoutFixture(t)

		w := get(f, "?subtotal=75.00")

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "gid://shopify/ProductVariant/102", data["variantId"])
	})

	t.Run("missing subtotal", func(t *testing.T) {
		f := newCheckoutFixture(t)

		w := get(f, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non decimal subtotal", func(t *testing.T) {
		f := newCheckoutFixture(t)

		w := get(f, "?subtotal=lots")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative subtotal has no tier", func(t *testing.T) {
		f := newCheckoutFixture(t)

		w := get(f, "?subtotal=-5")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
