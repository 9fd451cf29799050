package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	syncapp "github.com/syncbridge/backend/internal/application/sync"
	"github.com/syncbridge/backend/internal/infrastructure/shopify"
	"github.com/syncbridge/backend/internal/interfaces/http/dto"
)

const shopifyTopicProductDelete = "products/delete"

// ShopifyWebhookHandler receives Shopify webhooks for the reverse sync
// direction. Only product deletes are acted on; other topics are
// acknowledged so Shopify does not retry them.
type ShopifyWebhookHandler struct {
	BaseHandler
	products *syncapp.ProductService
	verifier *shopify.WebhookVerifier
	logger   *zap.Logger
}

// NewShopifyWebhookHandler creates a ShopifyWebhookHandler
func NewShopifyWebhookHandler(products *syncapp.ProductService, verifier *shopify.WebhookVerifier, logger *zap.Logger) *ShopifyWebhookHandler {
	return &ShopifyWebhookHandler{
		products: products,
		verifier: verifier,
		logger:   logger,
	}
}

// RegisterRoutes registers the Shopify webhook route on the API group
func (h *ShopifyWebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhook/shopify", h.Handle)
}

// shopifyProductDeletePayload is the products/delete webhook body. Shopify
// sends the bare numeric ID, not the gid form the Admin API uses.
type shopifyProductDeletePayload struct {
	ID int64 `json:"id"`
}

// Handle processes one Shopify webhook delivery. The signature is verified
// over the raw body before anything is decoded; a bad signature changes no
// state.
func (h *ShopifyWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize))
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	signature := c.GetHeader(shopify.WebhookSignatureHeader)
	if err := h.verifier.Verify(body, signature); err != nil {
		h.logger.Warn("Rejected Shopify webhook with bad signature")
		h.ErrorWithCode(c, dto.ErrCodeInvalidSignature, "Invalid webhook signature")
		return
	}

	topic := c.GetHeader(shopify.WebhookTopicHeader)
	if topic != shopifyTopicProductDelete {
		h.logger.Info("Unhandled Shopify webhook topic", zap.String("topic", topic))
		h.Success(c, gin.H{"message": "Unhandled event"})
		return
	}

	var payload shopifyProductDeletePayload
	if err := json.Unmarshal(body, &payload); err != nil || payload.ID == 0 {
		h.BadRequest(c, "Malformed webhook payload")
		return
	}

	productID := "gid://shopify/Product/" + strconv.FormatInt(payload.ID, 10)
	result := h.products.HandleShopifyProductDeleted(c.Request.Context(), productID)
	if result.Err != nil {
		h.logger.Warn("Shopify webhook handling failed",
			zap.String("topic", topic),
			zap.String("message", result.Err.Message),
			zap.String("details", result.Err.Details))
	}

	// Always acknowledge receipt; the result body carries the outcome
	c.JSON(http.StatusOK, result)
}
