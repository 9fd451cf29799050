package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	checkoutapp "github.com/syncbridge/backend/internal/application/checkout"
)

// CheckoutHandler exposes the storefront checkout bridge and the shipping
// protection tier lookup used by the checkout widget.
type CheckoutHandler struct {
	BaseHandler
	checkout *checkoutapp.Service
	tiers    *checkoutapp.TierTable
	logger   *zap.Logger
}

// NewCheckoutHandler creates a CheckoutHandler
func NewCheckoutHandler(checkout *checkoutapp.Service, tiers *checkoutapp.TierTable, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		tiers:    tiers,
		logger:   logger,
	}
}

// RegisterRoutes registers checkout routes on the API group
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout", h.Checkout)
	rg.GET("/protection/tier", h.ProtectionTier)
}

// CheckoutRequest is the storefront checkout request body
type CheckoutRequest struct {
	Items []checkoutapp.CartItem `json:"items" binding:"required,min=1,dive"`
	Email string                 `json:"email" binding:"required,email"`
}

// Checkout creates an unpaid WooCommerce order for a Shopify cart and
// returns the hosted payment link.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "items and email are required")
		return
	}

	result, err := h.checkout.Checkout(c.Request.Context(), req.Items, req.Email)
	if err != nil {
		if errors.Is(err, checkoutapp.ErrNoMappedItems) {
			h.BadRequest(c, "No cart item maps to a known product")
			return
		}
		h.logger.Error("Checkout failed", zap.Error(err))
		h.HandleBridgeError(c, err)
		return
	}

	h.Success(c, result)
}

// ProtectionTierResponse is the tier selected for a cart subtotal
type ProtectionTierResponse struct {
	VariantID string `json:"variantId"`
	Threshold string `json:"threshold"`
}

// ProtectionTier returns the shipping protection variant for a subtotal
func (h *CheckoutHandler) ProtectionTier(c *gin.Context) {
	raw := c.Query("subtotal")
	if raw == "" {
		h.BadRequest(c, "subtotal query parameter is required")
		return
	}

	subtotal, err := decimal.NewFromString(raw)
	if err != nil {
		h.BadRequest(c, "subtotal must be a decimal amount")
		return
	}

	tier, found := h.tiers.SelectTier(subtotal)
	if !found {
		h.NotFound(c, "No protection tier covers this subtotal")
		return
	}

	h.Success(c, ProtectionTierResponse{
		VariantID: tier.VariantID,
		Threshold: tier.Threshold.String(),
	})
}
