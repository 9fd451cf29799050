package handler

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	paymentapp "github.com/syncbridge/backend/internal/application/payment"
	"github.com/syncbridge/backend/internal/domain/payment"
	"github.com/syncbridge/backend/internal/domain/sync"
	"github.com/syncbridge/backend/internal/infrastructure/dfin"
	"github.com/syncbridge/backend/internal/interfaces/http/dto"
)

// PaymentHandler exposes the Dfin payment bridge: session initiation for
// the storefront and the gateway's confirmation webhook.
type PaymentHandler struct {
	BaseHandler
	payments *paymentapp.Service
	verifier *dfin.WebhookVerifier
	sessions sync.SessionRepository
	shop     string
	logger   *zap.Logger
}

// NewPaymentHandler creates a PaymentHandler
func NewPaymentHandler(
	payments *paymentapp.Service,
	verifier *dfin.WebhookVerifier,
	sessions sync.SessionRepository,
	shop string,
	logger *zap.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		verifier: verifier,
		sessions: sessions,
		shop:     shop,
		logger:   logger,
	}
}

// RegisterRoutes registers payment routes on the API group
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/dfin", h.InitiatePayment)
	rg.POST("/webhook/dfin", h.HandleWebhook)
}

// InitiatePaymentRequest is the session initiation request body
type InitiatePaymentRequest struct {
	OrderID     string `json:"orderId" binding:"required"`
	RedirectURL string `json:"redirectUrl" binding:"required"`
}

// InitiatePayment opens a hosted payment session for a Shopify order
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	var req InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "orderId and redirectUrl are required")
		return
	}

	session, err := h.sessions.FindByShop(c.Request.Context(), h.shop)
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeNoSession, "No Shopify session available")
		return
	}

	result, err := h.payments.InitiatePayment(c.Request.Context(), session, req.OrderID, req.RedirectURL, c.ClientIP())
	if err != nil {
		h.logger.Error("Payment initiation failed",
			zap.String("order_id", req.OrderID), zap.Error(err))
		h.HandleBridgeError(c, err)
		return
	}

	h.Success(c, result)
}

// HandleWebhook processes a Dfin payment notification. The signature is
// verified over the raw body before anything is decoded; a bad signature
// changes no state.
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize))
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	signature := c.GetHeader(dfin.SignatureHeader)
	if err := h.verifier.Verify(body, signature); err != nil {
		h.logger.Warn("Rejected payment webhook with bad signature")
		h.ErrorWithCode(c, dto.ErrCodeInvalidSignature, "Invalid webhook signature")
		return
	}

	var event dfin.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.BadRequest(c, "Malformed webhook payload")
		return
	}

	if !event.IsPaymentConfirmation() {
		h.logger.Info("Ignoring unsupported payment event",
			zap.String("type", event.Type), zap.String("status", event.Status))
		h.ErrorWithCode(c, dto.ErrCodeUnknownEvent, "Unsupported event type")
		return
	}

	orderID, ok := event.OrderID()
	if !ok {
		h.BadRequest(c, "Webhook metadata carries no order ID")
		return
	}

	session, err := h.sessions.FindByShop(c.Request.Context(), h.shop)
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeNoSession, "No Shopify session available")
		return
	}

	if err := h.payments.ConfirmPayment(c.Request.Context(), session, orderID); err != nil {
		if errors.Is(err, payment.ErrPaymentAlreadyPaid) {
			h.Success(c, gin.H{"message": "Payment already confirmed"})
			return
		}
		if errors.Is(err, payment.ErrPaymentMappingNotFound) {
			h.NotFound(c, "No payment session for order")
			return
		}
		h.logger.Error("Payment confirmation failed",
			zap.String("order_id", orderID), zap.Error(err))
		h.HandleBridgeError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Payment confirmed"})
}
