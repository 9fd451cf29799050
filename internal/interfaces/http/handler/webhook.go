package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	syncapp "github.com/syncbridge/backend/internal/application/sync"
	"github.com/syncbridge/backend/internal/domain/sync"
	"github.com/syncbridge/backend/internal/interfaces/http/dto"
)

// Maximum webhook payload size (1MB - WooCommerce payloads carry full entities)
const maxWebhookPayloadSize = 1 << 20

// TopicHeader carries the WooCommerce event topic
const TopicHeader = "x-wc-webhook-topic"

// WebhookHandler receives WooCommerce webhooks and hands them to the
// dispatcher. WooCommerce posts JSON by default but can be configured to
// send form-encoded bodies; both are accepted, anything else is rejected.
type WebhookHandler struct {
	BaseHandler
	dispatcher *syncapp.Dispatcher
	sessions   sync.SessionRepository
	shop       string
	logger     *zap.Logger
}

// NewWebhookHandler creates a WebhookHandler
func NewWebhookHandler(dispatcher *syncapp.Dispatcher, sessions sync.SessionRepository, shop string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		dispatcher: dispatcher,
		sessions:   sessions,
		shop:       shop,
		logger:     logger,
	}
}

// RegisterRoutes registers webhook routes on the API group
func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhook", h.Handle)
}

// Handle processes one WooCommerce webhook delivery. Unknown topics are
// acknowledged with 200 so the source store does not retry them forever.
func (h *WebhookHandler) Handle(c *gin.Context) {
	topic := c.GetHeader(TopicHeader)
	if topic == "" {
		h.BadRequest(c, "Missing "+TopicHeader+" header")
		return
	}

	kind, err := sync.ParseEventTopic(topic)
	if err != nil {
		h.logger.Info("Unhandled webhook topic", zap.String("topic", topic))
		h.Success(c, gin.H{"message": "Unhandled event"})
		return
	}

	payload, err := h.readPayload(c)
	if err != nil {
		if errors.Is(err, errUnsupportedContentType) {
			h.ErrorWithCode(c, dto.ErrCodeUnsupportedMedia, err.Error())
		} else {
			h.BadRequest(c, err.Error())
		}
		return
	}

	session, err := h.sessions.FindByShop(c.Request.Context(), h.shop)
	if err != nil {
		h.logger.Error("No session for configured shop",
			zap.String("shop", h.shop), zap.Error(err))
		h.ErrorWithCode(c, dto.ErrCodeNoSession, "No Shopify session available")
		return
	}

	result := h.dispatcher.Dispatch(c.Request.Context(), session, kind, payload)
	if result.Err != nil {
		h.logger.Warn("Webhook handling failed",
			zap.String("topic", topic),
			zap.String("message", result.Err.Message),
			zap.String("details", result.Err.Details))
	}

	// Always acknowledge receipt; the result body carries the outcome
	c.JSON(http.StatusOK, result)
}

// readPayload normalizes the request body to a JSON document. Form-encoded
// bodies are flattened into a single JSON object of string values, which
// the flexible payload decoding accepts.
func (h *WebhookHandler) readPayload(c *gin.Context) ([]byte, error) {
	contentType := c.ContentType()
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}

	switch {
	case contentType == "application/json" || contentType == "":
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize))
		if err != nil {
			return nil, errUnreadableBody
		}
		return body, nil
	case contentType == "application/x-www-form-urlencoded":
		if err := c.Request.ParseForm(); err != nil {
			return nil, errUnreadableBody
		}
		fields := make(map[string]string, len(c.Request.PostForm))
		for key, values := range c.Request.PostForm {
			if len(values) > 0 {
				fields[key] = values[0]
			}
		}
		return json.Marshal(fields)
	default:
		return nil, errUnsupportedContentType
	}
}

var (
	errUnreadableBody         = &payloadError{"failed to read request body"}
	errUnsupportedContentType = &payloadError{"unsupported content type"}
)

type payloadError struct{ msg string }

func (e *payloadError) Error() string { return e.msg }
