package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	syncapp "github.com/syncbridge/backend/internal/application/sync"
	"github.com/syncbridge/backend/internal/domain/sync"
	"github.com/syncbridge/backend/internal/interfaces/http/dto"
)

// ProductHandler exposes the manual full product sync
type ProductHandler struct {
	BaseHandler
	products *syncapp.ProductService
	sessions sync.SessionRepository
	shop     string
	logger   *zap.Logger
}

// NewProductHandler creates a ProductHandler
func NewProductHandler(products *syncapp.ProductService, sessions sync.SessionRepository, shop string, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		products: products,
		sessions: sessions,
		shop:     shop,
		logger:   logger,
	}
}

// RegisterRoutes registers product routes on the API group
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/products/sync", h.SyncProducts)
}

// SyncProducts scans the active Shopify catalog and mirrors unmapped
// products into WooCommerce. Per-product failures are counted, not fatal.
func (h *ProductHandler) SyncProducts(c *gin.Context) {
	session, err := h.sessions.FindByShop(c.Request.Context(), h.shop)
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeNoSession, "No Shopify session available")
		return
	}

	summary, err := h.products.SyncProducts(c.Request.Context(), session)
	if err != nil {
		h.logger.Error("Product sync failed", zap.Error(err))
		h.HandleBridgeError(c, err)
		return
	}

	h.Success(c, summary)
}
