package sync

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/syncbridge/backend/internal/domain/sync"
)

// Woo order statuses that flip the mapped Shopify order to paid
const (
	wooStatusCompleted  = "completed"
	wooStatusProcessing = "processing"
)

// OrderService bridges order lifecycle events from WooCommerce to Shopify
type OrderService struct {
	orderMappings   sync.OrderMappingRepository
	productMappings sync.ProductMappingReader
	variantMappings sync.VariantMappingRepository
	shopify         sync.ShopifyGateway
	logger          *zap.Logger
}

// NewOrderService creates an OrderService
func NewOrderService(
	orderMappings sync.OrderMappingRepository,
	productMappings sync.ProductMappingReader,
	variantMappings sync.VariantMappingRepository,
	shopify sync.ShopifyGateway,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderMappings:   orderMappings,
		productMappings: productMappings,
		variantMappings: variantMappings,
		shopify:         shopify,
		logger:          logger,
	}
}

// HandleOrderCreated mirrors a new WooCommerce order into Shopify and
// persists the order mapping so later status changes can find it.
func (s *OrderService) HandleOrderCreated(ctx context.Context, session *sync.ShopSession, order *sync.WooOrder) Result {
	wooID := order.ID.String()

	if existing, err := s.orderMappings.FindByWooID(ctx, wooID); err == nil {
		s.logger.Info("Order already mirrored, skipping creation",
			zap.String("woo_order_id", wooID),
			zap.String("shopify_order_id", existing.ShopifyOrderID))
		return Skipped("Order already exists in Shopify")
	} else if !errors.Is(err, sync.ErrMappingNotFound) {
		return Failed("Failed to check order mapping", err.Error())
	}

	variantIDs := s.resolveVariants(ctx, session, order)

	created, err := s.shopify.CreateOrder(ctx, session, OrderInput(order, variantIDs))
	if err != nil {
		return Failed("Failed to create order", err.Error())
	}

	mapping, err := sync.NewOrderMapping(wooID, created.ID)
	if err != nil {
		return Failed("Failed to build order mapping", err.Error())
	}
	if err := s.orderMappings.Create(ctx, mapping); err != nil {
		if errors.Is(err, sync.ErrMappingAlreadyExists) {
			s.logger.Warn("Concurrent order mapping insert, rolling back duplicate order",
				zap.String("woo_order_id", wooID),
				zap.String("shopify_order_id", created.ID))
			if delErr := s.shopify.DeleteOrder(ctx, session, created.ID); delErr != nil {
				s.logger.Error("Failed to roll back duplicate order",
					zap.String("shopify_order_id", created.ID),
					zap.Error(delErr))
			}
			return Skipped("Order already exists in Shopify")
		}
		return Failed("Failed to persist order mapping", err.Error())
	}

	return Succeeded("Order created", created)
}

// resolveVariants maps each line item's WooCommerce product to the first
// variant of its Shopify counterpart. Stored variant mappings answer first;
// products mapped before variant tracking fall back to a live variants
// query. Unmapped or unresolvable lines stay absent from the map and are
// carried by title alone.
func (s *OrderService) resolveVariants(ctx context.Context, session *sync.ShopSession, order *sync.WooOrder) map[string]string {
	variantIDs := make(map[string]string, len(order.LineItems))

	for _, item := range order.LineItems {
		wooProductID := item.ProductID.String()
		if _, done := variantIDs[wooProductID]; done {
			continue
		}

		mapping, err := s.productMappings.FindByWooID(ctx, wooProductID)
		if err != nil {
			s.logger.Warn("No product mapping for order line",
				zap.String("woo_product_id", wooProductID))
			continue
		}

		if stored, err := s.variantMappings.FindByProductMapping(ctx, mapping.ID); err == nil && len(stored) > 0 {
			variantIDs[wooProductID] = stored[0].ShopifyVariantID
			continue
		}

		variants, err := s.shopify.GetProductVariants(ctx, session, mapping.ShopifyProductID)
		if err != nil || len(variants) == 0 {
			s.logger.Warn("Failed to resolve variants for order line",
				zap.String("shopify_product_id", mapping.ShopifyProductID),
				zap.Error(err))
			continue
		}

		variantIDs[wooProductID] = variants[0].ID
	}

	return variantIDs
}

// HandleOrderUpdated reacts to WooCommerce order status changes. Completed
// and processing orders flip the mapped Shopify order to paid; every other
// status needs no action.
func (s *OrderService) HandleOrderUpdated(ctx context.Context, session *sync.ShopSession, order *sync.WooOrder) Result {
	wooID := order.ID.String()

	mapping, err := s.orderMappings.FindByWooID(ctx, wooID)
	if err != nil {
		if errors.Is(err, sync.ErrMappingNotFound) {
			return Failed("Order mapping not found", "no mapping for WooCommerce ID "+wooID)
		}
		return Failed("Failed to look up order mapping", err.Error())
	}

	if order.Status != wooStatusCompleted && order.Status != wooStatusProcessing {
		s.logger.Info("Order status needs no action",
			zap.String("woo_order_id", wooID),
			zap.String("status", order.Status))
		return Skipped("No action needed for this status")
	}

	if err := s.shopify.MarkOrderAsPaid(ctx, session, mapping.ShopifyOrderID); err != nil {
		return Failed("Failed to update financial status", err.Error())
	}

	s.logger.Info("Order marked as paid",
		zap.String("woo_order_id", wooID),
		zap.String("shopify_order_id", mapping.ShopifyOrderID))

	return Succeeded("Order status updated", mapping.ShopifyOrderID)
}

// HandleOrderDeleted deletes the mapped Shopify order, then the mapping.
// The mapping survives a failed remote delete so the event can be retried.
func (s *OrderService) HandleOrderDeleted(ctx context.Context, session *sync.ShopSession, order *sync.WooOrder) Result {
	wooID := order.ID.String()

	mapping, err := s.orderMappings.FindByWooID(ctx, wooID)
	if err != nil {
		if errors.Is(err, sync.ErrMappingNotFound) {
			return Failed("Order mapping not found", "no mapping for WooCommerce ID "+wooID)
		}
		return Failed("Failed to look up order mapping", err.Error())
	}

	if err := s.shopify.DeleteOrder(ctx, session, mapping.ShopifyOrderID); err != nil {
		return Failed("Failed to delete order", err.Error())
	}

	if err := s.orderMappings.DeleteByWooID(ctx, wooID); err != nil {
		return Failed("Failed to delete order mapping", err.Error())
	}

	return Succeeded("Order deleted", mapping.ShopifyOrderID)
}
